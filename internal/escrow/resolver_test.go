package escrow

import (
	"context"
	"testing"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlan(assignments map[string]domain.BankAssignment) *domain.EscrowPlan {
	return &domain.EscrowPlan{
		ID:              "plan-1",
		Terms:           BuildTerms(bny, "USD", decimal.NewFromInt(1_000_000)),
		BankAssignments: assignments,
	}
}

func condition(t *testing.T, plan *domain.EscrowPlan, kind domain.ConditionKind) *domain.EscrowCondition {
	t.Helper()
	for _, c := range plan.Terms.Conditions {
		if c.Kind == kind {
			return c
		}
	}
	t.Fatalf("no condition of kind %s", kind)
	return nil
}

func TestAutoSatisfyKYCAndSignatories(t *testing.T) {
	plan := newPlan(nil)
	profiles := []domain.Profile{
		{LegalName: "Issuer", Jurisdiction: "US", Signatories: []domain.Signatory{{Name: "A"}}},
		{LegalName: "Investor", Jurisdiction: "GB", Signatories: []domain.Signatory{{Name: "B"}}},
	}
	evidence := domain.EvidenceIndex{}
	evidence.Add("issuer", "CIS_Issuer.pdf")
	evidence.Add("investor", "kyc_investor_passport.pdf")

	n := AutoSatisfy(plan, profiles, evidence)
	assert.Equal(t, 2, n)

	kyc := condition(t, plan, domain.KindKYCAML)
	assert.Equal(t, domain.StatusSatisfied, kyc.Status())
	assert.Equal(t, "KYC/AML documentation found: 2 document(s) in evidence vault.", kyc.Notes)

	auth := condition(t, plan, domain.KindDualAuthorization)
	assert.Equal(t, domain.StatusSatisfied, auth.Status())
	assert.Equal(t, "2 authorized signatories found across entity profiles.", auth.Notes)

	assert.Equal(t, domain.StatusPending, condition(t, plan, domain.KindFundsDeposited).Status())
	assert.Equal(t, domain.StatusPending, condition(t, plan, domain.KindClosingConditions).Status())
}

func TestAutoSatisfyNeverTouchesFundsDeposited(t *testing.T) {
	plan := newPlan(map[string]domain.BankAssignment{"A": {BankCode: "CHASUS33"}})
	evidence := domain.EvidenceIndex{}
	for _, f := range []string{"funds_deposited_confirmation.pdf", "escrow_deposit_receipt.pdf", "kyc_1", "kyc_2", "sanctions_report.pdf"} {
		evidence.Add("escrow", f)
	}

	AutoSatisfy(plan, nil, evidence)
	funds := condition(t, plan, domain.KindFundsDeposited)
	assert.Equal(t, domain.StatusPending, funds.Status())
	assert.Empty(t, funds.Notes)
}

func TestAutoSatisfyDraftOpinionStaysPending(t *testing.T) {
	plan := newPlan(nil)
	evidence := domain.EvidenceIndex{}
	evidence.Add("counsel", "legal_opinion_us_DRAFT_v2.docx")

	assert.Equal(t, 0, AutoSatisfy(plan, nil, evidence))
	op := condition(t, plan, domain.KindLegalOpinions)
	assert.Equal(t, domain.StatusPending, op.Status())
	assert.Equal(t, "Legal opinion(s) found but in DRAFT status. Final form required.", op.Notes)

	final := domain.EvidenceIndex{}
	final.Add("counsel", "legal_opinion_us_executed.pdf")
	assert.Equal(t, 1, AutoSatisfy(plan, nil, final))
	assert.Equal(t, domain.StatusSatisfied, op.Status())
}

func TestAutoSatisfyMatchesMixedCaseFileNames(t *testing.T) {
	plan := newPlan(nil)
	evidence := domain.EvidenceIndex{
		"counsel":    {"opinion_x_DRAFT.pdf"},
		"Compliance": {"KYC_Issuer.pdf", "CIS_Investor.pdf"},
	}

	assert.Equal(t, 1, AutoSatisfy(plan, nil, evidence))
	assert.Equal(t, domain.StatusSatisfied, condition(t, plan, domain.KindKYCAML).Status())

	op := condition(t, plan, domain.KindLegalOpinions)
	assert.Equal(t, domain.StatusPending, op.Status())
	assert.Equal(t, "Legal opinion(s) found but in DRAFT status. Final form required.", op.Notes)
}

func TestAutoSatisfySettlementInstructions(t *testing.T) {
	incomplete := newPlan(map[string]domain.BankAssignment{
		"A": {BankCode: "CHASUS33"},
		"B": {Bank: "TBD"},
	})
	AutoSatisfy(incomplete, nil, nil)
	assert.Equal(t, domain.StatusPending, condition(t, incomplete, domain.KindSettlementInstructions).Status())

	empty := newPlan(nil)
	AutoSatisfy(empty, nil, nil)
	assert.Equal(t, domain.StatusPending, condition(t, empty, domain.KindSettlementInstructions).Status())

	complete := newPlan(map[string]domain.BankAssignment{
		"A": {BankCode: "CHASUS33"},
		"B": {BankCode: "BFTVVNVX"},
	})
	AutoSatisfy(complete, nil, nil)
	c := condition(t, complete, domain.KindSettlementInstructions)
	assert.Equal(t, domain.StatusSatisfied, c.Status())
	assert.Equal(t, "Settlement instructions verified for 2 entities with SWIFT codes.", c.Notes)
}

func TestAutoSatisfySanctions(t *testing.T) {
	evidence := domain.EvidenceIndex{}
	evidence.Add("compliance", "risk_compliance_report.pdf")

	clean := newPlan(nil)
	AutoSatisfy(clean, []domain.Profile{{Jurisdiction: "US"}, {Jurisdiction: "BS"}}, evidence)
	assert.Equal(t, domain.StatusSatisfied, condition(t, clean, domain.KindSanctionsScreening).Status())

	exposed := newPlan(nil)
	AutoSatisfy(exposed, []domain.Profile{{Jurisdiction: "US"}, {Jurisdiction: "IR"}}, evidence)
	s := condition(t, exposed, domain.KindSanctionsScreening)
	assert.Equal(t, domain.StatusPending, s.Status())
	assert.Contains(t, s.Notes, "IR")

	noEvidence := newPlan(nil)
	AutoSatisfy(noEvidence, []domain.Profile{{Jurisdiction: "US"}}, nil)
	assert.Equal(t, domain.StatusPending, condition(t, noEvidence, domain.KindSanctionsScreening).Status())
}

func TestAutoSatisfySkipsTerminalConditionsAndEmitsHooks(t *testing.T) {
	plan := newPlan(nil)
	kyc := condition(t, plan, domain.KindKYCAML)
	require.NoError(t, kyc.Transition(domain.StatusFailed, "agent rejected onboarding", domain.ActorManual))

	var events []*domain.ConditionEvent
	r := NewResolver(WithHooks(domain.LifecycleHooks{
		OnConditionResolved: func(_ context.Context, ev *domain.ConditionEvent) { events = append(events, ev) },
	}))

	evidence := domain.EvidenceIndex{}
	evidence.Add("a", "kyc_a.pdf")
	evidence.Add("b", "kyc_b.pdf")
	profiles := []domain.Profile{{Signatories: []domain.Signatory{{Name: "A"}, {Name: "B"}}}}

	n := r.AutoSatisfy(context.Background(), plan, profiles, evidence)
	assert.Equal(t, 1, n)
	assert.Equal(t, domain.StatusFailed, kyc.Status())

	require.Len(t, events, 1)
	assert.Equal(t, "ESC-003", events[0].ConditionID)
	assert.Equal(t, domain.ActorAuto, events[0].Actor)
	assert.Equal(t, domain.EventConditionResolved, events[0].Type)
	assert.Equal(t, "plan-1", events[0].PlanID)
}

func TestAutoSatisfyFallsBackToDescriptionKeywords(t *testing.T) {
	plan := &domain.EscrowPlan{Terms: &domain.EscrowTerms{Conditions: []*domain.EscrowCondition{
		domain.NewCondition("X-1", "Signatory authorization received", domain.CategoryLegal, "", "Ops"),
		domain.NewCondition("X-2", "Funds deposited with the agent", domain.CategoryFinancial, "", "Ops"),
	}}}
	profiles := []domain.Profile{{Signatories: []domain.Signatory{{Name: "A"}, {Name: "B"}}}}

	assert.Equal(t, 1, AutoSatisfy(plan, profiles, nil))
	assert.Equal(t, domain.StatusSatisfied, plan.Terms.Conditions[0].Status())
	assert.Equal(t, domain.StatusPending, plan.Terms.Conditions[1].Status())
}

func TestAutoSatisfyNilPlan(t *testing.T) {
	assert.Equal(t, 0, AutoSatisfy(nil, nil, nil))
	assert.Equal(t, 0, AutoSatisfy(&domain.EscrowPlan{}, nil, nil))
}
