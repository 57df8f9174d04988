package escrow

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/aretw0/escrowrail/internal/logging"
	"github.com/aretw0/escrowrail/pkg/domain"
)

var (
	kycPatterns         = []string{"cis_", "kyc_", "risk_compliance"}
	opinionPatterns     = []string{"opinion_", "legal_opinion"}
	sanctionsPatterns   = []string{"risk_compliance", "sanctions"}
	sanctionedCountries = []string{"CU", "IR", "KP", "SY"}
)

const (
	draftMarker     = "draft"
	minKYCDocuments = 2
	minSignatories  = 2
)

// Resolver transitions PENDING conditions to SATISFIED when evidence supports it.
// It never waives or fails a condition and never touches the funds-deposited condition.
type Resolver struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the resolver logger.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithHooks registers lifecycle hooks fired for every transition.
func WithHooks(hooks domain.LifecycleHooks) ResolverOption {
	return func(r *Resolver) {
		r.hooks = hooks
	}
}

// NewResolver creates a Resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AutoSatisfy resolves plan conditions with a default Resolver.
func AutoSatisfy(plan *domain.EscrowPlan, profiles []domain.Profile, evidence domain.EvidenceIndex) int {
	return NewResolver().AutoSatisfy(context.Background(), plan, profiles, evidence)
}

// outcome is the verdict of a policy for one condition.
type outcome struct {
	satisfied bool
	note      string
}

type policy func(plan *domain.EscrowPlan, profiles []domain.Profile, evidence domain.EvidenceIndex) outcome

// AutoSatisfy cross-references evidence and profiles and returns the number of
// conditions moved to SATISFIED.
func (r *Resolver) AutoSatisfy(ctx context.Context, plan *domain.EscrowPlan, profiles []domain.Profile, evidence domain.EvidenceIndex) int {
	if plan == nil || plan.Terms == nil {
		return 0
	}

	count := 0
	for _, cond := range plan.Terms.Conditions {
		if cond.Status() != domain.StatusPending {
			continue
		}
		apply := policyFor(cond)
		if apply == nil {
			continue
		}

		res := apply(plan, profiles, evidence)
		if !res.satisfied {
			if res.note != "" {
				cond.Annotate(res.note)
			}
			continue
		}

		if err := cond.Transition(domain.StatusSatisfied, res.note, domain.ActorAuto); err != nil {
			r.logger.WarnContext(ctx, "condition transition rejected", "condition_id", cond.ID, "err", err)
			continue
		}
		count++
		r.logger.InfoContext(ctx, "condition satisfied", "plan_id", plan.ID, "condition_id", cond.ID, "note", res.note)
		r.hooks.EmitConditionResolved(ctx, &domain.ConditionEvent{
			EventBase:   domain.EventBase{PlanID: plan.ID},
			ConditionID: cond.ID,
			From:        domain.StatusPending,
			To:          domain.StatusSatisfied,
			Actor:       domain.ActorAuto,
			Note:        res.note,
		})
	}
	return count
}

// policyFor picks the policy by condition kind, falling back to description
// keywords in fixed order for conditions that carry no kind.
func policyFor(cond *domain.EscrowCondition) policy {
	switch cond.Kind {
	case domain.KindKYCAML:
		return kycPolicy
	case domain.KindDualAuthorization:
		return signatoryPolicy
	case domain.KindLegalOpinions:
		return opinionPolicy
	case domain.KindSettlementInstructions:
		return settlementInstructionPolicy
	case domain.KindSanctionsScreening:
		return sanctionsPolicy
	case domain.KindFundsDeposited, domain.KindClosingConditions:
		return nil
	}

	desc := strings.ToLower(cond.Description)
	switch {
	case strings.Contains(desc, "funds") && strings.Contains(desc, "deposit"):
		return nil
	case strings.Contains(desc, "kyc") || strings.Contains(desc, "aml"):
		return kycPolicy
	case strings.Contains(desc, "authorization") || strings.Contains(desc, "signator"):
		return signatoryPolicy
	case strings.Contains(desc, "legal opinion") || strings.Contains(desc, "opinions delivered"):
		return opinionPolicy
	case strings.Contains(desc, "settlement instruction"):
		return settlementInstructionPolicy
	case strings.Contains(desc, "ofac") || strings.Contains(desc, "sanctions"):
		return sanctionsPolicy
	}
	return nil
}

func kycPolicy(_ *domain.EscrowPlan, _ []domain.Profile, evidence domain.EvidenceIndex) outcome {
	docs := evidence.Matching(kycPatterns...)
	if len(docs) < minKYCDocuments {
		return outcome{}
	}
	return outcome{
		satisfied: true,
		note:      fmt.Sprintf("KYC/AML documentation found: %d document(s) in evidence vault.", len(docs)),
	}
}

func signatoryPolicy(_ *domain.EscrowPlan, profiles []domain.Profile, _ domain.EvidenceIndex) outcome {
	total := 0
	for _, p := range profiles {
		total += len(p.Signatories)
	}
	if total < minSignatories {
		return outcome{}
	}
	return outcome{
		satisfied: true,
		note:      fmt.Sprintf("%d authorized signatories found across entity profiles.", total),
	}
}

func opinionPolicy(_ *domain.EscrowPlan, _ []domain.Profile, evidence domain.EvidenceIndex) outcome {
	docs := evidence.Matching(opinionPatterns...)
	if len(docs) == 0 {
		return outcome{}
	}
	if slices.ContainsFunc(docs, func(f string) bool { return strings.Contains(strings.ToLower(f), draftMarker) }) {
		return outcome{note: "Legal opinion(s) found but in DRAFT status. Final form required."}
	}
	return outcome{
		satisfied: true,
		note:      fmt.Sprintf("Legal opinion(s) found: %d document(s) in evidence vault.", len(docs)),
	}
}

func settlementInstructionPolicy(plan *domain.EscrowPlan, _ []domain.Profile, _ domain.EvidenceIndex) outcome {
	if len(plan.BankAssignments) == 0 {
		return outcome{}
	}
	for _, a := range plan.BankAssignments {
		if a.BankCode == "" {
			return outcome{}
		}
	}
	return outcome{
		satisfied: true,
		note:      fmt.Sprintf("Settlement instructions verified for %d entities with SWIFT codes.", len(plan.BankAssignments)),
	}
}

func sanctionsPolicy(_ *domain.EscrowPlan, profiles []domain.Profile, evidence domain.EvidenceIndex) outcome {
	for _, j := range domain.Jurisdictions(profiles) {
		if slices.Contains(sanctionedCountries, j) {
			return outcome{note: fmt.Sprintf("Sanctioned jurisdiction %s present in deal group. Manual review required.", j)}
		}
	}
	if len(evidence.Matching(sanctionsPatterns...)) == 0 {
		return outcome{}
	}
	return outcome{
		satisfied: true,
		note:      "No sanctioned jurisdictions in deal group. Compliance documentation found in evidence vault.",
	}
}
