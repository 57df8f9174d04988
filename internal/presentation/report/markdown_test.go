package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aretw0/escrowrail/internal/presentation/report"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"0":           "0.00",
		"999.5":       "999.50",
		"1000":        "1,000.00",
		"2500000.755": "2,500,000.76",
		"-12345.6":    "-12,345.60",
	}
	for in, want := range cases {
		assert.Equal(t, want, report.FormatAmount(decimal.RequireFromString(in)), in)
	}
}

func samplePlan() *domain.EscrowPlan {
	kyc := domain.NewCondition("ESC-002", "KYC/AML clearance confirmed for all parties by escrow agent",
		domain.CategoryRegulatory, domain.KindKYCAML, "Escrow Agent / Compliance")
	_ = kyc.Transition(domain.StatusSatisfied, "KYC/AML documentation found: 2 document(s) in evidence vault.", domain.ActorAuto)
	funds := domain.NewCondition("ESC-006", "Funds confirmed deposited in escrow account",
		domain.CategoryFinancial, domain.KindFundsDeposited, "Escrow Agent")

	return &domain.EscrowPlan{
		ID:        "plan-1",
		DealName:  "Harbor / Saigon",
		CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		Terms: &domain.EscrowTerms{
			Agent:             domain.EscrowAgentRef{Name: "The Bank of New York Mellon", BankCode: "IRVTUS3N", Country: "US"},
			RequestedCurrency: "VND",
			Currency:          "USD",
			Amount:            decimal.NewFromInt(5000000),
			EscrowType:        "institutional",
			ReleaseMechanism:  "dual_authorization",
			Conditions:        []*domain.EscrowCondition{kyc, funds},
			ComplianceNotes:   []string{"Escrow currency overridden to USD (freely convertible)."},
		},
		Legs: []domain.SettlementLeg{{
			ID: "LEG-01", Currency: "USD", RequiresFX: true, IsValid: false,
			Nodes: []domain.BankNode{
				{Name: "Harbor LLC", Role: domain.RoleOriginator},
				{Name: "JPMorgan Chase Bank", BankCode: "CHASUS33", Role: domain.RoleOriginatorBank},
				{Name: "The Bank of New York Mellon", BankCode: "IRVTUS3N", Role: domain.RoleEscrowAgent},
				{Name: "Vietcombank", BankCode: "BFTVVNVX", Role: domain.RoleBeneficiaryBank},
				{Name: "Saigon JSC", Role: domain.RoleBeneficiary},
			},
			Issues: []string{"FX approval required"},
		}},
		BankAssignments: map[string]domain.BankAssignment{
			"Saigon JSC": {Bank: "Vietcombank", BankCode: "BFTVVNVX", Source: domain.SourceRecommended},
			"Harbor LLC": {Bank: "JPMorgan Chase Bank", BankCode: "CHASUS33", Source: domain.SourceExisting},
		},
		OverallIssues:   []string{"LEG-01: FX approval required"},
		Recommendations: []string{"Obtain SBV approval before funding."},
	}
}

func TestMarkdown(t *testing.T) {
	out := report.Markdown(samplePlan(), report.Options{})

	for _, want := range []string{
		"**Harbor / Saigon**",
		"- Overall: **NEEDS ACTION**",
		"- Settlement legs: 1 (0 valid)",
		"- Total nodes: 5",
		"| Currency | USD (requested VND) |",
		"| Amount | USD 5,000,000.00 |",
		"### Conditions (1/2 met)",
		"- [x] **ESC-002**",
		"- [ ] **ESC-006** Funds confirmed deposited in escrow account _(PENDING)_",
		"> - Escrow currency overridden to USD (freely convertible).",
		"Harbor LLC → JPMorgan Chase Bank [CHASUS33] → The Bank of New York Mellon [IRVTUS3N]",
		"Nodes: 5 | Currency: USD | FX: YES",
		"## Outstanding Issues",
		"## Recommendations",
	} {
		assert.Contains(t, out, want)
	}

	assert.Less(t, strings.Index(out, "| Harbor LLC |"), strings.Index(out, "| Saigon JSC |"), "assignments are sorted")
	assert.NotContains(t, out, "```mermaid")
}

func TestMarkdownDiagram(t *testing.T) {
	out := report.Markdown(samplePlan(), report.Options{Diagram: true})
	assert.Contains(t, out, "```mermaid\ngraph LR\n")
	assert.True(t, strings.HasSuffix(out, "```\n"))
}
