package escrowrail_test

import (
	"context"
	"fmt"

	"github.com/aretw0/escrowrail"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/shopspring/decimal"
)

func exampleProfiles() []domain.Profile {
	return []domain.Profile{
		{
			LegalName:    "Acme Issuer SPV",
			Jurisdiction: "US-DE",
			EntityType:   domain.EntityTypeSPV,
			Banking: domain.Banking{
				SettlementBank: "JPMorgan Chase Bank, N.A.",
				BankCode:       "CHASUS33",
				RoutingNumber:  "021000021",
			},
			Signatories: []domain.Signatory{{Name: "J. Doe", CanBindCompany: true}},
		},
		{
			LegalName:    "Investor LLC",
			Jurisdiction: "US",
			Signatories:  []domain.Signatory{{Name: "R. Roe", CanBindCompany: true}},
		},
	}
}

func ExampleEngine_BuildPlan() {
	eng := escrowrail.New(escrowrail.WithIDGenerator(func() string { return "example" }))

	plan := eng.BuildPlan(context.Background(), "Acme MTN", exampleProfiles(), "USD", decimal.NewFromInt(10_000_000))

	fmt.Println("agent:", plan.Terms.Agent.BankCode, plan.Terms.Agent.Score)
	fmt.Println("legs:", plan.TotalLegs(), "nodes:", plan.TotalNodes())
	fmt.Println("valid:", plan.OverallValid)
	fmt.Println("conditions:", len(plan.Terms.Conditions))
	// Output:
	// agent: IRVTUS3N 110
	// legs: 1 nodes: 5
	// valid: true
	// conditions: 7
}

func ExampleEngine_AutoResolve() {
	eng := escrowrail.New()
	ctx := context.Background()
	profiles := exampleProfiles()

	plan := eng.BuildPlan(ctx, "Acme MTN", profiles, "USD", decimal.Zero)

	evidence := domain.EvidenceIndex{}
	evidence.Add("acme", "kyc_passport.pdf")
	evidence.Add("investor", "cis_questionnaire.pdf")

	fmt.Println("satisfied:", eng.AutoResolve(ctx, plan, profiles, evidence))
	for _, id := range []string{"ESC-002", "ESC-003", "ESC-006"} {
		c, _ := plan.Terms.Condition(id)
		fmt.Println(id, c.Status())
	}
	// Output:
	// satisfied: 3
	// ESC-002 SATISFIED
	// ESC-003 SATISFIED
	// ESC-006 PENDING
}
