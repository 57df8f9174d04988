package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/escrowrail/internal/presentation/graph"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func leg(id string, valid bool, orig, ben string) domain.SettlementLeg {
	return domain.SettlementLeg{
		ID:      id,
		IsValid: valid,
		Nodes: []domain.BankNode{
			{Position: 1, Name: orig, Role: domain.RoleOriginator},
			{Position: 2, Name: "JPMorgan Chase Bank", BankCode: "CHASUS33", Role: domain.RoleOriginatorBank},
			{Position: 3, Name: "The Bank of New York Mellon", BankCode: "IRVTUS3N", Role: domain.RoleEscrowAgent},
			{Position: 4, Name: "Vietcombank", BankCode: "BFTVVNVX", Role: domain.RoleBeneficiaryBank},
			{Position: 5, Name: ben, Role: domain.RoleBeneficiary},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	plan := &domain.EscrowPlan{Legs: []domain.SettlementLeg{
		leg("LEG-01", true, "Harbor \"US\" LLC", "Saigon JSC"),
		leg("LEG-02", false, "Saigon JSC", "Harbor \"US\" LLC"),
	}}

	out := graph.GenerateMermaid(plan)

	tests := []struct {
		name     string
		contains []string
	}{
		{"Header", []string{"graph LR\n"}},
		{"Entity Shape", []string{`n1("Harbor 'US' LLC")`, `n5("Saigon JSC")`}},
		{"Escrow Shape", []string{`n3[["The Bank of New York Mellon <br/> IRVTUS3N"]]`}},
		{"Bank Shape", []string{`n2["JPMorgan Chase Bank <br/> CHASUS33"]`}},
		{"Valid Edge", []string{`n1 -- "LEG-01" --> n2`}},
		{"Invalid Edge", []string{`n5 -. "LEG-02" .-> n2`}},
		{"Escrow Style", []string{"class n3 escrow;"}},
		{"Flagged Style", []string{"class n5,n2,n3,n4,n1 flagged;"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}

	assert.Equal(t, 1, strings.Count(out, `("Saigon JSC")`), "shared nodes are declared once")
}

func TestGenerateMermaidNilPlan(t *testing.T) {
	assert.Equal(t, "graph LR\n", graph.GenerateMermaid(nil))
}
