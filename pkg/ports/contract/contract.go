// Package contract holds reusable test suites for port implementations.
package contract

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/ports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SamplePlan returns a small but complete plan for store round-trips.
func SamplePlan(id string) *domain.EscrowPlan {
	kyc := domain.NewCondition("ESC-002", "KYC/AML clearance confirmed for all parties by escrow agent",
		domain.CategoryRegulatory, domain.KindKYCAML, "Escrow Agent / Compliance")
	_ = kyc.Transition(domain.StatusSatisfied, "2 documents", domain.ActorAuto)
	funds := domain.NewCondition("ESC-006", "Funds confirmed deposited in escrow account",
		domain.CategoryFinancial, domain.KindFundsDeposited, "Escrow Agent")

	return &domain.EscrowPlan{
		ID:        id,
		DealName:  "Contract Deal",
		CreatedAt: time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
		Terms: &domain.EscrowTerms{
			Agent:            domain.EscrowAgentRef{Name: "Agent", BankCode: "IRVTUS3N", Country: "US"},
			Currency:         "USD",
			Amount:           decimal.RequireFromString("2500000.75"),
			EscrowType:       "institutional",
			ReleaseMechanism: "dual_authorization",
			Conditions:       []*domain.EscrowCondition{kyc, funds},
		},
		Legs: []domain.SettlementLeg{{
			ID: "LEG-01", Originator: "A", Beneficiary: "B", Currency: "USD", IsValid: true,
			Nodes: []domain.BankNode{
				{Position: 1, Name: "A", Role: domain.RoleOriginator},
				{Position: 2, Name: "Bank", BankCode: "CHASUS33", Role: domain.RoleOriginatorBank},
			},
		}},
		BankAssignments: map[string]domain.BankAssignment{
			"A": {Bank: "Bank", BankCode: "CHASUS33", Source: domain.SourceExisting},
		},
		OverallValid:    true,
		OverallIssues:   []string{},
		Recommendations: []string{"Obtain dual-signature authorization from all designated signatories."},
	}
}

// RunPlanStoreContract verifies that a PlanStore implementation adheres to the interface contract.
func RunPlanStoreContract(t *testing.T, store ports.PlanStore) {
	t.Helper()
	ctx := context.Background()
	planID := "contract-plan-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		plan := SamplePlan(planID)
		require.NoError(t, store.Save(ctx, plan))

		loaded, err := store.Load(ctx, planID)
		require.NoError(t, err)
		assert.Equal(t, plan.DealName, loaded.DealName)
		assert.True(t, plan.CreatedAt.Equal(loaded.CreatedAt))
		assert.True(t, plan.Terms.Amount.Equal(loaded.Terms.Amount))
		require.Len(t, loaded.Terms.Conditions, 2)
		assert.Equal(t, domain.StatusSatisfied, loaded.Terms.Conditions[0].Status())
		assert.Equal(t, domain.StatusPending, loaded.Terms.Conditions[1].Status())
		assert.Equal(t, plan.BankAssignments, loaded.BankAssignments)
		assert.Equal(t, plan.Legs, loaded.Legs)
	})

	t.Run("Loaded plan is isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, planID)
		require.NoError(t, err)
		loaded.DealName = "mutated"
		require.NoError(t, loaded.Terms.Conditions[1].Transition(domain.StatusWaived, "waived", domain.ActorManual))

		again, err := store.Load(ctx, planID)
		require.NoError(t, err)
		assert.Equal(t, "Contract Deal", again.DealName)
		assert.Equal(t, domain.StatusPending, again.Terms.Conditions[1].Status())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+planID)
		assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id2 := planID + "-2"
		require.NoError(t, store.Save(ctx, SamplePlan(id2)))
		defer func() { _ = store.Delete(ctx, id2) }()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, planID)
		assert.Contains(t, ids, id2)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, planID))
		_, err := store.Load(ctx, planID)
		assert.ErrorIs(t, err, domain.ErrPlanNotFound)
		assert.NoError(t, store.Delete(ctx, planID))
	})
}
