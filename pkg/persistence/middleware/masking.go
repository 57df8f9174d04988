package middleware

import (
	"context"
	"strings"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/ports"
)

// DefaultVisibleDigits is how many trailing characters of an account number stay readable.
const DefaultVisibleDigits = 4

type maskingMiddleware struct {
	next    ports.PlanStore
	visible int
}

// NewAccountMasking creates a middleware that masks account numbers before a plan is
// persisted. Only the last visible characters of each account are kept.
func NewAccountMasking(visible int) Middleware {
	if visible < 0 {
		visible = 0
	}
	return func(next ports.PlanStore) ports.PlanStore {
		return &maskingMiddleware{next: next, visible: visible}
	}
}

func (m *maskingMiddleware) Save(ctx context.Context, plan *domain.EscrowPlan) error {
	// Clone so the caller's plan keeps the full account numbers.
	cloned := *plan
	if plan.BankAssignments != nil {
		cloned.BankAssignments = make(map[string]domain.BankAssignment, len(plan.BankAssignments))
		for name, a := range plan.BankAssignments {
			a.Account = m.mask(a.Account)
			cloned.BankAssignments[name] = a
		}
	}
	if plan.Legs != nil {
		cloned.Legs = make([]domain.SettlementLeg, len(plan.Legs))
		for i, leg := range plan.Legs {
			if leg.Nodes != nil {
				leg.Nodes = append(make([]domain.BankNode, 0, len(leg.Nodes)), leg.Nodes...)
				for j := range leg.Nodes {
					leg.Nodes[j].AccountRef = m.mask(leg.Nodes[j].AccountRef)
				}
			}
			cloned.Legs[i] = leg
		}
	}

	return m.next.Save(ctx, &cloned)
}

func (m *maskingMiddleware) Load(ctx context.Context, planID string) (*domain.EscrowPlan, error) {
	return m.next.Load(ctx, planID)
}

func (m *maskingMiddleware) Delete(ctx context.Context, planID string) error {
	return m.next.Delete(ctx, planID)
}

func (m *maskingMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// Helpers

func (m *maskingMiddleware) mask(account string) string {
	if account == "" {
		return ""
	}
	runes := []rune(account)
	hidden := len(runes) - m.visible
	if hidden <= 0 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", hidden) + string(runes[hidden:])
}
