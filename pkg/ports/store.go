package ports

import (
	"context"

	"github.com/aretw0/escrowrail/pkg/domain"
)

// PlanStore defines the interface for persisting computed plans.
// Stores are serializers of the plan document, not query engines.
type PlanStore interface {
	// Save persists the plan under plan.ID, replacing any previous version.
	Save(ctx context.Context, plan *domain.EscrowPlan) error

	// Load retrieves a plan by ID.
	// Returns domain.ErrPlanNotFound if the plan does not exist.
	Load(ctx context.Context, planID string) (*domain.EscrowPlan, error)

	// Delete removes a plan. Deleting a missing plan is not an error.
	Delete(ctx context.Context, planID string) error

	// List returns the IDs of stored plans.
	List(ctx context.Context) ([]string, error)
}
