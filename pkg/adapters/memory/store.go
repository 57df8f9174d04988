package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/escrowrail/pkg/domain"
)

// Store implements ports.PlanStore in memory.
// Plans are kept serialized so callers never share pointers with the store.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save persists the plan in memory.
func (s *Store) Save(ctx context.Context, plan *domain.EscrowPlan) error {
	if plan == nil || plan.ID == "" {
		return fmt.Errorf("plan ID cannot be empty")
	}
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[plan.ID] = raw
	return nil
}

// Load retrieves a copy of the plan.
func (s *Store) Load(ctx context.Context, planID string) (*domain.EscrowPlan, error) {
	s.mu.RLock()
	raw, ok := s.data[planID]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlanNotFound, planID)
	}

	var plan domain.EscrowPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &plan, nil
}

// Delete removes the plan.
func (s *Store) Delete(ctx context.Context, planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, planID)
	return nil
}

// List returns stored plan IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
