// Package signoff applies condition changes to stored escrow plans.
// Changes of one plan are serialized in-process and, when a DistributedLocker
// is configured, across replicas.
package signoff

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/escrowrail/internal/escrow"
	"github.com/aretw0/escrowrail/internal/logging"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed plan lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates sign-off on stored plans.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.PlanStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker   ports.DistributedLocker
	lockTTL  time.Duration
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	resolver *escrow.Resolver
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithHooks registers hooks fired for manual and automatic transitions.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// NewManager creates a new sign-off Manager over store.
func NewManager(store ports.PlanStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.resolver = escrow.NewResolver(escrow.WithLogger(m.logger), escrow.WithHooks(m.hooks))
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST lock entry.mu and call release(planID) after unlocking.
func (m *Manager) acquire(planID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[planID]
	if !exists {
		entry = &lockEntry{}
		m.locks[planID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(planID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[planID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, planID)
	}
}

// WithLock executes fn while holding the lock for the plan.
func (m *Manager) WithLock(ctx context.Context, planID string, fn func(context.Context) error) error {
	entry := m.acquire(planID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(planID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, planID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"plan_id", planID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Load retrieves a plan from the store.
func (m *Manager) Load(ctx context.Context, planID string) (*domain.EscrowPlan, error) {
	var plan *domain.EscrowPlan
	err := m.WithLock(ctx, planID, func(ctx context.Context) error {
		var err error
		plan, err = m.store.Load(ctx, planID)
		return err
	})
	return plan, err
}

// Save persists the plan.
func (m *Manager) Save(ctx context.Context, plan *domain.EscrowPlan) error {
	return m.WithLock(ctx, plan.ID, func(ctx context.Context) error {
		return m.store.Save(ctx, plan)
	})
}

// Delete removes the plan from the store.
func (m *Manager) Delete(ctx context.Context, planID string) error {
	return m.WithLock(ctx, planID, func(ctx context.Context) error {
		return m.store.Delete(ctx, planID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying plan store.
func (m *Manager) Store() ports.PlanStore {
	return m.store
}

// Sign records a manual decision on one condition and persists the plan.
// Only PENDING conditions can be signed; the note is mandatory.
func (m *Manager) Sign(ctx context.Context, planID, conditionID string, to domain.ConditionStatus, note string) (*domain.TermsDiff, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrIllegalTransition, to)
	}

	var diff *domain.TermsDiff
	err := m.update(ctx, planID, func(ctx context.Context, plan *domain.EscrowPlan) error {
		cond, err := plan.Terms.Condition(conditionID)
		if err != nil {
			return err
		}
		before := plan.Terms.Snapshot()
		from := cond.Status()
		if err := cond.Transition(to, note, domain.ActorManual); err != nil {
			return err
		}

		m.logger.InfoContext(ctx, "condition signed off",
			"plan_id", planID,
			"condition_id", conditionID,
			"from", from,
			"to", to,
		)
		m.hooks.EmitConditionResolved(ctx, &domain.ConditionEvent{
			EventBase:   domain.EventBase{PlanID: planID},
			ConditionID: conditionID,
			From:        from,
			To:          to,
			Actor:       domain.ActorManual,
			Note:        note,
		})
		diff = domain.DiffConditions(planID, before, plan.Terms)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return diff, nil
}

// AutoResolve runs the evidence-driven resolver on a stored plan and persists the result.
// Annotations on conditions that stay PENDING are persisted as well.
func (m *Manager) AutoResolve(ctx context.Context, planID string, profiles []domain.Profile, evidence domain.EvidenceIndex) (*domain.TermsDiff, error) {
	var diff *domain.TermsDiff
	err := m.update(ctx, planID, func(ctx context.Context, plan *domain.EscrowPlan) error {
		before := plan.Terms.Snapshot()
		m.resolver.AutoSatisfy(ctx, plan, profiles, evidence)
		diff = domain.DiffConditions(planID, before, plan.Terms)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return diff, nil
}

// update loads, mutates and saves a plan under its lock.
func (m *Manager) update(ctx context.Context, planID string, fn func(context.Context, *domain.EscrowPlan) error) error {
	return m.WithLock(ctx, planID, func(ctx context.Context) error {
		plan, err := m.store.Load(ctx, planID)
		if err != nil {
			return err
		}
		if plan.Terms == nil {
			return fmt.Errorf("plan %s has no escrow terms", planID)
		}
		if err := fn(ctx, plan); err != nil {
			return err
		}
		return m.store.Save(ctx, plan)
	})
}
