package signoff_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/escrowrail/internal/escrow"
	"github.com/aretw0/escrowrail/pkg/adapters/memory"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/ports"
	"github.com/aretw0/escrowrail/pkg/signoff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPlan(t *testing.T, store ports.PlanStore, id string) {
	t.Helper()
	agent := domain.EscrowAgentRef{Name: "The Bank of New York Mellon", BankCode: "IRVTUS3N", Country: "US"}
	plan := &domain.EscrowPlan{
		ID:       id,
		DealName: "Sign-off Deal",
		Terms:    escrow.BuildTerms(agent, "USD", decimal.NewFromInt(1000000)),
	}
	require.NoError(t, store.Save(context.Background(), plan))
}

func TestManager_Sign(t *testing.T) {
	store := memory.NewStore()
	seedPlan(t, store, "p1")

	var events []*domain.ConditionEvent
	m := signoff.NewManager(store, signoff.WithHooks(domain.LifecycleHooks{
		OnConditionResolved: func(_ context.Context, ev *domain.ConditionEvent) { events = append(events, ev) },
	}))
	ctx := context.Background()

	diff, err := m.Sign(ctx, "p1", "ESC-006", domain.StatusSatisfied, "Wire confirmation MT103 ref 8841")
	require.NoError(t, err)
	require.Len(t, diff.Changes, 1)
	assert.Equal(t, "ESC-006", diff.Changes[0].ConditionID)
	assert.Equal(t, domain.StatusPending, diff.Changes[0].From)
	assert.Equal(t, domain.StatusSatisfied, diff.Changes[0].To)

	require.Len(t, events, 1)
	assert.Equal(t, domain.ActorManual, events[0].Actor)

	plan, err := m.Load(ctx, "p1")
	require.NoError(t, err)
	cond, err := plan.Terms.Condition("ESC-006")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSatisfied, cond.Status())
	assert.Equal(t, "Wire confirmation MT103 ref 8841", cond.Notes)
}

func TestManager_SignRejections(t *testing.T) {
	store := memory.NewStore()
	seedPlan(t, store, "p1")
	m := signoff.NewManager(store)
	ctx := context.Background()

	_, err := m.Sign(ctx, "p1", "ESC-404", domain.StatusWaived, "n/a")
	assert.ErrorIs(t, err, domain.ErrConditionNotFound)

	_, err = m.Sign(ctx, "p1", "ESC-001", domain.StatusWaived, "")
	assert.ErrorIs(t, err, domain.ErrMissingNote)

	_, err = m.Sign(ctx, "p1", "ESC-001", domain.ConditionStatus("DONE"), "x")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	_, err = m.Sign(ctx, "missing", "ESC-001", domain.StatusWaived, "x")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)

	_, err = m.Sign(ctx, "p1", "ESC-001", domain.StatusFailed, "counterparty withdrew")
	require.NoError(t, err)
	_, err = m.Sign(ctx, "p1", "ESC-001", domain.StatusPending, "reopen")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	plan, err := m.Load(ctx, "p1")
	require.NoError(t, err)
	cond, _ := plan.Terms.Condition("ESC-001")
	assert.Equal(t, domain.StatusFailed, cond.Status())
}

func TestManager_AutoResolve(t *testing.T) {
	store := memory.NewStore()
	seedPlan(t, store, "p1")
	m := signoff.NewManager(store)
	ctx := context.Background()

	evidence := domain.EvidenceIndex{}
	evidence.Add("harbor", "kyc_passport.pdf")
	evidence.Add("issuer", "cis_issuer_profile.pdf")

	diff, err := m.AutoResolve(ctx, "p1", nil, evidence)
	require.NoError(t, err)
	require.False(t, diff.IsEmpty())

	var ids []string
	for _, c := range diff.Changes {
		ids = append(ids, c.ConditionID)
		assert.NotEmpty(t, c.Notes)
	}
	assert.Contains(t, ids, "ESC-002")
	assert.NotContains(t, ids, "ESC-006")

	again, err := m.AutoResolve(ctx, "p1", nil, evidence)
	require.NoError(t, err)
	assert.True(t, again.IsEmpty())
}

func TestManager_ConcurrentSignOff(t *testing.T) {
	store := memory.NewStore()
	seedPlan(t, store, "p1")
	m := signoff.NewManager(store)
	ctx := context.Background()

	ids := []string{"ESC-001", "ESC-003", "ESC-004", "ESC-005", "ESC-006"}
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := m.Sign(ctx, "p1", id, domain.StatusWaived, "waived by parties")
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	plan, err := m.Load(ctx, "p1")
	require.NoError(t, err)
	for _, id := range ids {
		cond, err := plan.Terms.Condition(id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusWaived, cond.Status(), id)
	}
}

type recordingLocker struct {
	mu    sync.Mutex
	keys  []string
	ttl   time.Duration
	freed int
}

func (l *recordingLocker) Lock(_ context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
	l.ttl = ttl
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.freed++
		return nil
	}, nil
}

func TestManager_DistributedLock(t *testing.T) {
	store := memory.NewStore()
	seedPlan(t, store, "p1")
	locker := &recordingLocker{}
	m := signoff.NewManager(store, signoff.WithLocker(locker), signoff.WithLockTTL(5*time.Second))

	_, err := m.Sign(context.Background(), "p1", "ESC-001", domain.StatusWaived, "ok")
	require.NoError(t, err)

	assert.Equal(t, []string{"p1"}, locker.keys)
	assert.Equal(t, 5*time.Second, locker.ttl)
	assert.Equal(t, 1, locker.freed)
}
