package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeHooks(t *testing.T) {
	var calls []string
	first := LifecycleHooks{
		OnPlanBuilt: func(context.Context, *PlanEvent) { calls = append(calls, "first-plan") },
	}
	second := LifecycleHooks{
		OnPlanBuilt:         func(context.Context, *PlanEvent) { calls = append(calls, "second-plan") },
		OnConditionResolved: func(context.Context, *ConditionEvent) { calls = append(calls, "second-cond") },
	}

	hooks := MergeHooks(first, LifecycleHooks{}, second)
	ctx := context.Background()
	hooks.EmitPlanBuilt(ctx, &EscrowPlan{ID: "p"})
	hooks.EmitConditionResolved(ctx, &ConditionEvent{ConditionID: "ESC-001"})

	assert.Equal(t, []string{"first-plan", "second-plan", "second-cond"}, calls)
}

func TestEmitConditionResolvedStampsEvent(t *testing.T) {
	var got *ConditionEvent
	hooks := LifecycleHooks{OnConditionResolved: func(_ context.Context, ev *ConditionEvent) { got = ev }}

	hooks.EmitConditionResolved(context.Background(), &ConditionEvent{ConditionID: "ESC-002"})
	require.NotNil(t, got)
	assert.Equal(t, EventConditionResolved, got.Type)
	assert.False(t, got.Timestamp.IsZero())

	assert.NotPanics(t, func() {
		LifecycleHooks{}.EmitPlanBuilt(context.Background(), &EscrowPlan{})
	})
}
