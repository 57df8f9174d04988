package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPlanBuilt         EventType = "plan_built"
	EventConditionResolved EventType = "condition_resolved"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	PlanID    string    `json:"plan_id"`
}

// PlanEvent is emitted once a plan has been assembled.
type PlanEvent struct {
	EventBase
	DealName     string `json:"deal_name"`
	Legs         int    `json:"legs"`
	OverallValid bool   `json:"overall_valid"`
}

// ConditionEvent is emitted for every status change of an escrow condition.
type ConditionEvent struct {
	EventBase
	ConditionID string          `json:"condition_id"`
	From        ConditionStatus `json:"from"`
	To          ConditionStatus `json:"to"`
	Actor       Actor           `json:"actor"`
	Note        string          `json:"note"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnPlanBuilt         func(context.Context, *PlanEvent)
	OnConditionResolved func(context.Context, *ConditionEvent)
}

// EmitPlanBuilt invokes OnPlanBuilt when set.
func (h LifecycleHooks) EmitPlanBuilt(ctx context.Context, plan *EscrowPlan) {
	if h.OnPlanBuilt == nil || plan == nil {
		return
	}
	h.OnPlanBuilt(ctx, &PlanEvent{
		EventBase:    EventBase{Timestamp: time.Now(), Type: EventPlanBuilt, PlanID: plan.ID},
		DealName:     plan.DealName,
		Legs:         plan.TotalLegs(),
		OverallValid: plan.OverallValid,
	})
}

// EmitConditionResolved invokes OnConditionResolved when set.
func (h LifecycleHooks) EmitConditionResolved(ctx context.Context, ev *ConditionEvent) {
	if h.OnConditionResolved == nil || ev == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	ev.Type = EventConditionResolved
	h.OnConditionResolved(ctx, ev)
}

// MergeHooks combines several hook sets into one that calls each in order.
func MergeHooks(sets ...LifecycleHooks) LifecycleHooks {
	var merged LifecycleHooks
	for _, h := range sets {
		if h.OnPlanBuilt != nil {
			prev, next := merged.OnPlanBuilt, h.OnPlanBuilt
			merged.OnPlanBuilt = func(ctx context.Context, ev *PlanEvent) {
				if prev != nil {
					prev(ctx, ev)
				}
				next(ctx, ev)
			}
		}
		if h.OnConditionResolved != nil {
			prev, next := merged.OnConditionResolved, h.OnConditionResolved
			merged.OnConditionResolved = func(ctx context.Context, ev *ConditionEvent) {
				if prev != nil {
					prev(ctx, ev)
				}
				next(ctx, ev)
			}
		}
	}
	return merged
}
