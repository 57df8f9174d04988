package domain

import (
	"encoding/json"
	"fmt"
)

// ConditionStatus is the lifecycle state of an escrow release condition.
type ConditionStatus string

const (
	StatusPending   ConditionStatus = "PENDING"   // Awaiting evidence or sign-off
	StatusSatisfied ConditionStatus = "SATISFIED" // Evidence confirmed
	StatusWaived    ConditionStatus = "WAIVED"    // Waived by the parties (manual only)
	StatusFailed    ConditionStatus = "FAILED"    // Cannot be met (manual only)
)

// allowedTransitions is the complete edge set of the condition state machine.
// Terminal states have no entry.
var allowedTransitions = map[ConditionStatus][]ConditionStatus{
	StatusPending: {StatusSatisfied, StatusWaived, StatusFailed},
}

// Valid reports whether s is one of the known statuses.
func (s ConditionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSatisfied, StatusWaived, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no transition can leave s.
func (s ConditionStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// CanTransitionTo reports whether the edge s -> to exists.
func (s ConditionStatus) CanTransitionTo(to ConditionStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Actor identifies who drives a status change.
type Actor string

const (
	// ActorAuto is the evidence-driven resolver. It may only move a condition to SATISFIED.
	ActorAuto Actor = "auto"
	// ActorManual is an external sign-off workflow.
	ActorManual Actor = "manual"
)

// ConditionCategory groups release conditions by their nature.
type ConditionCategory string

const (
	CategoryDocumentary ConditionCategory = "documentary"
	CategoryRegulatory  ConditionCategory = "regulatory"
	CategoryFinancial   ConditionCategory = "financial"
	CategoryLegal       ConditionCategory = "legal"
)

// ConditionKind is a stable tag for the standard release conditions.
type ConditionKind string

const (
	KindClosingConditions      ConditionKind = "closing_conditions"
	KindKYCAML                 ConditionKind = "kyc_aml"
	KindDualAuthorization      ConditionKind = "dual_authorization"
	KindLegalOpinions          ConditionKind = "legal_opinions"
	KindSettlementInstructions ConditionKind = "settlement_instructions"
	KindFundsDeposited         ConditionKind = "funds_deposited"
	KindSanctionsScreening     ConditionKind = "sanctions_screening"
)

// EscrowCondition is a single condition gating the release of escrowed funds.
// The status is only reachable through Transition, so illegal edges such as
// SATISFIED -> PENDING cannot be produced by callers.
type EscrowCondition struct {
	ID          string
	Description string
	Category    ConditionCategory
	Kind        ConditionKind
	Responsible string
	Notes       string

	status ConditionStatus
}

// NewCondition creates a PENDING condition.
func NewCondition(id, description string, category ConditionCategory, kind ConditionKind, responsible string) *EscrowCondition {
	return &EscrowCondition{
		ID:          id,
		Description: description,
		Category:    category,
		Kind:        kind,
		Responsible: responsible,
		status:      StatusPending,
	}
}

// Status returns the current status.
func (c *EscrowCondition) Status() ConditionStatus {
	if c.status == "" {
		return StatusPending
	}
	return c.status
}

// IsMet is true when the condition no longer blocks release.
func (c *EscrowCondition) IsMet() bool {
	s := c.Status()
	return s == StatusSatisfied || s == StatusWaived
}

// Transition moves the condition to a new status, recording the note that justifies it.
func (c *EscrowCondition) Transition(to ConditionStatus, note string, actor Actor) error {
	from := c.Status()
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s %s -> %s", ErrIllegalTransition, c.ID, from, to)
	}
	if actor == ActorAuto && to != StatusSatisfied {
		return fmt.Errorf("%w: %s -> %s requires manual sign-off", ErrIllegalTransition, c.ID, to)
	}
	if note == "" {
		return fmt.Errorf("%w: %s", ErrMissingNote, c.ID)
	}
	c.status = to
	c.Notes = note
	return nil
}

// Annotate replaces the notes of a PENDING condition without changing its status.
func (c *EscrowCondition) Annotate(note string) {
	if c.Status() == StatusPending {
		c.Notes = note
	}
}

type conditionJSON struct {
	ID          string            `json:"condition_id"`
	Description string            `json:"description"`
	Category    ConditionCategory `json:"category"`
	Kind        ConditionKind     `json:"kind,omitempty"`
	Responsible string            `json:"responsible"`
	Status      ConditionStatus   `json:"status"`
	Notes       string            `json:"notes"`
}

// MarshalJSON implements json.Marshaler.
func (c *EscrowCondition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionJSON{
		ID:          c.ID,
		Description: c.Description,
		Category:    c.Category,
		Kind:        c.Kind,
		Responsible: c.Responsible,
		Status:      c.Status(),
		Notes:       c.Notes,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Unknown statuses are rejected.
func (c *EscrowCondition) UnmarshalJSON(data []byte) error {
	var raw conditionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Status == "" {
		raw.Status = StatusPending
	}
	if !raw.Status.Valid() {
		return fmt.Errorf("condition %s: unknown status %q", raw.ID, raw.Status)
	}
	*c = EscrowCondition{
		ID:          raw.ID,
		Description: raw.Description,
		Category:    raw.Category,
		Kind:        raw.Kind,
		Responsible: raw.Responsible,
		Notes:       raw.Notes,
		status:      raw.Status,
	}
	return nil
}
