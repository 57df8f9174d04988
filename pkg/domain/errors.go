package domain

import "errors"

// ErrPlanNotFound is returned when a plan ID cannot be found in the store.
var ErrPlanNotFound = errors.New("plan not found")

// ErrConditionNotFound is returned when a condition ID is not part of the escrow terms.
var ErrConditionNotFound = errors.New("condition not found")

// ErrIllegalTransition is returned when a condition status change is not an edge of the state machine.
var ErrIllegalTransition = errors.New("illegal condition transition")

// ErrMissingNote is returned when a status change carries no justification.
var ErrMissingNote = errors.New("condition transition requires a note")
