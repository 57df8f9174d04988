package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedEntity is returned when a record cannot be decoded into a profile.
var ErrMalformedEntity = errors.New("malformed entity record")

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string // Field path, e.g. "banking.swift_code"
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Key, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures of one entity.
type AggregateError struct {
	Entity string
	Errors []error
}

func (e *AggregateError) Error() string {
	prefix := ""
	if e.Entity != "" {
		prefix = e.Entity + ": "
	}
	if len(e.Errors) == 1 {
		return prefix + e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s%d validation errors:\n", prefix, len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err wraps an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
