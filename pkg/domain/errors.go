package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAlgorithm is returned when an algorithm name cannot be resolved.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrPruneUnavailable is returned when a prune is requested before the run reached its final step.
var ErrPruneUnavailable = errors.New("prune is only available at the final step")

// ErrNothingToRestore is returned when Restore is called on a graph that was never pruned.
var ErrNothingToRestore = errors.New("graph has not been pruned")

// ErrStateNotFound is returned by editing operations referencing an unknown state.
var ErrStateNotFound = errors.New("state not found")

// ErrEdgeNotFound is returned by editing operations referencing an unknown edge.
var ErrEdgeNotFound = errors.New("edge not found")

// ValidationError represents a single consistency failure.
type ValidationError struct {
	Key    string // Element concerned (state id, edge id, field name)
	Reason string // Human-readable reason for failure
	Value  any    // Offending value, if any
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("%q: %s (got %v)", e.Key, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual failures to errors.Is / errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
