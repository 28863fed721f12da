// Package validator reports structural problems in a drawn automaton.
package validator

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/aretw0/automata/pkg/traversal"
)

// Severity of a Problem.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem codes.
const (
	CodeDuplicateState   = "duplicate_state"
	CodeDuplicateEdge    = "duplicate_edge"
	CodeDanglingEdge     = "dangling_edge"
	CodeNoInitial        = "no_initial"
	CodeMultipleInitial  = "multiple_initial"
	CodeUnknownSymbol    = "unknown_symbol"
	CodeEmptyLabel       = "empty_label"
	CodeNoFinal          = "no_final"
	CodeUnreachableState = "unreachable_state"
	CodeDeadState        = "dead_state"
)

// Problem is a single diagnostic.
type Problem struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Subject  string   `json:"subject,omitempty"`
	Message  string   `json:"message"`
}

// Report lists every problem found. Valid is false when any error is present.
type Report struct {
	Valid    bool      `json:"valid"`
	Problems []Problem `json:"problems"`
}

// Errors returns the error-severity problems as an AggregateError, or nil.
func (r Report) Errors() error {
	var errs []error
	for _, p := range r.Problems {
		if p.Severity == SeverityError {
			errs = append(errs, &domain.ValidationError{Key: cmp.Or(p.Subject, p.Code), Reason: p.Message})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &domain.AggregateError{Errors: errs}
}

// Validate inspects g. When alphabet is non-empty, edge labels are checked against it.
// Unreachable and dead states are warnings: the traversals handle them fine.
func Validate(g domain.Graph, alphabet []string) Report {
	r := Report{Problems: []Problem{}}
	add := func(sev Severity, code, subject, format string, args ...any) {
		r.Problems = append(r.Problems, Problem{
			Severity: sev,
			Code:     code,
			Subject:  subject,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	states := make(map[string]struct{}, len(g.Nodes))
	var initials, finals []string
	for _, n := range g.Nodes {
		if _, dup := states[n.ID]; dup {
			add(SeverityError, CodeDuplicateState, n.ID, "state %s is declared more than once", n.ID)
			continue
		}
		states[n.ID] = struct{}{}
		if n.IsInitial {
			initials = append(initials, n.ID)
		}
		if n.IsFinal {
			finals = append(finals, n.ID)
		}
	}

	switch {
	case len(initials) == 0:
		add(SeverityError, CodeNoInitial, "", "no initial state")
	case len(initials) > 1:
		add(SeverityError, CodeMultipleInitial, initials[0], "several initial states %v; only %s is used", initials, initials[0])
	}
	if len(finals) == 0 {
		add(SeverityWarning, CodeNoFinal, "", "no final state; the co-accessible set is empty")
	}

	edges := make(map[string]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		if _, dup := edges[e.ID]; dup {
			add(SeverityError, CodeDuplicateEdge, e.ID, "transition %s is declared more than once", e.ID)
		}
		edges[e.ID] = struct{}{}

		for _, end := range []string{e.Source, e.Target} {
			if _, ok := states[end]; !ok {
				add(SeverityError, CodeDanglingEdge, e.ID, "transition %s references unknown state %s", e.ID, end)
			}
		}

		symbols := editor.ParseLabel(e.Label)
		if len(symbols) == 0 {
			add(SeverityWarning, CodeEmptyLabel, e.ID, "transition %s has no symbol and is not exported", e.ID)
		}
		if len(alphabet) > 0 {
			for _, s := range symbols {
				if !slices.Contains(alphabet, s) {
					add(SeverityError, CodeUnknownSymbol, e.ID, "transition %s uses symbol %q outside the alphabet", e.ID, s)
				}
			}
		}
	}

	if len(initials) > 0 {
		reached := traversal.Result(traversal.Collect(traversal.Accessible(g)))
		for _, n := range g.Nodes {
			if !slices.Contains(reached, n.ID) {
				add(SeverityWarning, CodeUnreachableState, n.ID, "state %s is not accessible", n.ID)
			}
		}
	}
	if len(finals) > 0 {
		live := traversal.Result(traversal.Collect(traversal.CoAccessible(g)))
		for _, n := range g.Nodes {
			if !slices.Contains(live, n.ID) {
				add(SeverityWarning, CodeDeadState, n.ID, "state %s is not co-accessible", n.ID)
			}
		}
	}

	r.Valid = r.Errors() == nil
	return r
}
