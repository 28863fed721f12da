package traversal

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Reduction names a restriction applied to an automaton.
type Reduction string

const (
	// ReduceNone keeps the automaton as is.
	ReduceNone Reduction = ""
	// ReduceAccessible keeps the accessible states.
	ReduceAccessible Reduction = "accessible"
	// ReduceCoAccessible keeps the co-accessible states.
	ReduceCoAccessible Reduction = "co-accessible"
	// ReduceTrim keeps the states that are both.
	ReduceTrim Reduction = "trim"
)

// ParseReduction resolves a reduction name; empty and "none" select ReduceNone.
func ParseReduction(name string) (Reduction, error) {
	n := strings.NewReplacer("_", "-").Replace(strings.ToLower(strings.TrimSpace(name)))
	switch n {
	case "", "none":
		return ReduceNone, nil
	case string(ReduceAccessible):
		return ReduceAccessible, nil
	case string(ReduceCoAccessible), "coaccessible":
		return ReduceCoAccessible, nil
	case string(ReduceTrim):
		return ReduceTrim, nil
	}
	return "", fmt.Errorf("unknown reduction %q (want none, accessible, co-accessible or trim)", name)
}

// Reduce applies r to a. The result is a new automaton; a is never mutated.
func Reduce(a *domain.Automaton, r Reduction) *domain.Automaton {
	switch r {
	case ReduceAccessible:
		return AccessibleAutomaton(a)
	case ReduceCoAccessible:
		return CoAccessibleAutomaton(a)
	case ReduceTrim:
		return TrimAutomaton(a)
	}
	return a
}

// AccessibleStates returns the states reachable from the initial state of a,
// following its adjacency index. Order is discovery order.
func AccessibleStates(a *domain.Automaton) []string {
	if a.InitialState() == "" {
		return []string{}
	}
	return search([]string{a.InitialState()}, a.Successors)
}

// CoAccessibleStates returns the states from which a final state of a is reachable.
func CoAccessibleStates(a *domain.Automaton) []string {
	return search(a.FinalStates(), a.Predecessors)
}

// AccessibleAutomaton returns a new automaton restricted to the accessible states of a.
// The alphabet and initial state are kept.
func AccessibleAutomaton(a *domain.Automaton) *domain.Automaton {
	return restrict(a, AccessibleStates(a))
}

// CoAccessibleAutomaton returns a new automaton restricted to the co-accessible states of a.
// The initial state is kept even when it is not co-accessible.
func CoAccessibleAutomaton(a *domain.Automaton) *domain.Automaton {
	return restrict(a, CoAccessibleStates(a))
}

// TrimAutomaton returns the automaton restricted to states both accessible and co-accessible.
func TrimAutomaton(a *domain.Automaton) *domain.Automaton {
	return CoAccessibleAutomaton(AccessibleAutomaton(a))
}

func search(seeds []string, next func(string) []string) []string {
	var found orderedSet
	stack := make([]string, 0, len(seeds))
	for _, s := range seeds {
		if !found.has(s) {
			found.add(s)
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range next(s) {
			if found.has(t) {
				continue
			}
			found.add(t)
			stack = append(stack, t)
		}
	}
	return found.snapshot()
}

func restrict(a *domain.Automaton, keep []string) *domain.Automaton {
	set := make(map[string]struct{}, len(keep))
	for _, s := range keep {
		set[s] = struct{}{}
	}
	in := func(s string) bool {
		_, ok := set[s]
		return ok
	}

	var states, finals []string
	for _, s := range a.States() {
		if in(s) {
			states = append(states, s)
		}
	}
	for _, s := range a.FinalStates() {
		if in(s) {
			finals = append(finals, s)
		}
	}
	var instructions []domain.Instruction
	for _, i := range a.Instructions() {
		if in(i.From) && in(i.To) {
			instructions = append(instructions, i)
		}
	}
	return domain.NewAutomaton(a.Alphabet(), states, a.InitialState(), finals, instructions)
}
