package domain

import (
	"encoding/json"
	"slices"
)

// Automaton is the normalized, read-only model of a finite-state automaton.
//
// Construction performs no validation beyond duplicate elimination: an initial
// state missing from the state set, or instructions referencing unknown states,
// are accepted as given. Use Validate to check consistency explicitly.
type Automaton struct {
	alphabet     []string
	states       []string
	stateSet     map[string]struct{}
	initialState string
	finalStates  []string
	finalSet     map[string]struct{}
	instructions []Instruction

	// adjacency maps state -> symbol -> destination. Built once from
	// instructions; a later instruction with the same (from, symbol) wins.
	adjacency map[string]map[string]string
}

// NewAutomaton builds an Automaton from its defining collections.
// Input slices are copied; duplicates in alphabet, states and finalStates are dropped
// while keeping first-seen order.
func NewAutomaton(alphabet, states []string, initialState string, finalStates []string, instructions []Instruction) *Automaton {
	a := &Automaton{
		alphabet:     dedupe(alphabet),
		states:       dedupe(states),
		initialState: initialState,
		finalStates:  dedupe(finalStates),
		instructions: slices.Clone(instructions),
		adjacency:    make(map[string]map[string]string),
	}
	a.stateSet = toSet(a.states)
	a.finalSet = toSet(a.finalStates)

	for _, in := range a.instructions {
		row, ok := a.adjacency[in.From]
		if !ok {
			row = make(map[string]string)
			a.adjacency[in.From] = row
		}
		row[in.Symbol] = in.To
	}
	return a
}

// Alphabet returns the symbols of the automaton in first-seen order.
func (a *Automaton) Alphabet() []string { return slices.Clone(a.alphabet) }

// States returns the state identifiers in first-seen order.
func (a *Automaton) States() []string { return slices.Clone(a.states) }

// InitialState returns the initial state id (possibly empty).
func (a *Automaton) InitialState() string { return a.initialState }

// FinalStates returns the final state identifiers in first-seen order.
func (a *Automaton) FinalStates() []string { return slices.Clone(a.finalStates) }

// Instructions returns the transitions in their original order.
func (a *Automaton) Instructions() []Instruction { return slices.Clone(a.instructions) }

// HasState reports whether id belongs to the state set.
func (a *Automaton) HasState(id string) bool {
	_, ok := a.stateSet[id]
	return ok
}

// IsFinal reports whether id is a final state.
func (a *Automaton) IsFinal(id string) bool {
	_, ok := a.finalSet[id]
	return ok
}

// Next returns the destination reached from state on symbol.
func (a *Automaton) Next(state, symbol string) (string, bool) {
	to, ok := a.adjacency[state][symbol]
	return to, ok
}

// Transitions returns a copy of the symbol -> destination row of state.
func (a *Automaton) Transitions(state string) map[string]string {
	row := a.adjacency[state]
	out := make(map[string]string, len(row))
	for sym, to := range row {
		out[sym] = to
	}
	return out
}

// Successors returns the distinct destinations of state, ordered by the first
// instruction that reaches them. Overwritten (from, symbol) pairs are not reported.
func (a *Automaton) Successors(state string) []string {
	row := a.adjacency[state]
	var out []string
	seen := make(map[string]struct{})
	for _, in := range a.instructions {
		if in.From != state {
			continue
		}
		to, ok := row[in.Symbol]
		if !ok || to != in.To {
			continue
		}
		if _, dup := seen[to]; dup {
			continue
		}
		seen[to] = struct{}{}
		out = append(out, to)
	}
	return out
}

// Predecessors returns the distinct states having a live adjacency entry into state,
// ordered by instruction order.
func (a *Automaton) Predecessors(state string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, in := range a.instructions {
		if in.To != state || a.adjacency[in.From][in.Symbol] != state {
			continue
		}
		if _, dup := seen[in.From]; dup {
			continue
		}
		seen[in.From] = struct{}{}
		out = append(out, in.From)
	}
	return out
}

// Validate checks that the automaton is internally consistent.
// It returns an *AggregateError listing every problem found, or nil.
func (a *Automaton) Validate() error {
	var errs []error
	if a.initialState == "" {
		errs = append(errs, &ValidationError{Key: "initialState", Reason: "is required"})
	} else if !a.HasState(a.initialState) {
		errs = append(errs, &ValidationError{Key: a.initialState, Reason: "initial state is not a declared state"})
	}
	for _, f := range a.finalStates {
		if !a.HasState(f) {
			errs = append(errs, &ValidationError{Key: f, Reason: "final state is not a declared state"})
		}
	}
	symbols := toSet(a.alphabet)
	for _, in := range a.instructions {
		if !a.HasState(in.From) {
			errs = append(errs, &ValidationError{Key: in.From, Reason: "transition source is not a declared state", Value: in})
		}
		if !a.HasState(in.To) {
			errs = append(errs, &ValidationError{Key: in.To, Reason: "transition target is not a declared state", Value: in})
		}
		if _, ok := symbols[in.Symbol]; !ok {
			errs = append(errs, &ValidationError{Key: in.Symbol, Reason: "symbol is not in the alphabet", Value: in})
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

type automatonJSON struct {
	Alphabet     []string      `json:"alphabet"`
	States       []string      `json:"states"`
	InitialState string        `json:"initialState"`
	FinalStates  []string      `json:"finalStates"`
	Transitions  []Instruction `json:"transitions"`
}

// MarshalJSON encodes the defining collections; the adjacency index is derived and omitted.
func (a *Automaton) MarshalJSON() ([]byte, error) {
	return json.Marshal(automatonJSON{
		Alphabet:     nonNil(a.alphabet),
		States:       nonNil(a.states),
		InitialState: a.initialState,
		FinalStates:  nonNil(a.finalStates),
		Transitions:  nonNil(a.instructions),
	})
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func toSet(in []string) map[string]struct{} {
	set := make(map[string]struct{}, len(in))
	for _, s := range in {
		set[s] = struct{}{}
	}
	return set
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
