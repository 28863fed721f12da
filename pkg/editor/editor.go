package editor

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/aretw0/automata/pkg/domain"
)

var generatedID = regexp.MustCompile(`^S(\d+)$`)

// Editor is the mutable graph store a drawing surface edits.
// The core packages only ever receive Snapshot copies of it.
type Editor struct {
	alphabet []string
	nodes    []domain.Node
	edges    []domain.Edge
}

// New returns the default editor: a single initial state S0 and alphabet {a, b}.
func New() *Editor {
	return &Editor{
		alphabet: []string{"a", "b"},
		nodes:    []domain.Node{{ID: "S0", IsInitial: true}},
	}
}

// FromGraph returns an editor seeded with a copy of g and the given alphabet.
func FromGraph(g domain.Graph, alphabet []string) *Editor {
	g = g.Clone()
	return &Editor{
		alphabet: slices.Clone(alphabet),
		nodes:    g.Nodes,
		edges:    g.Edges,
	}
}

// Alphabet returns the declared symbols in insertion order.
func (e *Editor) Alphabet() []string {
	return slices.Clone(e.alphabet)
}

// AddSymbol declares a symbol. Empty and duplicate symbols are ignored.
func (e *Editor) AddSymbol(symbol string) bool {
	if symbol == "" || slices.Contains(e.alphabet, symbol) {
		return false
	}
	e.alphabet = append(e.alphabet, symbol)
	return true
}

// AddState appends a state named after the smallest free S<n> index and returns its id.
func (e *Editor) AddState() string {
	used := make(map[int]bool)
	for _, n := range e.nodes {
		if m := generatedID.FindStringSubmatch(n.ID); m != nil {
			if i, err := strconv.Atoi(m[1]); err == nil {
				used[i] = true
			}
		}
	}
	i := 0
	for used[i] {
		i++
	}
	id := fmt.Sprintf("S%d", i)
	e.nodes = append(e.nodes, domain.Node{ID: id})
	return id
}

// RemoveState deletes a state and every edge touching it.
func (e *Editor) RemoveState(id string) error {
	idx := e.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrStateNotFound, id)
	}
	e.nodes = slices.Delete(e.nodes, idx, idx+1)
	e.edges = slices.DeleteFunc(e.edges, func(ed domain.Edge) bool {
		return ed.Source == id || ed.Target == id
	})
	return nil
}

// SetInitial makes id the only initial state.
func (e *Editor) SetInitial(id string) error {
	if e.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", domain.ErrStateNotFound, id)
	}
	for i := range e.nodes {
		e.nodes[i].IsInitial = e.nodes[i].ID == id
	}
	return nil
}

// ToggleFinal flips the final mark of id and returns the new value.
func (e *Editor) ToggleFinal(id string) (bool, error) {
	idx := e.indexOf(id)
	if idx < 0 {
		return false, fmt.Errorf("%w: %s", domain.ErrStateNotFound, id)
	}
	e.nodes[idx].IsFinal = !e.nodes[idx].IsFinal
	return e.nodes[idx].IsFinal, nil
}

// Connect adds symbol to the edge source->target, creating the edge when needed.
// An existing edge keeps its id and gets its label re-sorted.
func (e *Editor) Connect(source, target, symbol string) (domain.Edge, error) {
	for _, id := range []string{source, target} {
		if e.indexOf(id) < 0 {
			return domain.Edge{}, fmt.Errorf("%w: %s", domain.ErrStateNotFound, id)
		}
	}
	for i, ed := range e.edges {
		if ed.Source == source && ed.Target == target {
			symbols := ParseLabel(ed.Label)
			if !slices.Contains(symbols, symbol) {
				e.edges[i].Label = FormatLabel(append(symbols, symbol))
			}
			return e.edges[i], nil
		}
	}
	ed := domain.Edge{
		ID:     domain.EdgeID(source, target),
		Source: source,
		Target: target,
		Label:  symbol,
	}
	e.edges = append(e.edges, ed)
	return ed, nil
}

// RemoveEdge deletes the edge with the given id.
func (e *Editor) RemoveEdge(id string) error {
	idx := slices.IndexFunc(e.edges, func(ed domain.Edge) bool { return ed.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrEdgeNotFound, id)
	}
	e.edges = slices.Delete(e.edges, idx, idx+1)
	return nil
}

// UsedSymbols returns the symbols already labelling edges that leave source,
// in first-seen order.
func (e *Editor) UsedSymbols(source string) []string {
	var out []string
	for _, ed := range e.edges {
		if ed.Source != source {
			continue
		}
		for _, s := range ParseLabel(ed.Label) {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}

// Snapshot returns an independent copy of the current graph.
func (e *Editor) Snapshot() domain.Graph {
	return domain.Graph{Nodes: e.nodes, Edges: e.edges}.Clone()
}

// Export converts the current graph into an Automaton.
func (e *Editor) Export() *domain.Automaton {
	return Export(e.Snapshot(), e.alphabet)
}

// Export converts a graph snapshot into an Automaton. The initial state is the
// first node flagged initial (empty if none); every symbol of a labelled edge
// becomes one Instruction. Unlabelled edges carry no transition.
func Export(g domain.Graph, alphabet []string) *domain.Automaton {
	states := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		states = append(states, n.ID)
	}
	var initial string
	if n, ok := g.Initial(); ok {
		initial = n.ID
	}
	var finals []string
	for _, n := range g.Finals() {
		finals = append(finals, n.ID)
	}
	var instructions []domain.Instruction
	for _, ed := range g.Edges {
		for _, sym := range ParseLabel(ed.Label) {
			instructions = append(instructions, domain.Instruction{From: ed.Source, Symbol: sym, To: ed.Target})
		}
	}
	return domain.NewAutomaton(alphabet, states, initial, finals, instructions)
}

func (e *Editor) indexOf(id string) int {
	return slices.IndexFunc(e.nodes, func(n domain.Node) bool { return n.ID == id })
}
