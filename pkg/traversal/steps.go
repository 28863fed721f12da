package traversal

import (
	"fmt"
	"iter"
	"slices"

	"github.com/aretw0/automata/pkg/domain"
)

// Frontier selects the end of L a state is removed from.
type Frontier string

const (
	// FrontierLIFO removes the most recently pushed state (default).
	FrontierLIFO Frontier = "lifo"
	// FrontierFIFO removes the oldest pushed state.
	FrontierFIFO Frontier = "fifo"
)

// ParseFrontier resolves a frontier name; empty selects FrontierLIFO.
func ParseFrontier(name string) (Frontier, error) {
	switch Frontier(name) {
	case "", FrontierLIFO:
		return FrontierLIFO, nil
	case FrontierFIFO:
		return FrontierFIFO, nil
	}
	return "", fmt.Errorf("unknown frontier %q (want lifo or fifo)", name)
}

type config struct {
	frontier Frontier
}

// Option configures a generator.
type Option func(*config)

// WithFrontier sets the removal discipline of L.
func WithFrontier(f Frontier) Option {
	return func(c *config) {
		c.frontier = f
	}
}

func newConfig(opts []Option) config {
	c := config{frontier: FrontierLIFO}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Steps returns the step sequence of alg over g.
func Steps(alg domain.Algorithm, g domain.Graph, opts ...Option) (iter.Seq[domain.Step], error) {
	switch alg {
	case domain.AlgorithmAccessible:
		return Accessible(g, opts...), nil
	case domain.AlgorithmCoAccessible:
		return CoAccessible(g, opts...), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAlgorithm, alg)
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq[domain.Step]) []domain.Step {
	return slices.Collect(seq)
}

// Result returns the final result set of a collected run (empty for no steps).
func Result(steps []domain.Step) []string {
	if len(steps) == 0 {
		return []string{}
	}
	return slices.Clone(steps[len(steps)-1].Accessible)
}

// Accessible returns the steps computing the states reachable from the
// initial node of g. A graph without an initial node yields a run that reaches nothing.
func Accessible(g domain.Graph, opts ...Option) iter.Seq[domain.Step] {
	var seeds []string
	if n, ok := g.Initial(); ok {
		seeds = []string{n.ID}
	}
	return walk(g, seeds, forward, accessibleText, newConfig(opts))
}

// CoAccessible returns the steps computing the states from which a final node
// of g is reachable. Edges are followed backwards; the frontier is seeded with
// every final node in node order.
func CoAccessible(g domain.Graph, opts ...Option) iter.Seq[domain.Step] {
	var seeds []string
	for _, n := range g.Finals() {
		seeds = append(seeds, n.ID)
	}
	return walk(g, seeds, backward, coAccessibleText, newConfig(opts))
}

// neighbor is one inspected edge and the state it leads to.
type neighbor struct {
	edge string
	to   string
}

type direction func(g domain.Graph, known map[string]struct{}, s string) []neighbor

func forward(g domain.Graph, known map[string]struct{}, s string) []neighbor {
	var out []neighbor
	for _, e := range g.Edges {
		if e.Source != s {
			continue
		}
		if _, ok := known[e.Target]; !ok {
			continue
		}
		out = append(out, neighbor{edge: e.ID, to: e.Target})
	}
	return out
}

func backward(g domain.Graph, known map[string]struct{}, s string) []neighbor {
	var out []neighbor
	for _, e := range g.Edges {
		if e.Target != s {
			continue
		}
		if _, ok := known[e.Source]; !ok {
			continue
		}
		out = append(out, neighbor{edge: e.ID, to: e.Source})
	}
	return out
}

// orderedSet keeps insertion order for display.
type orderedSet struct {
	items []string
	index map[string]struct{}
}

func (o *orderedSet) add(id string) {
	if o.index == nil {
		o.index = make(map[string]struct{})
	}
	if _, ok := o.index[id]; ok {
		return
	}
	o.index[id] = struct{}{}
	o.items = append(o.items, id)
}

func (o *orderedSet) has(id string) bool {
	_, ok := o.index[id]
	return ok
}

func (o *orderedSet) snapshot() []string {
	return append([]string{}, o.items...)
}

func walk(g domain.Graph, seeds []string, next direction, text narration, cfg config) iter.Seq[domain.Step] {
	return func(yield func(domain.Step) bool) {
		known := make(map[string]struct{}, len(g.Nodes))
		for _, n := range g.Nodes {
			known[n.ID] = struct{}{}
		}

		var result orderedSet
		var frontier []string

		emit := func(line int, nodes, edges []string, desc string) bool {
			return yield(domain.Step{
				Line:             line,
				HighlightedNodes: append([]string{}, nodes...),
				HighlightedEdges: append([]string{}, edges...),
				Description:      desc,
				Queue:            append([]string{}, frontier...),
				Accessible:       result.snapshot(),
			})
		}

		for _, s := range seeds {
			result.add(s)
		}
		if !emit(1, seeds, nil, text.initResult) {
			return
		}

		frontier = append(frontier, seeds...)
		if !emit(2, seeds, nil, text.initFrontier) {
			return
		}

		for len(frontier) > 0 {
			if !emit(3, nil, nil, "Check whether the queue is empty") {
				return
			}

			var s string
			if cfg.frontier == FrontierFIFO {
				s, frontier = frontier[0], frontier[1:]
			} else {
				s, frontier = frontier[len(frontier)-1], frontier[:len(frontier)-1]
			}
			if !emit(4, []string{s}, nil, fmt.Sprintf("Dequeue state %s", s)) {
				return
			}

			neighbors := next(g, known, s)
			if len(neighbors) == 0 {
				if !emit(5, []string{s}, nil, fmt.Sprintf("No transition %s %s", text.relation, s)) {
					return
				}
			}

			for _, nb := range neighbors {
				t := nb.to
				if !emit(5, []string{s, t}, []string{nb.edge}, text.check(s, t)) {
					return
				}
				if result.has(t) {
					if !emit(6, []string{t}, nil, fmt.Sprintf("%s is already %s", t, text.adjective)) {
						return
					}
					continue
				}
				if !emit(6, []string{t}, nil, fmt.Sprintf("%s is not in the %s set %s", t, text.adjective, text.set)) {
					return
				}
				result.add(t)
				if !emit(7, []string{t}, nil, fmt.Sprintf("Mark %s as %s", t, text.adjective)) {
					return
				}
				frontier = append(frontier, t)
				if !emit(8, []string{t}, nil, fmt.Sprintf("Add %s to the queue", t)) {
					return
				}
			}
		}

		if !emit(3, nil, nil, "The queue is empty") {
			return
		}
		emit(9, result.snapshot(), nil, fmt.Sprintf("Algorithm finished. Return the %s states.", text.adjective))
	}
}

// narration holds the wording that differs between the two algorithms.
type narration struct {
	set          string
	adjective    string
	relation     string
	initResult   string
	initFrontier string
	check        func(s, t string) string
}

var accessibleText = narration{
	set:          "P",
	adjective:    "accessible",
	relation:     "from",
	initResult:   "Initialize the accessible set P with the initial state",
	initFrontier: "Initialize the queue L with the initial state",
	check: func(s, t string) string {
		return fmt.Sprintf("Check the transition from %s to %s", s, t)
	},
}

var coAccessibleText = narration{
	set:          "Q",
	adjective:    "co-accessible",
	relation:     "into",
	initResult:   "Initialize the co-accessible set Q with the final states",
	initFrontier: "Initialize the queue L with the final states",
	check: func(s, t string) string {
		return fmt.Sprintf("Check the transition from %s to %s", t, s)
	},
}
