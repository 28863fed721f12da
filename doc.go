/*
Package automata animates the accessible and co-accessible state computations of
a finite automaton, step by step.

A drawn automaton (a domain.Graph of states and labelled transitions) is fed to
one of two traversals. Each traversal yields an ordered list of domain.Step
snapshots: the pseudo-code line being executed, the states and transitions to
highlight, a short narration, the work queue and the set found so far. A
playback.Visualizer replays the list at a fixed cadence and, once the run has
finished, prunes the graph to the computed set (and restores it on demand).

# Concept

	accessible:    P = {initial}, explore transitions forward.
	co-accessible: Q = finals,    explore transitions backward.

Both traversals are lazy iterators (iter.Seq[domain.Step]) and never fail on
degenerate graphs: a missing initial state, no final states or dangling edges
simply produce short runs.

# Usage

	g := domain.Graph{
		Nodes: []domain.Node{{ID: "S0", IsInitial: true}, {ID: "S1", IsFinal: true}},
		Edges: []domain.Edge{{ID: "eS0-S1", Source: "S0", Target: "S1", Label: "a"}},
	}

	steps, err := automata.Generate(domain.AlgorithmAccessible, g)
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range steps {
		fmt.Println(s.Line, s.Description)
	}

The same core is exposed by the automata CLI (steps, play, graph, prune,
export, validate), an HTTP API (serve) and an MCP server (mcp).
*/
package automata
