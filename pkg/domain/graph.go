package domain

import "slices"

// Graph is the snapshot of the editor state handed to the traversal generators.
// Node and edge order is significant: it drives seeding and exploration order.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"states"`
	Edges []Edge `json:"edges" yaml:"transitions"`
}

// Clone returns a deep copy of the graph.
func (g Graph) Clone() Graph {
	return Graph{
		Nodes: slices.Clone(g.Nodes),
		Edges: slices.Clone(g.Edges),
	}
}

// Initial returns the first node flagged initial.
func (g Graph) Initial() (Node, bool) {
	for _, n := range g.Nodes {
		if n.IsInitial {
			return n, true
		}
	}
	return Node{}, false
}

// Finals returns every node flagged final, in node order.
func (g Graph) Finals() []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.IsFinal {
			out = append(out, n)
		}
	}
	return out
}

// Node looks up a node by id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Outgoing returns the edges leaving id, in edge order.
func (g Graph) Outgoing(id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// Incoming returns the edges entering id, in edge order.
func (g Graph) Incoming(id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Target == id {
			out = append(out, e)
		}
	}
	return out
}

// Restrict returns the subgraph made of the kept nodes and of the edges whose
// endpoints are both kept. Order of the remaining elements is preserved.
func (g Graph) Restrict(keep []string) Graph {
	set := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		set[id] = struct{}{}
	}
	out := Graph{Nodes: []Node{}, Edges: []Edge{}}
	for _, n := range g.Nodes {
		if _, ok := set[n.ID]; ok {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, e := range g.Edges {
		_, src := set[e.Source]
		_, dst := set[e.Target]
		if src && dst {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}
