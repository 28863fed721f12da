package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Overlay contains the traversal state to visualize on the graph.
type Overlay struct {
	Accessible       []string
	HighlightedNodes []string
	HighlightedEdges []string
}

// OverlayFromStep builds the overlay shown while step s is current.
func OverlayFromStep(s domain.Step) *Overlay {
	return &Overlay{
		Accessible:       s.Accessible,
		HighlightedNodes: s.HighlightedNodes,
		HighlightedEdges: s.HighlightedEdges,
	}
}

// GenerateMermaid produces a Mermaid flowchart for the graph.
// Shapes follow automaton conventions:
// - Initial: ((Circle))
// - Final: (((Double circle)))
// - Default: (Rounded)
// A dangling "start" arrow points at the initial state.
// Overlay styles (accessible/current/edge highlight) are applied if provided.
func GenerateMermaid(g domain.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("flowchart LR\n")

	for _, node := range g.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "(", ")"
		switch {
		case node.IsFinal:
			opener, closer = "(((", ")))"
		case node.IsInitial:
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escape(node.ID), closer)
	}

	links := 0
	if initial, ok := g.Initial(); ok {
		sb.WriteString("    __start__[ ]:::entry\n")
		fmt.Fprintf(&sb, "    __start__ --> %s\n", sanitizeMermaidID(initial.ID))
		links++
	}

	edgeLinks := make(map[string]int, len(g.Edges))
	for _, e := range g.Edges {
		arrow := "-->"
		if e.Label != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escape(e.Label))
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(e.Source), arrow, sanitizeMermaidID(e.Target))
		edgeLinks[e.ID] = links
		links++
	}

	sb.WriteString("\n    classDef entry fill:none,stroke:none;\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef accessible fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for _, id := range compact(overlay.Accessible) {
			if _, ok := g.Node(id); ok && !slices.Contains(overlay.HighlightedNodes, id) {
				fmt.Fprintf(&sb, "    class %s accessible;\n", sanitizeMermaidID(id))
			}
		}
		for _, id := range compact(overlay.HighlightedNodes) {
			if _, ok := g.Node(id); ok {
				fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(id))
			}
		}
		for _, id := range compact(overlay.HighlightedEdges) {
			if i, ok := edgeLinks[id]; ok {
				fmt.Fprintf(&sb, "    linkStyle %d stroke:#fbc02d,stroke-width:4px;\n", i)
			}
		}
	}

	return sb.String()
}

func compact(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "\"", "_")
	return s
}
