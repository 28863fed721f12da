package domain

import "slices"

// Step is one discrete snapshot of an algorithm run.
// Queue and Accessible are owned by the step: later steps never alias them.
type Step struct {
	Line             int      `json:"line" yaml:"line"`
	HighlightedNodes []string `json:"highlightedNodes" yaml:"highlightedNodes"`
	HighlightedEdges []string `json:"highlightedEdges" yaml:"highlightedEdges"`
	Description      string   `json:"description" yaml:"description"`
	Queue            []string `json:"queue" yaml:"queue"`
	Accessible       []string `json:"accessible" yaml:"accessible"`
}

// EmptyStep is the neutral step shown when a run produced nothing.
func EmptyStep() Step {
	return Step{
		HighlightedNodes: []string{},
		HighlightedEdges: []string{},
		Queue:            []string{},
		Accessible:       []string{},
	}
}

// Clone returns a copy of the step that shares no slices with s.
func (s Step) Clone() Step {
	s.HighlightedNodes = slices.Clone(s.HighlightedNodes)
	s.HighlightedEdges = slices.Clone(s.HighlightedEdges)
	s.Queue = slices.Clone(s.Queue)
	s.Accessible = slices.Clone(s.Accessible)
	return s
}
