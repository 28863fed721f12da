package playback

import "github.com/aretw0/automata/pkg/domain"

// View is the read-only bundle a renderer consumes for the current step.
type View struct {
	ID               string            `json:"id,omitempty"`
	Algorithm        domain.Algorithm  `json:"algorithm"`
	ResultName       string            `json:"resultName"`
	Line             int               `json:"line"`
	Description      string            `json:"description"`
	Queue            []string          `json:"queue"`
	Accessible       []string          `json:"accessible"`
	HighlightedNodes []string          `json:"highlightedNodes"`
	HighlightedEdges []string          `json:"highlightedEdges"`
	Cursor           int               `json:"cursor"`
	Total            int               `json:"total"`
	Playing          bool              `json:"playing"`
	Finished         bool              `json:"finished"`
	CanPrune         bool              `json:"canPrune"`
	CanRestore       bool              `json:"canRestore"`
	Code             []domain.CodeLine `json:"code"`
	Graph            domain.Graph      `json:"graph"`
}

func newView(alg domain.Algorithm, st Status, pruned bool, g domain.Graph) View {
	return View{
		Algorithm:        alg,
		ResultName:       alg.ResultName(),
		Line:             st.Step.Line,
		Description:      st.Step.Description,
		Queue:            st.Step.Queue,
		Accessible:       st.Step.Accessible,
		HighlightedNodes: st.Step.HighlightedNodes,
		HighlightedEdges: st.Step.HighlightedEdges,
		Cursor:           st.Cursor,
		Total:            st.Total,
		Playing:          st.Playing,
		Finished:         st.Finished,
		CanPrune:         st.Finished,
		CanRestore:       pruned,
		Code:             domain.PseudoCode(alg),
		Graph:            g,
	}
}
