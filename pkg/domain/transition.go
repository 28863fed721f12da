package domain

// Instruction is a single labeled transition (from, symbol, to) of an Automaton.
type Instruction struct {
	From   string `json:"from" yaml:"from"`
	Symbol string `json:"symbol" yaml:"symbol"`
	To     string `json:"to" yaml:"to"`
}

// Edge is a directed edge of the editor graph.
// Label carries the symbols of the edge joined with ", "; traversals ignore it.
type Edge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
}

// EdgeID returns the identifier the editor assigns to the edge source->target.
func EdgeID(source, target string) string {
	return "e" + source + "-" + target
}
