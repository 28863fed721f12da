package editor

import (
	"slices"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// LabelSeparator joins the symbols of a multi-symbol edge label.
const LabelSeparator = ", "

// ParseLabel splits an edge label into its symbols. Empty parts are dropped.
func ParseLabel(label string) []string {
	if label == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(label, LabelSeparator) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FormatLabel joins symbols into an edge label, sorted and without duplicates.
func FormatLabel(symbols []string) string {
	sorted := slices.Clone(symbols)
	slices.Sort(sorted)
	return strings.Join(slices.Compact(sorted), LabelSeparator)
}

// LabelSymbols returns the sorted distinct symbols used by the edge labels of g.
func LabelSymbols(g domain.Graph) []string {
	var symbols []string
	for _, e := range g.Edges {
		symbols = append(symbols, ParseLabel(e.Label)...)
	}
	slices.Sort(symbols)
	return slices.Compact(symbols)
}
