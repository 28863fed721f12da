package domain

import (
	"fmt"
	"strings"
)

// Algorithm names a traversal the workbench can animate.
type Algorithm string

const (
	// AlgorithmAccessible computes the states reachable from the initial state.
	AlgorithmAccessible Algorithm = "accessible"
	// AlgorithmCoAccessible computes the states from which a final state is reachable.
	AlgorithmCoAccessible Algorithm = "co-accessible"
)

// Algorithms lists the supported algorithms in display order.
var Algorithms = []Algorithm{AlgorithmAccessible, AlgorithmCoAccessible}

// ParseAlgorithm resolves a user supplied name. Matching ignores case and accepts
// "coaccessible" / "co_accessible" spellings. An empty name selects AlgorithmAccessible.
func ParseAlgorithm(name string) (Algorithm, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("_", "-").Replace(n)
	switch n {
	case "", string(AlgorithmAccessible):
		return AlgorithmAccessible, nil
	case string(AlgorithmCoAccessible), "coaccessible":
		return AlgorithmCoAccessible, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Valid reports whether a names a supported algorithm.
func (a Algorithm) Valid() bool {
	return a == AlgorithmAccessible || a == AlgorithmCoAccessible
}

// ResultName is the set name used in the pseudo-code (P or Q).
func (a Algorithm) ResultName() string {
	if a == AlgorithmCoAccessible {
		return "Q"
	}
	return "P"
}

// CodeLine is one numbered line of an algorithm listing.
type CodeLine struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

var accessibleCode = []CodeLine{
	{1, "Initialize P = {i} (accessible states)"},
	{2, "Initialize L = [i] (queue)"},
	{3, "While L is not empty:"},
	{4, "  Remove a state s from L"},
	{5, "  For each transition (s, a, t):"},
	{6, "    If t is not in P:"},
	{7, "      Add t to P"},
	{8, "      Add t to L"},
	{9, "Return P"},
}

var coAccessibleCode = []CodeLine{
	{1, "Initialize Q = {f | f ∈ F} (co-accessible states)"},
	{2, "Initialize L = [f | f ∈ F] (queue)"},
	{3, "While L is not empty:"},
	{4, "  Remove a state s from L"},
	{5, "  For each transition (t, a, s):"},
	{6, "    If t is not in Q:"},
	{7, "      Add t to Q"},
	{8, "      Add t to L"},
	{9, "Return Q"},
}

// PseudoCode returns the listing whose line numbers the steps of a refer to.
func PseudoCode(a Algorithm) []CodeLine {
	src := accessibleCode
	if a == AlgorithmCoAccessible {
		src = coAccessibleCode
	}
	out := make([]CodeLine, len(src))
	copy(out, src)
	return out
}

// AlgorithmInfo describes one algorithm for listings.
type AlgorithmInfo struct {
	Name       Algorithm  `json:"name"`
	ResultName string     `json:"resultName"`
	Code       []CodeLine `json:"code"`
}

// Catalog returns every supported algorithm with its pseudo-code.
func Catalog() []AlgorithmInfo {
	out := make([]AlgorithmInfo, 0, len(Algorithms))
	for _, alg := range Algorithms {
		out = append(out, AlgorithmInfo{Name: alg, ResultName: alg.ResultName(), Code: PseudoCode(alg)})
	}
	return out
}
