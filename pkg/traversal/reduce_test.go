package traversal_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/traversal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAutomaton() *domain.Automaton {
	// S0 -a-> S1 -b-> S2 (final), S3 -a-> S2, S1 -a-> S4 (dead end)
	return domain.NewAutomaton(
		[]string{"a", "b"},
		[]string{"S0", "S1", "S2", "S3", "S4"},
		"S0",
		[]string{"S2"},
		[]domain.Instruction{
			{From: "S0", Symbol: "a", To: "S1"},
			{From: "S1", Symbol: "b", To: "S2"},
			{From: "S3", Symbol: "a", To: "S2"},
			{From: "S1", Symbol: "a", To: "S4"},
		},
	)
}

func TestAccessibleStates(t *testing.T) {
	assert.ElementsMatch(t, []string{"S0", "S1", "S2", "S4"}, traversal.AccessibleStates(sampleAutomaton()))

	noInit := domain.NewAutomaton(nil, []string{"S0"}, "", nil, nil)
	assert.Empty(t, traversal.AccessibleStates(noInit))
}

func TestCoAccessibleStates(t *testing.T) {
	assert.ElementsMatch(t, []string{"S2", "S1", "S3", "S0"}, traversal.CoAccessibleStates(sampleAutomaton()))
}

func TestAccessibleAutomaton_Restriction(t *testing.T) {
	acc := traversal.AccessibleAutomaton(sampleAutomaton())

	assert.Equal(t, []string{"S0", "S1", "S2", "S4"}, acc.States())
	assert.Equal(t, "S0", acc.InitialState())
	assert.Equal(t, []string{"a", "b"}, acc.Alphabet())
	assert.Len(t, acc.Instructions(), 3)
	for _, in := range acc.Instructions() {
		assert.NotEqual(t, "S3", in.From)
	}
}

func TestTrimAutomaton(t *testing.T) {
	a := sampleAutomaton()
	trimmed := traversal.TrimAutomaton(a)

	assert.Equal(t, []string{"S0", "S1", "S2"}, trimmed.States())
	assert.Equal(t, []string{"S2"}, trimmed.FinalStates())
	assert.Equal(t, []domain.Instruction{
		{From: "S0", Symbol: "a", To: "S1"},
		{From: "S1", Symbol: "b", To: "S2"},
	}, trimmed.Instructions())

	// The source automaton is untouched.
	assert.Len(t, a.States(), 5)
}

func TestCoAccessibleAutomaton_KeepsInitial(t *testing.T) {
	a := domain.NewAutomaton([]string{"a"}, []string{"S0", "S1"}, "S0", []string{"S1"}, nil)
	co := traversal.CoAccessibleAutomaton(a)

	assert.Equal(t, []string{"S1"}, co.States())
	assert.Equal(t, "S0", co.InitialState())
	assert.Error(t, co.Validate())
}

func TestParseReduction(t *testing.T) {
	for name, want := range map[string]traversal.Reduction{
		"":              traversal.ReduceNone,
		"none":          traversal.ReduceNone,
		"accessible":    traversal.ReduceAccessible,
		"Co_Accessible": traversal.ReduceCoAccessible,
		"coaccessible":  traversal.ReduceCoAccessible,
		"trim":          traversal.ReduceTrim,
	} {
		got, err := traversal.ParseReduction(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := traversal.ParseReduction("minimize")
	assert.ErrorContains(t, err, "unknown reduction")
}

func TestReduce(t *testing.T) {
	a := sampleAutomaton()

	assert.Same(t, a, traversal.Reduce(a, traversal.ReduceNone))
	assert.Equal(t, []string{"S0", "S1", "S2", "S4"}, traversal.Reduce(a, traversal.ReduceAccessible).States())
	assert.Equal(t, []string{"S0", "S1", "S2", "S3"}, traversal.Reduce(a, traversal.ReduceCoAccessible).States())
	assert.Equal(t, []string{"S0", "S1", "S2"}, traversal.Reduce(a, traversal.ReduceTrim).States())
}
