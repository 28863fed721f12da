package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAutomaton_DeduplicatesSets(t *testing.T) {
	a := domain.NewAutomaton(
		[]string{"a", "b", "a"},
		[]string{"S0", "S1", "S0"},
		"S0",
		[]string{"S1", "S1"},
		nil,
	)

	assert.Equal(t, []string{"a", "b"}, a.Alphabet())
	assert.Equal(t, []string{"S0", "S1"}, a.States())
	assert.Equal(t, []string{"S1"}, a.FinalStates())
	assert.True(t, a.IsFinal("S1"))
	assert.False(t, a.IsFinal("S0"))
}

func TestNewAutomaton_AdjacencyLastWriteWins(t *testing.T) {
	a := domain.NewAutomaton(
		[]string{"a"},
		[]string{"S0", "S1", "S2"},
		"S0",
		nil,
		[]domain.Instruction{
			{From: "S0", Symbol: "a", To: "S1"},
			{From: "S0", Symbol: "a", To: "S2"},
		},
	)

	to, ok := a.Next("S0", "a")
	require.True(t, ok)
	assert.Equal(t, "S2", to)
	assert.Equal(t, []string{"S2"}, a.Successors("S0"))
	assert.Empty(t, a.Predecessors("S1"), "overwritten transition must not count")
	assert.Equal(t, []string{"S0"}, a.Predecessors("S2"))

	// The ordered instruction list is kept verbatim.
	assert.Len(t, a.Instructions(), 2)
}

func TestAutomaton_IsReadOnly(t *testing.T) {
	states := []string{"S0", "S1"}
	ins := []domain.Instruction{{From: "S0", Symbol: "a", To: "S1"}}
	a := domain.NewAutomaton([]string{"a"}, states, "S0", nil, ins)

	states[0] = "mutated"
	ins[0].To = "mutated"
	a.States()[1] = "mutated"
	a.Transitions("S0")["a"] = "mutated"

	assert.Equal(t, []string{"S0", "S1"}, a.States())
	to, _ := a.Next("S0", "a")
	assert.Equal(t, "S1", to)
}

func TestAutomaton_AcceptsInconsistentInput(t *testing.T) {
	a := domain.NewAutomaton(nil, []string{"S0"}, "ghost", nil, []domain.Instruction{
		{From: "S0", Symbol: "z", To: "nowhere"},
	})

	to, ok := a.Next("S0", "z")
	assert.True(t, ok)
	assert.Equal(t, "nowhere", to)

	err := a.Validate()
	require.Error(t, err)
	assert.Len(t, domain.ValidationErrors(err), 3)
}

func TestAutomaton_Validate(t *testing.T) {
	a := domain.NewAutomaton([]string{"a"}, []string{"S0", "S1"}, "S0", []string{"S1"},
		[]domain.Instruction{{From: "S0", Symbol: "a", To: "S1"}})
	assert.NoError(t, a.Validate())

	empty := domain.NewAutomaton(nil, nil, "", nil, nil)
	err := empty.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is required")
}

func TestAutomaton_MarshalJSON(t *testing.T) {
	a := domain.NewAutomaton([]string{"a"}, []string{"S0"}, "S0", nil, nil)
	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"alphabet":["a"],"states":["S0"],"initialState":"S0","finalStates":[],"transitions":[]}`, string(data))
}
