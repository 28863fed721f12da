package editor_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, editor.ParseLabel("a, b"))
	assert.Nil(t, editor.ParseLabel(""))
	assert.Equal(t, "a, b, c", editor.FormatLabel([]string{"c", "a", "b", "a"}))

	g := domain.Graph{Edges: []domain.Edge{{Label: "b, a"}, {Label: "c, a"}, {}}}
	assert.Equal(t, []string{"a", "b", "c"}, editor.LabelSymbols(g))
}

func TestEditor_Defaults(t *testing.T) {
	e := editor.New()
	g := e.Snapshot()

	require.Len(t, g.Nodes, 1)
	assert.Equal(t, domain.Node{ID: "S0", IsInitial: true}, g.Nodes[0])
	assert.Equal(t, []string{"a", "b"}, e.Alphabet())
	assert.True(t, e.AddSymbol("c"))
	assert.False(t, e.AddSymbol("c"))
	assert.False(t, e.AddSymbol(""))
}

func TestEditor_AddStateFillsGaps(t *testing.T) {
	e := editor.New()
	assert.Equal(t, "S1", e.AddState())
	assert.Equal(t, "S2", e.AddState())
	require.NoError(t, e.RemoveState("S1"))
	assert.Equal(t, "S1", e.AddState())
	assert.Equal(t, "S3", e.AddState())
}

func TestEditor_SetInitialIsExclusive(t *testing.T) {
	e := editor.New()
	s1 := e.AddState()
	require.NoError(t, e.SetInitial(s1))

	g := e.Snapshot()
	initial, ok := g.Initial()
	require.True(t, ok)
	assert.Equal(t, s1, initial.ID)
	assert.False(t, g.Nodes[0].IsInitial)

	assert.ErrorIs(t, e.SetInitial("nope"), domain.ErrStateNotFound)
}

func TestEditor_ToggleFinal(t *testing.T) {
	e := editor.New()
	final, err := e.ToggleFinal("S0")
	require.NoError(t, err)
	assert.True(t, final)
	final, _ = e.ToggleFinal("S0")
	assert.False(t, final)
}

func TestEditor_ConnectMergesLabels(t *testing.T) {
	e := editor.New()
	s1 := e.AddState()

	ed, err := e.Connect("S0", s1, "b")
	require.NoError(t, err)
	assert.Equal(t, "eS0-S1", ed.ID)

	ed, err = e.Connect("S0", s1, "a")
	require.NoError(t, err)
	assert.Equal(t, "a, b", ed.Label)

	ed, _ = e.Connect("S0", s1, "a")
	assert.Equal(t, "a, b", ed.Label)
	assert.Len(t, e.Snapshot().Edges, 1)
	assert.Equal(t, []string{"a", "b"}, e.UsedSymbols("S0"))
	assert.Empty(t, e.UsedSymbols(s1))

	_, err = e.Connect("S0", "ghost", "a")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestEditor_RemoveStateDropsEdges(t *testing.T) {
	e := editor.New()
	s1 := e.AddState()
	_, _ = e.Connect("S0", s1, "a")
	_, _ = e.Connect(s1, "S0", "b")

	require.NoError(t, e.RemoveState(s1))
	assert.Empty(t, e.Snapshot().Edges)
	assert.ErrorIs(t, e.RemoveEdge("eS0-S1"), domain.ErrEdgeNotFound)
}

func TestEditor_SnapshotIsIndependent(t *testing.T) {
	e := editor.New()
	g := e.Snapshot()
	g.Nodes[0].IsInitial = false

	again := e.Snapshot()
	assert.True(t, again.Nodes[0].IsInitial)
}

func TestExport(t *testing.T) {
	e := editor.New()
	s1 := e.AddState()
	_, _ = e.ToggleFinal(s1)
	_, _ = e.Connect("S0", s1, "a")
	_, _ = e.Connect("S0", s1, "b")
	_, _ = e.Connect(s1, s1, "a")

	a := e.Export()
	assert.Equal(t, "S0", a.InitialState())
	assert.Equal(t, []string{"S0", "S1"}, a.States())
	assert.Equal(t, []string{"S1"}, a.FinalStates())
	assert.Equal(t, []domain.Instruction{
		{From: "S0", Symbol: "a", To: "S1"},
		{From: "S0", Symbol: "b", To: "S1"},
		{From: "S1", Symbol: "a", To: "S1"},
	}, a.Instructions())
	assert.NoError(t, a.Validate())
}

func TestExport_NoInitial(t *testing.T) {
	g := domain.Graph{Nodes: []domain.Node{{ID: "S0"}}}
	a := editor.Export(g, nil)
	assert.Equal(t, "", a.InitialState())
}
