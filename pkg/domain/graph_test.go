package domain_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func sampleGraph() domain.Graph {
	return domain.Graph{
		Nodes: []domain.Node{
			{ID: "S0", IsInitial: true},
			{ID: "S1"},
			{ID: "S2", IsFinal: true},
			{ID: "S3"},
		},
		Edges: []domain.Edge{
			{ID: "eS0-S1", Source: "S0", Target: "S1", Label: "a"},
			{ID: "eS1-S2", Source: "S1", Target: "S2", Label: "b"},
			{ID: "eS3-S2", Source: "S3", Target: "S2", Label: "a"},
		},
	}
}

func TestGraph_Lookups(t *testing.T) {
	g := sampleGraph()

	initial, ok := g.Initial()
	assert.True(t, ok)
	assert.Equal(t, "S0", initial.ID)
	assert.Equal(t, []domain.Node{{ID: "S2", IsFinal: true}}, g.Finals())
	assert.Len(t, g.Outgoing("S0"), 1)
	assert.Len(t, g.Incoming("S2"), 2)

	_, ok = domain.Graph{}.Initial()
	assert.False(t, ok)
}

func TestGraph_Restrict(t *testing.T) {
	g := sampleGraph()
	sub := g.Restrict([]string{"S0", "S1", "S2"})

	assert.Len(t, sub.Nodes, 3)
	assert.Equal(t, []string{"eS0-S1", "eS1-S2"}, []string{sub.Edges[0].ID, sub.Edges[1].ID})
	assert.Len(t, g.Nodes, 4, "source graph untouched")
}

func TestGraph_Clone(t *testing.T) {
	g := sampleGraph()
	c := g.Clone()
	c.Nodes[0].IsInitial = false
	c.Edges[0].Target = "S3"

	assert.True(t, g.Nodes[0].IsInitial)
	assert.Equal(t, "S1", g.Edges[0].Target)
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Algorithm
		err  bool
	}{
		{"accessible", domain.AlgorithmAccessible, false},
		{"", domain.AlgorithmAccessible, false},
		{"Co-Accessible", domain.AlgorithmCoAccessible, false},
		{"co_accessible", domain.AlgorithmCoAccessible, false},
		{"coaccessible", domain.AlgorithmCoAccessible, false},
		{"trim", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseAlgorithm(tt.in)
			if tt.err {
				assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPseudoCode(t *testing.T) {
	for _, alg := range domain.Algorithms {
		code := domain.PseudoCode(alg)
		assert.Len(t, code, 9)
		for i, l := range code {
			assert.Equal(t, i+1, l.Line)
		}
	}
	assert.Contains(t, domain.PseudoCode(domain.AlgorithmCoAccessible)[0].Text, "Q")
}
