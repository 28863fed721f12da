package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGraph_YAML(t *testing.T) {
	gf, err := ParseGraph([]byte(`
alphabet: [a, b]
states:
  - {id: S0, initial: true}
  - {id: S1, final: true}
transitions:
  - {from: S0, to: S1, label: "a, b"}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, gf.Alphabet)
	assert.Equal(t, []domain.Node{{ID: "S0", IsInitial: true}, {ID: "S1", IsFinal: true}}, gf.Graph.Nodes)
	assert.Equal(t, []domain.Edge{{ID: "eS0-S1", Source: "S0", Target: "S1", Label: "a, b"}}, gf.Graph.Edges)
}

func TestParseGraph_JSONAliases(t *testing.T) {
	gf, err := ParseGraph([]byte(`{
  "nodes": [{"id": "q0", "isInitial": true}, {"id": "q1", "isFinal": true}],
  "edges": [{"id": "x", "source": "q0", "target": "q1", "label": "b, a"}, {"source": "q1", "target": "q1", "symbol": "c"}]
}`))
	require.NoError(t, err)
	assert.True(t, gf.Graph.Nodes[0].IsInitial)
	assert.True(t, gf.Graph.Nodes[1].IsFinal)
	assert.Equal(t, "x", gf.Graph.Edges[0].ID)
	assert.Equal(t, "eq1-q1", gf.Graph.Edges[1].ID)
	assert.Equal(t, "c", gf.Graph.Edges[1].Label)
	assert.Equal(t, []string{"a", "b", "c"}, gf.Alphabet, "alphabet derived from labels")
}

func TestParseGraph_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "states: [\n"},
		{"state without id", "states:\n  - {initial: true}\n"},
		{"missing endpoint", "transitions:\n  - {from: S0}\n"},
		{"unknown key", "stats: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGraph([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestWriteGraph_RoundTrip(t *testing.T) {
	in := GraphFile{
		Alphabet: []string{"a"},
		Graph: domain.Graph{
			Nodes: []domain.Node{{ID: "S0", IsInitial: true}, {ID: "S1", IsFinal: true}},
			Edges: []domain.Edge{{ID: "eS0-S1", Source: "S0", Target: "S1", Label: "a"}},
		},
	}
	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteGraph(&buf, in, format))

			path := filepath.Join(t.TempDir(), "graph."+format)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
			out, err := LoadGraph(path)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}

	assert.Error(t, WriteGraph(&bytes.Buffer{}, in, "toml"))
}
