package config

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
	"gopkg.in/yaml.v3"
)

// GraphFile is a drawn automaton as stored on disk.
type GraphFile struct {
	Alphabet []string     `yaml:"alphabet"`
	Graph    domain.Graph `yaml:",inline"`
}

// MarshalJSON flattens the graph next to the alphabet, like the YAML form.
func (gf GraphFile) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Alphabet []string      `json:"alphabet"`
		Nodes    []domain.Node `json:"nodes"`
		Edges    []domain.Edge `json:"edges"`
	}{gf.Alphabet, gf.Graph.Nodes, gf.Graph.Edges})
}

// fileState accepts both the short and the camelCase flag names.
type fileState struct {
	ID        string `mapstructure:"id"`
	Initial   bool   `mapstructure:"initial"`
	IsInitial bool   `mapstructure:"isInitial"`
	Final     bool   `mapstructure:"final"`
	IsFinal   bool   `mapstructure:"isFinal"`
}

// fileTransition accepts from/source and to/target.
type fileTransition struct {
	ID     string `mapstructure:"id"`
	From   string `mapstructure:"from"`
	Source string `mapstructure:"source"`
	To     string `mapstructure:"to"`
	Target string `mapstructure:"target"`
	Label  string `mapstructure:"label"`
	Symbol string `mapstructure:"symbol"`
}

type fileDocument struct {
	Alphabet    []string         `mapstructure:"alphabet"`
	States      []fileState      `mapstructure:"states"`
	Nodes       []fileState      `mapstructure:"nodes"`
	Transitions []fileTransition `mapstructure:"transitions"`
	Edges       []fileTransition `mapstructure:"edges"`
}

// LoadGraph reads a .yaml, .yml or .json graph file.
func LoadGraph(path string) (GraphFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GraphFile{}, fmt.Errorf("failed to read graph: %w", err)
	}
	gf, err := ParseGraph(data)
	if err != nil {
		return GraphFile{}, fmt.Errorf("graph %s: %w", filepath.Base(path), err)
	}
	return gf, nil
}

// ParseGraph decodes a graph document. JSON is accepted as a YAML subset.
// When no alphabet is declared it is derived from the edge labels.
func ParseGraph(data []byte) (GraphFile, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return GraphFile{}, fmt.Errorf("invalid document: %w", err)
	}

	var doc fileDocument
	if err := decode(raw, &doc); err != nil {
		return GraphFile{}, fmt.Errorf("invalid graph: %w", err)
	}

	g := domain.Graph{
		Nodes: make([]domain.Node, 0, len(doc.States)+len(doc.Nodes)),
		Edges: make([]domain.Edge, 0, len(doc.Transitions)+len(doc.Edges)),
	}
	for _, s := range slices.Concat(doc.States, doc.Nodes) {
		if s.ID == "" {
			return GraphFile{}, fmt.Errorf("state without id")
		}
		g.Nodes = append(g.Nodes, domain.Node{
			ID:        s.ID,
			IsInitial: s.Initial || s.IsInitial,
			IsFinal:   s.Final || s.IsFinal,
		})
	}
	for _, t := range slices.Concat(doc.Transitions, doc.Edges) {
		e := domain.Edge{
			ID:     t.ID,
			Source: cmp.Or(t.Source, t.From),
			Target: cmp.Or(t.Target, t.To),
			Label:  cmp.Or(t.Label, t.Symbol),
		}
		if e.Source == "" || e.Target == "" {
			return GraphFile{}, fmt.Errorf("transition %q needs both endpoints", e.ID)
		}
		if e.ID == "" {
			e.ID = domain.EdgeID(e.Source, e.Target)
		}
		g.Edges = append(g.Edges, e)
	}

	alphabet := doc.Alphabet
	if len(alphabet) == 0 {
		alphabet = editor.LabelSymbols(g)
	}
	return GraphFile{Alphabet: alphabet, Graph: g}, nil
}

// WriteGraph encodes gf as "json" or "yaml".
func WriteGraph(w io.Writer, gf GraphFile, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(gf)
	case "yaml", "yml", "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(gf); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
