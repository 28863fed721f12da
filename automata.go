package automata

import (
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/playback"
	"github.com/aretw0/automata/pkg/traversal"
)

// Generate runs the named algorithm over g and returns the complete step list.
func Generate(alg domain.Algorithm, g domain.Graph, opts ...traversal.Option) ([]domain.Step, error) {
	seq, err := traversal.Steps(alg, g, opts...)
	if err != nil {
		return nil, err
	}
	return traversal.Collect(seq), nil
}

// NewVisualizer creates a Visualizer over g, ready to play the first run.
func NewVisualizer(g domain.Graph, opts ...playback.Option) *playback.Visualizer {
	return playback.NewVisualizer(g, opts...)
}

// VersionString is Version without surrounding whitespace.
func VersionString() string {
	return strings.TrimSpace(Version)
}
