package playback

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/traversal"
)

// Visualizer owns the active graph, the selected algorithm and the Player replaying it.
type Visualizer struct {
	mu        sync.Mutex
	original  domain.Graph
	active    domain.Graph
	algorithm domain.Algorithm
	pruned    bool

	player        *Player
	playerOpts    []PlayerOption
	traversalOpts []traversal.Option
	hooks         Hooks
	logger        *slog.Logger
}

// Option configures a Visualizer.
type Option func(*Visualizer)

// WithAlgorithm selects the initial algorithm (default accessible).
func WithAlgorithm(alg domain.Algorithm) Option {
	return func(v *Visualizer) {
		v.algorithm = alg
	}
}

// WithPlayerOptions forwards options to the underlying Player.
func WithPlayerOptions(opts ...PlayerOption) Option {
	return func(v *Visualizer) {
		v.playerOpts = append(v.playerOpts, opts...)
	}
}

// WithTraversalOptions forwards options to the step generators.
func WithTraversalOptions(opts ...traversal.Option) Option {
	return func(v *Visualizer) {
		v.traversalOpts = append(v.traversalOpts, opts...)
	}
}

// WithHooks registers lifecycle observers.
func WithHooks(h Hooks) Option {
	return func(v *Visualizer) {
		v.hooks = h
	}
}

// WithLogger configures the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Visualizer) {
		v.logger = logger
	}
}

// NewVisualizer creates a Visualizer over a copy of g and computes the first run.
// An unknown algorithm falls back to accessible.
func NewVisualizer(g domain.Graph, opts ...Option) *Visualizer {
	v := newVisualizer(g, opts)
	v.mu.Lock()
	v.rebuildLocked()
	v.mu.Unlock()
	return v
}

func newVisualizer(g domain.Graph, opts []Option) *Visualizer {
	v := &Visualizer{
		original:  g.Clone(),
		active:    g.Clone(),
		algorithm: domain.AlgorithmAccessible,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if !v.algorithm.Valid() {
		v.algorithm = domain.AlgorithmAccessible
	}
	v.player = NewPlayer(v.playerOpts...)
	return v
}

// FromSession recreates a Visualizer from persisted state, recomputing the run
// and moving the cursor to the stored position. Hooks do not fire for this
// recomputation, only for later changes.
func FromSession(s *domain.Session, opts ...Option) *Visualizer {
	opts = append([]Option{WithAlgorithm(s.Algorithm)}, opts...)
	v := newVisualizer(s.Original, opts)

	v.mu.Lock()
	v.active = s.Active.Clone()
	v.pruned = s.Pruned
	v.player.Load(v.stepsLocked())
	v.mu.Unlock()

	v.player.Seek(s.Cursor)
	return v
}

// Session captures the Visualizer state under id.
func (v *Visualizer) Session(id string) *domain.Session {
	v.mu.Lock()
	defer v.mu.Unlock()
	return &domain.Session{
		ID:        id,
		Original:  v.original.Clone(),
		Active:    v.active.Clone(),
		Algorithm: v.algorithm,
		Cursor:    v.player.Status().Cursor,
		Pruned:    v.pruned,
	}
}

// Player exposes the playback controls.
func (v *Visualizer) Player() *Player {
	return v.player
}

// Algorithm returns the selected algorithm.
func (v *Visualizer) Algorithm() domain.Algorithm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.algorithm
}

// Active returns a copy of the graph the algorithm currently runs on.
func (v *Visualizer) Active() domain.Graph {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active.Clone()
}

// Original returns a copy of the graph Restore would reinstate.
func (v *Visualizer) Original() domain.Graph {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.original.Clone()
}

// SetGraph imports a new graph: it becomes both the original and the active graph.
func (v *Visualizer) SetGraph(g domain.Graph) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.original = g.Clone()
	v.active = g.Clone()
	v.pruned = false
	v.rebuildLocked()
}

// SetAlgorithm switches the algorithm and rebuilds the run.
func (v *Visualizer) SetAlgorithm(alg domain.Algorithm) error {
	if !alg.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownAlgorithm, alg)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.algorithm = alg
	v.rebuildLocked()
	return nil
}

// CanPrune reports whether the run is complete and the cursor is on its final step.
func (v *Visualizer) CanPrune() bool {
	return v.player.Finished()
}

// CanRestore reports whether the active graph differs from the original by pruning.
func (v *Visualizer) CanRestore() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pruned
}

// Prune replaces the active graph with the nodes found by the completed run and
// the edges between them, then rebuilds the run on the narrowed graph.
func (v *Visualizer) Prune() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Read under v.mu so a concurrent SetGraph cannot pair a new graph with a stale result.
	st := v.player.Status()
	if !st.Finished {
		return fmt.Errorf("%w (cursor %d of %d)", domain.ErrPruneUnavailable, st.Cursor, st.Total)
	}
	before := len(v.active.Nodes)
	v.active = v.active.Restrict(st.Step.Accessible)
	v.pruned = true
	kept := len(v.active.Nodes)

	v.logger.Info("graph pruned", "algorithm", v.algorithm, "kept", kept, "removed", before-kept)
	v.hooks.prune(v.algorithm, kept, before-kept)
	v.rebuildLocked()
	return nil
}

// Restore reinstates the graph held before any pruning.
func (v *Visualizer) Restore() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.pruned {
		return domain.ErrNothingToRestore
	}
	v.active = v.original.Clone()
	v.pruned = false

	v.logger.Info("graph restored", "nodes", len(v.active.Nodes))
	v.hooks.restore()
	v.rebuildLocked()
	return nil
}

// View returns the renderer bundle for the current step.
func (v *Visualizer) View() View {
	v.mu.Lock()
	defer v.mu.Unlock()
	return newView(v.algorithm, v.player.Status(), v.pruned, v.active.Clone())
}

// Close stops playback.
func (v *Visualizer) Close() {
	v.player.Close()
}

func (v *Visualizer) stepsLocked() []domain.Step {
	seq, err := traversal.Steps(v.algorithm, v.active, v.traversalOpts...)
	if err != nil {
		// Unreachable: the algorithm is checked before it is stored.
		v.logger.Error("rebuild failed", "algorithm", v.algorithm, "error", err)
		return nil
	}
	return traversal.Collect(seq)
}

func (v *Visualizer) rebuildLocked() {
	steps := v.stepsLocked()
	v.player.Load(steps)

	v.logger.Debug("steps rebuilt", "algorithm", v.algorithm, "steps", len(steps))
	v.hooks.rebuild(v.algorithm, len(steps))
}
