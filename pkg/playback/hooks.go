package playback

import "github.com/aretw0/automata/pkg/domain"

// Hooks observe Visualizer lifecycle events. Nil fields are skipped.
type Hooks struct {
	// OnRebuild fires after a new step sequence was computed.
	OnRebuild func(alg domain.Algorithm, steps int)
	// OnPrune fires after the active graph was narrowed.
	OnPrune func(alg domain.Algorithm, kept, removed int)
	// OnRestore fires after the original graph was reinstated.
	OnRestore func()
}

func (h Hooks) rebuild(alg domain.Algorithm, steps int) {
	if h.OnRebuild != nil {
		h.OnRebuild(alg, steps)
	}
}

func (h Hooks) prune(alg domain.Algorithm, kept, removed int) {
	if h.OnPrune != nil {
		h.OnPrune(alg, kept, removed)
	}
}

func (h Hooks) restore() {
	if h.OnRestore != nil {
		h.OnRestore()
	}
}
