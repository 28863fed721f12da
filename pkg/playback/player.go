package playback

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
)

// DefaultInterval is the auto-advance cadence of a playing Player.
const DefaultInterval = time.Second

// Status is a point-in-time view of a Player.
type Status struct {
	Cursor   int
	Total    int
	Playing  bool
	Finished bool
	Step     domain.Step
}

// Player is the cursor state machine over a step sequence.
// It is safe for concurrent use; the ticker goroutine and command callers share a mutex.
type Player struct {
	mu       sync.Mutex
	steps    []domain.Step
	cursor   int
	playing  bool
	interval time.Duration

	// cancel stops the pending ticker; gen invalidates ticks from a replaced ticker.
	cancel context.CancelFunc
	gen    uint64

	onChange func(Status)
	logger   *slog.Logger
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithInterval sets the auto-advance cadence.
func WithInterval(d time.Duration) PlayerOption {
	return func(p *Player) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithOnChange registers a callback invoked after every cursor or play-state change.
// It runs outside the Player lock and may call back into the Player. A Player owned
// by a Visualizer may notify while the Visualizer is locked, so the callback must
// not call Visualizer methods.
func WithOnChange(fn func(Status)) PlayerOption {
	return func(p *Player) {
		p.onChange = fn
	}
}

// WithPlayerLogger configures the logger.
func WithPlayerLogger(logger *slog.Logger) PlayerOption {
	return func(p *Player) {
		p.logger = logger
	}
}

// NewPlayer creates a paused Player with an empty sequence.
func NewPlayer(opts ...PlayerOption) *Player {
	p := &Player{
		interval: DefaultInterval,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load replaces the sequence, rewinds to 0 and pauses. The old sequence is discarded.
func (p *Player) Load(steps []domain.Step) {
	p.mu.Lock()
	p.stopLocked()
	p.steps = slices.Clone(steps)
	p.cursor = 0
	st := p.statusLocked()
	p.mu.Unlock()

	p.logger.Debug("playback loaded", "steps", len(steps))
	p.notify(st)
}

// Play starts auto-advance. It is a no-op when already playing, at the last step,
// or when there is nothing to play.
func (p *Player) Play() {
	p.mu.Lock()
	if p.playing || !p.playableLocked() {
		p.mu.Unlock()
		return
	}
	p.startLocked()
	st := p.statusLocked()
	p.mu.Unlock()
	p.notify(st)
}

// Pause stops auto-advance.
func (p *Player) Pause() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.stopLocked()
	st := p.statusLocked()
	p.mu.Unlock()
	p.notify(st)
}

// Toggle switches between playing and paused and reports the new state.
func (p *Player) Toggle() bool {
	p.mu.Lock()
	if p.playing {
		p.stopLocked()
	} else if p.playableLocked() {
		p.startLocked()
	}
	playing := p.playing
	st := p.statusLocked()
	p.mu.Unlock()
	p.notify(st)
	return playing
}

// Next advances the cursor by one. It is only honored while paused and saturates
// at the last step. It reports whether the cursor moved.
func (p *Player) Next() bool {
	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return false
	}
	moved := p.advanceLocked()
	st := p.statusLocked()
	p.mu.Unlock()
	if moved {
		p.notify(st)
	}
	return moved
}

// Reset rewinds to the first step and pauses.
func (p *Player) Reset() {
	p.mu.Lock()
	p.stopLocked()
	p.cursor = 0
	st := p.statusLocked()
	p.mu.Unlock()
	p.notify(st)
}

// Seek moves the paused cursor to i, clamped to the sequence bounds.
func (p *Player) Seek(i int) {
	p.mu.Lock()
	p.stopLocked()
	p.cursor = max(0, min(i, len(p.steps)-1))
	st := p.statusLocked()
	p.mu.Unlock()
	p.notify(st)
}

// Close cancels any pending ticker. The Player stays usable while paused.
func (p *Player) Close() {
	p.mu.Lock()
	p.stopLocked()
	p.mu.Unlock()
}

// Status returns the current view of the Player.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusLocked()
}

// Current returns the step under the cursor, or an empty step for an empty sequence.
func (p *Player) Current() domain.Step {
	return p.Status().Step
}

// Steps returns a copy of the loaded sequence.
func (p *Player) Steps() []domain.Step {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Step, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.Clone()
	}
	return out
}

// Finished reports whether the cursor sits on the last step of a non-empty sequence.
func (p *Player) Finished() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.atEndLocked()
}

func (p *Player) atEndLocked() bool {
	return len(p.steps) > 0 && p.cursor == len(p.steps)-1
}

func (p *Player) playableLocked() bool {
	return len(p.steps) > 0 && !p.atEndLocked()
}

func (p *Player) advanceLocked() bool {
	if p.cursor < len(p.steps)-1 {
		p.cursor++
		return true
	}
	return false
}

func (p *Player) statusLocked() Status {
	st := Status{
		Cursor:   p.cursor,
		Total:    len(p.steps),
		Playing:  p.playing,
		Finished: p.atEndLocked(),
		Step:     domain.EmptyStep(),
	}
	if len(p.steps) > 0 {
		st.Step = p.steps[p.cursor].Clone()
	}
	return st
}

func (p *Player) startLocked() {
	p.stopLocked()
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.playing = true
	p.gen++
	go p.tick(ctx, p.gen, p.interval)
}

func (p *Player) stopLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.playing = false
}

func (p *Player) tick(ctx context.Context, gen uint64, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.mu.Lock()
			if gen != p.gen || !p.playing {
				p.mu.Unlock()
				return
			}
			p.advanceLocked()
			done := p.atEndLocked() || len(p.steps) == 0
			if done {
				p.stopLocked()
			}
			st := p.statusLocked()
			p.mu.Unlock()

			p.notify(st)
			if done {
				p.logger.Debug("playback reached last step", "cursor", st.Cursor)
				return
			}
		}
	}
}

func (p *Player) notify(st Status) {
	if p.onChange != nil {
		p.onChange(st)
	}
}
