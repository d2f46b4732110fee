// Package round drives rounds of the glider for a host: it maps player
// actions onto the frame driver, reacts to its notifications, and records
// finished rounds.
package round

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/baseglide/internal/config"
	"github.com/vovakirdan/baseglide/internal/core"
	"github.com/vovakirdan/baseglide/internal/glide"
	"github.com/vovakirdan/baseglide/internal/notify"
	"github.com/vovakirdan/baseglide/internal/storage"
)

// Options configures a Round.
type Options struct {
	Config   config.GlideConfig
	Width    float64
	Height   float64
	Seed     int64          // 0 derives a seed from the clock
	Store    *storage.Store // nil runs without persistence
	Sound    notify.Sink    // nil runs silently
	Player   string         // Leaderboard name; empty skips submission
	Renderer glide.Renderer
}

// Result tells the host what an action did.
type Result struct {
	Token    glide.Token // Token of a newly started frame chain
	Schedule bool        // Host must schedule a frame for Token
	Left     bool        // Player asked to leave the game screen
}

// Round owns a frame driver and the bookkeeping around it.
type Round struct {
	driver   *glide.Driver
	events   *notify.ChannelSink
	store    *storage.Store
	player   string
	best     int
	last     storage.RoundResult
	storeErr error
}

// New creates an idle round. The best score is read from the store when
// one is given.
func New(opts Options) *Round {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := &Round{
		events: notify.NewChannelSink(64),
		store:  opts.Store,
		player: opts.Player,
	}

	driverOpts := []glide.Option{glide.WithSink(notify.Fanout{r.events, opts.Sound})}
	if opts.Renderer != nil {
		driverOpts = append(driverOpts, glide.WithRenderer(opts.Renderer))
	}
	r.driver = glide.NewDriver(opts.Config, opts.Width, opts.Height, rand.New(rand.NewSource(seed)), driverOpts...)

	if r.store != nil {
		r.best, r.storeErr = r.store.HighScore()
	}
	return r
}

// Driver returns the underlying frame driver.
func (r *Round) Driver() *glide.Driver {
	return r.driver
}

// Start begins a fresh round and returns the first frame's token.
func (r *Round) Start(now time.Time) glide.Token {
	r.events.Drain()
	r.last = storage.RoundResult{}
	return r.driver.Start(now)
}

// Handle applies a player action according to the round state.
func (r *Round) Handle(action core.Action, now time.Time) Result {
	state := r.driver.State()

	switch action {
	case core.ActionFlap:
		switch state {
		case glide.StateRunning:
			r.driver.Flap()
			r.drain()
		case glide.StateIdle:
			return Result{Token: r.Start(now), Schedule: true}
		}

	case core.ActionPause:
		switch state {
		case glide.StateRunning:
			r.driver.Pause()
		case glide.StatePaused:
			if tok, ok := r.driver.Resume(now); ok {
				return Result{Token: tok, Schedule: true}
			}
		}

	case core.ActionRestart:
		if state == glide.StateEnded {
			return Result{Token: r.Start(now), Schedule: true}
		}

	case core.ActionBack:
		if state != glide.StateRunning {
			r.driver.Reset()
			return Result{Left: true}
		}
	}

	return Result{}
}

// Frame runs one driver frame and processes the notifications it raised.
func (r *Round) Frame(tok glide.Token, now time.Time) glide.FrameStatus {
	status := r.driver.Frame(tok, now)
	r.drain()
	return status
}

// drain reacts to buffered driver notifications.
func (r *Round) drain() {
	for _, evt := range r.events.Drain() {
		if over, ok := evt.(notify.GameOver); ok {
			r.record(over.Score)
		}
	}
}

// record persists a finished round. A storage failure is kept for display
// and the best score is still tracked in memory.
func (r *Round) record(score int) {
	r.last = storage.RoundResult{Best: max(r.best, score), NewBest: score > r.best}
	r.best = r.last.Best

	if r.store == nil {
		return
	}
	result, err := r.store.RecordRound(r.player, score)
	if err != nil {
		r.storeErr = err
		return
	}
	r.last = result
	r.best = max(r.best, result.Best)
}

// Best returns the best score known so far, including the live round.
func (r *Round) Best() int {
	return max(r.best, r.driver.Score())
}

// Last returns what the most recent finished round changed.
func (r *Round) Last() storage.RoundResult {
	return r.last
}

// StoreErr returns the last persistence error, if any.
func (r *Round) StoreErr() error {
	return r.storeErr
}
