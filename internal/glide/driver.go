package glide

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/baseglide/internal/config"
	"github.com/vovakirdan/baseglide/internal/notify"
)

// State is the lifecycle state of a round.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateEnded
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Token identifies one scheduled frame chain. A frame carrying a token other
// than the driver's current one is dropped.
type Token uint64

// FrameStatus tells the host what a Frame call did.
type FrameStatus int

const (
	FrameDropped  FrameStatus = iota // Stale token or not running; nothing changed
	FrameRendered                    // Simulated and rendered; schedule the next frame
	FrameEnded                       // Collision; the round is over
)

// World is the complete simulation state. The driver replaces it as a whole
// value each frame.
type World struct {
	Width     float64
	Height    float64
	Player    Player
	Obstacles []Obstacle
	Score     int
	NextID    int
}

// clone returns a deep copy safe to hand to other goroutines.
func (w World) clone() World {
	w.Obstacles = slices.Clone(w.Obstacles)
	return w
}

// Renderer draws a world snapshot. It is called once per rendered frame.
type Renderer interface {
	Render(w World)
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(World)

// Render calls f(w).
func (f RendererFunc) Render(w World) {
	f(w)
}

// Option configures a Driver.
type Option func(*Driver)

// WithSink sets where notifications go. Defaults to notify.Discard.
func WithSink(s notify.Sink) Option {
	return func(d *Driver) {
		if s != nil {
			d.sink = s
		}
	}
}

// WithRenderer sets the render stage invoked after each safe frame.
func WithRenderer(r Renderer) Option {
	return func(d *Driver) {
		d.renderer = r
	}
}

// Driver owns the world and advances it one frame at a time.
// It is not safe for concurrent use; hosts call it from their update loop.
type Driver struct {
	cfg      config.GlideConfig
	rng      Rand
	sink     notify.Sink
	renderer Renderer

	world       World
	state       State
	token       Token
	last        time.Time
	pendingFlap bool
	nominal     time.Duration
}

// NewDriver creates an idle driver for a surface of the given size.
// The world is populated for display but nothing moves until Start.
func NewDriver(cfg config.GlideConfig, width, height float64, rng Rand, opts ...Option) *Driver {
	d := &Driver{
		cfg:     cfg,
		rng:     rng,
		sink:    notify.Discard,
		nominal: time.Second / time.Duration(max(cfg.Physics.ReferenceFPS, 1)),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.world = d.freshWorld(width, height)
	return d
}

// freshWorld returns a world at score zero with one obstacle at the right
// edge.
func (d *Driver) freshWorld(width, height float64) World {
	return World{
		Width:     width,
		Height:    height,
		Player:    NewPlayer(d.cfg, height),
		Obstacles: []Obstacle{NewObstacle(d.cfg, d.rng, width, height, 0, 0)},
		Score:     0,
		NextID:    1,
	}
}

// tokenSeq is shared by every driver in the process, so a continuation
// scheduled by an abandoned driver can never match a newer one.
var tokenSeq atomic.Uint64

// nextToken issues a token never handed out before.
func (d *Driver) nextToken() Token {
	d.token = Token(tokenSeq.Add(1))
	return d.token
}

// invalidate makes every outstanding token stale.
func (d *Driver) invalidate() {
	d.token = 0
}

// Start begins a new round from Idle or Ended and returns the token for the
// first frame. In any other state it returns the current token unchanged.
func (d *Driver) Start(now time.Time) Token {
	if d.state != StateIdle && d.state != StateEnded {
		return d.token
	}
	d.world = d.freshWorld(d.world.Width, d.world.Height)
	d.state = StateRunning
	d.pendingFlap = false
	d.last = now
	return d.nextToken()
}

// Pause suspends a running round. Frames already scheduled become stale.
func (d *Driver) Pause() bool {
	if d.state != StateRunning {
		return false
	}
	d.state = StatePaused
	d.invalidate()
	return true
}

// Resume continues a paused round. The frame baseline is moved to now so the
// paused interval does not count as elapsed simulation time.
func (d *Driver) Resume(now time.Time) (Token, bool) {
	if d.state != StatePaused {
		return d.token, false
	}
	d.state = StateRunning
	d.last = now
	return d.nextToken(), true
}

// Reset abandons the current round and returns to Idle with a fresh world.
func (d *Driver) Reset() {
	d.invalidate()
	d.state = StateIdle
	d.pendingFlap = false
	d.world = d.freshWorld(d.world.Width, d.world.Height)
}

// Flap queues an upward impulse for the next frame. Only accepted while
// running; repeated flaps before the next frame collapse into one.
func (d *Driver) Flap() bool {
	if d.state != StateRunning {
		return false
	}
	d.pendingFlap = true
	d.sink.Send(notify.Flapped{})
	return true
}

// Resize updates the surface bounds. Entity positions are left as they are.
func (d *Driver) Resize(width, height float64) {
	d.world.Width = width
	d.world.Height = height
}

// Frame advances the world by the time elapsed since the previous frame.
func (d *Driver) Frame(tok Token, now time.Time) FrameStatus {
	if d.state != StateRunning || tok == 0 || tok != d.token {
		return FrameDropped
	}

	dt := ClampDelta(d.cfg.Physics, float64(now.Sub(d.last))/float64(d.nominal))
	d.last = now

	next := d.world
	if d.pendingFlap {
		next.Player = Flap(d.cfg, next.Player)
		d.pendingFlap = false
	}

	next.Player = StepPlayer(d.cfg, next.Player, next.Height, dt)

	res := StepObstacles(d.cfg, d.rng, ObstacleStep{
		Obstacles: next.Obstacles,
		Width:     next.Width,
		Height:    next.Height,
		NextID:    next.NextID,
		Delta:     dt,
		Score:     next.Score,
	})
	next.Obstacles = res.Obstacles
	next.NextID = res.NextID

	if res.Scored > 0 {
		next.Score += res.Scored
		d.sink.Send(notify.ScoreChanged{Score: next.Score, Delta: res.Scored})
	}

	d.world = next

	if Collides(next.Player, next.Obstacles) {
		d.state = StateEnded
		d.invalidate()
		d.sink.Send(notify.GameOver{Score: next.Score})
		return FrameEnded
	}

	if d.renderer != nil {
		d.renderer.Render(next.clone())
	}
	return FrameRendered
}

// Snapshot returns a deep copy of the current world.
func (d *Driver) Snapshot() World {
	return d.world.clone()
}

// State returns the lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Token returns the live frame token, or zero when no frame chain is live.
func (d *Driver) Token() Token {
	return d.token
}

// Score returns the cumulative score of the current round.
func (d *Driver) Score() int {
	return d.world.Score
}
