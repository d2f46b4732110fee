package glide

import (
	"testing"
	"time"

	"github.com/vovakirdan/baseglide/internal/config"
	"github.com/vovakirdan/baseglide/internal/notify"
)

// frameStep is one nominal frame at the default reference rate.
const frameStep = time.Second / 60

// recorder collects events and rendered worlds.
type recorder struct {
	events   []notify.Event
	rendered []World
}

func (r *recorder) Send(evt notify.Event) { r.events = append(r.events, evt) }
func (r *recorder) Render(w World)        { r.rendered = append(r.rendered, w) }

func (r *recorder) count(match func(notify.Event) bool) int {
	n := 0
	for _, e := range r.events {
		if match(e) {
			n++
		}
	}
	return n
}

func isGameOver(e notify.Event) bool {
	_, ok := e.(notify.GameOver)
	return ok
}

func newTestDriver(rec *recorder) *Driver {
	return NewDriver(config.DefaultGlideConfig(), 400, 800, fixedRand(0.5), WithSink(rec), WithRenderer(rec))
}

func TestDriverStart(t *testing.T) {
	rec := &recorder{}
	d := newTestDriver(rec)

	if d.State() != StateIdle {
		t.Fatalf("new driver state = %v, expected idle", d.State())
	}
	if d.Token() != 0 {
		t.Error("idle driver should have no live token")
	}

	tok := d.Start(time.Unix(0, 0))
	if tok == 0 || d.State() != StateRunning {
		t.Fatalf("Start() = %v in state %v", tok, d.State())
	}

	w := d.Snapshot()
	if w.Score != 0 || w.NextID != 1 || len(w.Obstacles) != 1 {
		t.Errorf("fresh world: score %d next %d obstacles %d", w.Score, w.NextID, len(w.Obstacles))
	}
	if w.Obstacles[0].ID != 0 || w.Obstacles[0].X != 400 {
		t.Errorf("initial obstacle %+v", w.Obstacles[0])
	}
	if w.Player.Y != 400 || w.Player.Velocity != 0 {
		t.Errorf("player should start at rest mid-height: %+v", w.Player)
	}

	// Start while running keeps the current chain
	if again := d.Start(time.Unix(5, 0)); again != tok {
		t.Errorf("Start() while running issued a new token")
	}
}

func TestDriverFrameUsesElapsedTime(t *testing.T) {
	rec := &recorder{}
	d := newTestDriver(rec)
	now := time.Unix(100, 0)
	tok := d.Start(now)

	now = now.Add(frameStep)
	if status := d.Frame(tok, now); status != FrameRendered {
		t.Fatalf("Frame() = %v, expected rendered", status)
	}
	p := d.Snapshot().Player
	if !approx(p.Velocity, 0.5) || !approx(p.Y, 400.5) {
		t.Errorf("one nominal frame: %+v", p)
	}
	if len(rec.rendered) != 1 {
		t.Errorf("renderer called %d times, expected 1", len(rec.rendered))
	}

	// A stalled frame is clamped to two nominal frames
	now = now.Add(10 * time.Second)
	d.Frame(tok, now)
	p = d.Snapshot().Player
	if !approx(p.Velocity, 1.5) {
		t.Errorf("stalled frame velocity = %v, expected 1.5", p.Velocity)
	}
}

func TestDriverDropsStaleToken(t *testing.T) {
	rec := &recorder{}
	d := newTestDriver(rec)
	now := time.Unix(0, 0)

	tok := d.Start(now)
	d.Pause()

	before := d.Snapshot()
	if status := d.Frame(tok, now.Add(frameStep)); status != FrameDropped {
		t.Errorf("paused frame status = %v, expected dropped", status)
	}
	if d.Frame(0, now.Add(frameStep)) != FrameDropped {
		t.Error("zero token should be dropped")
	}
	after := d.Snapshot()
	if after.Player != before.Player || len(rec.rendered) != 0 {
		t.Error("dropped frame changed the world or rendered")
	}

	newTok, ok := d.Resume(now.Add(time.Second))
	if !ok || newTok == tok {
		t.Fatalf("Resume() = %v %v, expected a fresh token", newTok, ok)
	}
	if d.Frame(tok, now.Add(time.Second+frameStep)) != FrameDropped {
		t.Error("token from before the pause should stay stale")
	}
}

func TestDriverRejectsTokenFromOtherDriver(t *testing.T) {
	now := time.Unix(0, 0)

	abandoned := newTestDriver(&recorder{})
	oldTok := abandoned.Start(now)
	abandoned.Pause()

	rec := &recorder{}
	d := newTestDriver(rec)
	tok := d.Start(now)
	if tok == oldTok {
		t.Fatalf("fresh driver reissued token %v", tok)
	}

	if status := d.Frame(oldTok, now.Add(frameStep)); status != FrameDropped {
		t.Errorf("frame with another driver's token = %v, expected dropped", status)
	}
	if len(rec.rendered) != 0 {
		t.Errorf("stale frame rendered %d worlds", len(rec.rendered))
	}
	if d.Frame(tok, now.Add(frameStep)) != FrameRendered {
		t.Error("the driver's own token should still render")
	}
}

func TestDriverResumeDoesNotSpike(t *testing.T) {
	rec := &recorder{}
	d := newTestDriver(rec)
	now := time.Unix(0, 0)

	tok := d.Start(now)
	now = now.Add(frameStep)
	d.Frame(tok, now)
	v := d.Snapshot().Player.Velocity

	if !d.Pause() {
		t.Fatal("Pause() should succeed while running")
	}
	if d.Pause() {
		t.Error("second Pause() should be rejected")
	}
	paused := d.Snapshot()

	now = now.Add(30 * time.Second)
	tok, _ = d.Resume(now)
	if d.Snapshot().Player != paused.Player {
		t.Error("pause/resume should leave the world untouched")
	}

	now = now.Add(frameStep)
	d.Frame(tok, now)
	if got := d.Snapshot().Player.Velocity; !approx(got, v+0.5) {
		t.Errorf("velocity after resume = %v, expected %v", got, v+0.5)
	}
}

func TestDriverFlap(t *testing.T) {
	rec := &recorder{}
	d := newTestDriver(rec)

	if d.Flap() {
		t.Error("Flap() should be ignored while idle")
	}

	now := time.Unix(0, 0)
	tok := d.Start(now)
	if !d.Flap() {
		t.Fatal("Flap() should be accepted while running")
	}
	d.Flap()

	now = now.Add(frameStep)
	d.Frame(tok, now)
	if v := d.Snapshot().Player.Velocity; !approx(v, -8.5) {
		t.Errorf("velocity after flap = %v, expected -8.5", v)
	}

	flaps := rec.count(func(e notify.Event) bool { _, ok := e.(notify.Flapped); return ok })
	if flaps != 2 {
		t.Errorf("Flapped events = %d, expected 2", flaps)
	}

	// Impulse is applied once
	now = now.Add(frameStep)
	d.Frame(tok, now)
	if v := d.Snapshot().Player.Velocity; !approx(v, -8) {
		t.Errorf("velocity one frame later = %v, expected -8", v)
	}
}

func TestDriverGameOverOnce(t *testing.T) {
	rec := &recorder{}
	d := newTestDriver(rec)
	now := time.Unix(0, 0)
	tok := d.Start(now)

	var status FrameStatus
	frames := 0
	for frames < 1000 {
		now = now.Add(frameStep)
		frames++
		status = d.Frame(tok, now)
		if status != FrameRendered {
			break
		}
	}

	if status != FrameEnded {
		t.Fatalf("player never collided, last status %v", status)
	}
	if d.State() != StateEnded || d.Token() != 0 {
		t.Errorf("after collision: state %v token %v", d.State(), d.Token())
	}
	if len(rec.rendered) != frames-1 {
		t.Errorf("rendered %d frames out of %d, the collision frame should not render", len(rec.rendered), frames)
	}

	for i := 0; i < 5; i++ {
		now = now.Add(frameStep)
		if d.Frame(tok, now) != FrameDropped {
			t.Fatal("frames after game over should be dropped")
		}
	}
	if n := rec.count(isGameOver); n != 1 {
		t.Errorf("GameOver events = %d, expected exactly 1", n)
	}

	// Retry from ended
	tok = d.Start(now)
	if d.State() != StateRunning || d.Score() != 0 {
		t.Errorf("restart: state %v score %d", d.State(), d.Score())
	}
	if d.Frame(tok, now.Add(frameStep)) != FrameRendered {
		t.Error("restarted round should render")
	}
}

func TestDriverScoresWhileGliding(t *testing.T) {
	rec := &recorder{}
	d := newTestDriver(rec)
	now := time.Unix(0, 0)
	tok := d.Start(now)

	// Hold the player inside the gap (305..495) by flapping near its bottom
	for i := 0; i < 300; i++ {
		if d.Snapshot().Player.Y > 440 {
			d.Flap()
		}
		now = now.Add(frameStep)
		if d.Frame(tok, now) != FrameRendered {
			t.Fatalf("frame %d: unexpected collision at %+v", i, d.Snapshot().Player)
		}
	}

	if d.Score() != 2 {
		t.Errorf("score = %d, expected 2", d.Score())
	}
	changes := 0
	for _, e := range rec.events {
		if sc, ok := e.(notify.ScoreChanged); ok {
			changes++
			if sc.Delta != 1 || sc.Score != changes {
				t.Errorf("ScoreChanged %+v, expected score %d delta 1", sc, changes)
			}
		}
	}
	if changes != 2 {
		t.Errorf("ScoreChanged events = %d, expected 2", changes)
	}
}

func TestDriverResetAndResize(t *testing.T) {
	rec := &recorder{}
	d := newTestDriver(rec)
	now := time.Unix(0, 0)
	tok := d.Start(now)
	d.Frame(tok, now.Add(frameStep))

	before := d.Snapshot()
	d.Resize(600, 900)
	after := d.Snapshot()
	if after.Width != 600 || after.Height != 900 {
		t.Errorf("bounds = %vx%v, expected 600x900", after.Width, after.Height)
	}
	if after.Player != before.Player || after.Obstacles[0] != before.Obstacles[0] {
		t.Error("Resize() should not move entities")
	}

	d.Reset()
	if d.State() != StateIdle || d.Token() != 0 {
		t.Errorf("after Reset: state %v token %v", d.State(), d.Token())
	}
	if d.Frame(tok, now.Add(2*frameStep)) != FrameDropped {
		t.Error("frame after Reset should be dropped")
	}
	w := d.Snapshot()
	if w.Player.Y != 450 || w.Obstacles[0].X != 600 {
		t.Errorf("reset world should use the resized surface: %+v", w)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	d := newTestDriver(&recorder{})
	s := d.Snapshot()
	s.Obstacles[0].X = -1000
	if d.Snapshot().Obstacles[0].X == -1000 {
		t.Error("Snapshot() shares obstacle storage with the driver")
	}
}
