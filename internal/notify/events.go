// Package notify carries round notifications from the frame driver to the
// collaborators around it (persistence, audio, HUD) without the driver
// depending on any of them.
package notify

// Event is a notification raised by the frame driver.
type Event interface {
	event()
}

// ScoreChanged is raised whenever a frame credits at least one pass-through.
type ScoreChanged struct {
	Score int // New cumulative score
	Delta int // Points credited by this frame
}

func (ScoreChanged) event() {}

// GameOver is raised exactly once per round, on the frame where a collision
// is first detected.
type GameOver struct {
	Score int
}

func (GameOver) event() {}

// Flapped is raised when a flap impulse is accepted.
type Flapped struct{}

func (Flapped) event() {}

// Sink receives events. Implementations must not block the caller.
type Sink interface {
	Send(evt Event)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(Event)

// Send calls f(evt).
func (f SinkFunc) Send(evt Event) {
	f(evt)
}

// Discard is a Sink that drops every event.
var Discard Sink = SinkFunc(func(Event) {})
