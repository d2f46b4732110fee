package notify

// ChannelSink is a Sink backed by a buffered channel.
// Hosts drain it after each frame; a full buffer drops the oldest event.
type ChannelSink struct {
	events chan Event
}

// NewChannelSink creates a channel sink.
// bufferSize controls how many events can be buffered before dropping.
func NewChannelSink(bufferSize int) *ChannelSink {
	if bufferSize < 1 {
		bufferSize = 64 // Default buffer size
	}
	return &ChannelSink{events: make(chan Event, bufferSize)}
}

// Send queues an event.
// If the buffer is full, the oldest event is dropped to prevent blocking.
func (s *ChannelSink) Send(evt Event) {
	select {
	case s.events <- evt:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.events:
		default:
		}
		// Try again (best effort)
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Drain returns all currently buffered events without blocking.
func (s *ChannelSink) Drain() []Event {
	var out []Event
	for {
		select {
		case evt := <-s.events:
			out = append(out, evt)
		default:
			return out
		}
	}
}

// Fanout delivers every event to each of its sinks in order.
type Fanout []Sink

// Send forwards evt to every non-nil sink.
func (f Fanout) Send(evt Event) {
	for _, s := range f {
		if s != nil {
			s.Send(evt)
		}
	}
}
