package game

import "encoding/json"

// EventKind identifies a fire-and-forget notification for audio/render
// sinks. The core never waits on their handling.
type EventKind uint8

const (
	EventBounce EventKind = iota
	EventScore
	EventSteal
	EventWhistle
	EventBuzzer
	EventCheck
)

func (k EventKind) String() string {
	switch k {
	case EventBounce:
		return "bounce"
	case EventScore:
		return "score"
	case EventSteal:
		return "steal"
	case EventWhistle:
		return "whistle"
	case EventBuzzer:
		return "buzzer"
	default:
		return "check"
	}
}

func (k EventKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Event is a single sink notification. Intensity is 0..1 (for bounces,
// derived from the impact speed); Points is set for scoring events.
type Event struct {
	Kind      EventKind `json:"kind"`
	Side      Side      `json:"side"`
	Intensity float64   `json:"intensity,omitempty"`
	Points    int       `json:"points,omitempty"`
}

// Sink consumes events. Implementations must not block.
type Sink interface {
	Emit(Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Emit(Event) {}
