package fx

import "juice/internal/canvas"

type EventType uint8

const (
	EventCoinArrived EventType = iota
	EventBurst
	EventThunder
	EventTick
	EventExpired
	EventCeremonyPhase
	EventCelebrationDone
)

func (t EventType) String() string {
	switch t {
	case EventCoinArrived:
		return "coin-arrived"
	case EventBurst:
		return "burst"
	case EventThunder:
		return "thunder"
	case EventTick:
		return "tick"
	case EventExpired:
		return "expired"
	case EventCeremonyPhase:
		return "ceremony-phase"
	case EventCelebrationDone:
		return "celebration-done"
	}
	return "unknown"
}

// Event is a fire-and-forget notification produced during Update. Hosts
// poll them after the tick instead of registering callbacks.
type Event struct {
	Type  EventType
	X, Y  float64
	Col   canvas.Color
	Value int // kind-specific: coin value, phase index, seconds left
}

// Events is a fixed-capacity per-tick queue. Pushing past capacity drops
// the event.
type Events struct {
	buf [EventCapacity]Event
	n   int
}

func (q *Events) reset() { q.n = 0 }

func (q *Events) push(e Event) bool {
	if q.n >= len(q.buf) {
		return false
	}
	q.buf[q.n] = e
	q.n++
	return true
}

// Slice returns the events of the current tick. The view is only valid
// until the owner's next Update.
func (q *Events) Slice() []Event { return q.buf[:q.n] }

func (q *Events) Len() int { return q.n }
