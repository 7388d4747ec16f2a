package game

import (
	"time"

	"github.com/google/uuid"
)

// State is a session's position in the game flow.
type State uint8

const (
	StateLoading    State = iota // waiting for assets
	StateLoadFailed              // an asset could not be loaded; terminal
	StateTitle                   // waiting for the player to click the bee
	StatePlaying
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoadFailed:
		return "load-failed"
	case StateTitle:
		return "title"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Stats is the per-game tally. It is reset whenever a new game starts.
type Stats struct {
	Hits   int
	Misses int
	Rounds int
	// Interval is the current hop delay.
	Interval time.Duration
	// Speed is the amount the next hit takes off Interval.
	Speed time.Duration
	// SpeedPct is BaseInterval/Interval as a percentage, for display.
	SpeedPct int
}

// EventKind identifies a session event.
type EventKind uint8

const (
	EventStateChanged EventKind = iota
	EventHit
	EventMiss
	EventHop
)

func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state-changed"
	case EventHit:
		return "hit"
	case EventMiss:
		return "miss"
	case EventHop:
		return "hop"
	default:
		return "unknown"
	}
}

// Event is published to the session's EventSink.
type Event struct {
	Kind    EventKind
	Session uuid.UUID
	State   State
	// Prev is the state left, for EventStateChanged.
	Prev  State
	Stats Stats
	// X and Y locate hits, misses and hop targets in canvas coordinates.
	X, Y float64
}

// EventSink receives session events on the loop thread.
type EventSink interface {
	Publish(Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

func (f EventSinkFunc) Publish(e Event) { f(e) }
