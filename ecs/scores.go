package ecs

import (
	"github.com/google/uuid"
	"github.com/phanxgames/hive/game"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GameEventType is the Donburi event type for game session events.
var GameEventType = events.NewEventType[game.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a game.EventSink that publishes to GameEventType.
func NewDonburiSink(world donburi.World) game.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Publish(e game.Event) {
	GameEventType.Publish(s.world, e)
}

// ScoreboardData accumulates results across games.
type ScoreboardData struct {
	Games       int
	BestHits    int
	TotalHits   int
	TotalMisses int
	// Last is the final tally of the most recently finished game.
	Last        game.Stats
	LastSession uuid.UUID
}

// Scoreboard is the component TrackScores keeps up to date.
var Scoreboard = donburi.NewComponentType[ScoreboardData]()

// TrackScores creates the scoreboard entity and subscribes it to
// GameEventType. Calling it again on the same world returns the existing
// entity without subscribing twice.
func TrackScores(world donburi.World) donburi.Entity {
	if entry, ok := Scoreboard.First(world); ok {
		return entry.Entity()
	}
	e := world.Create(Scoreboard)
	GameEventType.Subscribe(world, onGameEvent)
	return e
}

// Scores returns the current scoreboard, or the zero value if TrackScores
// has not been called.
func Scores(world donburi.World) ScoreboardData {
	entry, ok := Scoreboard.First(world)
	if !ok {
		return ScoreboardData{}
	}
	return *Scoreboard.Get(entry)
}

func onGameEvent(w donburi.World, e game.Event) {
	entry, ok := Scoreboard.First(w)
	if !ok {
		return
	}
	sb := Scoreboard.Get(entry)
	switch e.Kind {
	case game.EventHit:
		sb.TotalHits++
	case game.EventMiss:
		sb.TotalMisses++
	case game.EventStateChanged:
		if e.State != game.StateGameOver {
			return
		}
		sb.Games++
		sb.Last = e.Stats
		sb.LastSession = e.Session
		sb.BestHits = max(sb.BestHits, e.Stats.Hits)
	}
}
