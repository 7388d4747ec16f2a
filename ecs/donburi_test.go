package ecs

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phanxgames/hive"
	"github.com/phanxgames/hive/game"
	"github.com/stretchr/testify/require"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []hive.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e hive.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(hive.InteractionEvent{
		Type:     hive.EventClick,
		EntityID: 42,
		Name:     "bee",
		X:        100,
		Y:        200,
	})
	store.EmitEvent(hive.InteractionEvent{Type: hive.EventMouseMove, EntityID: 7})

	// Events are queued; process them.
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != hive.EventClick || e0.EntityID != 42 || e0.Name != "bee" {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.X != 100 || e0.Y != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.X, e0.Y)
	}
	if received[1].Type != hive.EventMouseMove {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiStore_FromCanvasDispatch(t *testing.T) {
	world := donburi.NewWorld()
	canvas := hive.NewCanvas(nil, hive.CanvasConfig{Width: 100, Height: 100})
	canvas.SetEntityStore(NewDonburiStore(world))

	tagged := canvas.AddRectangle("tagged", 40, 40)
	tagged.EntityID = 9
	plain := canvas.AddRectangle("plain", 40, 40)
	plain.SetPosition(50, 50)
	canvas.On(hive.EventClick, tagged, func(hive.PointerEvent) {}, nil)
	canvas.On(hive.EventClick, plain, func(hive.PointerEvent) {}, nil)
	canvas.Render()

	var ids []uint32
	InteractionEventType.Subscribe(world, func(w donburi.World, e hive.InteractionEvent) {
		ids = append(ids, e.EntityID)
	})
	canvas.DispatchClick(10, 10)
	canvas.DispatchClick(60, 60) // captured, but no EntityID
	canvas.DispatchClick(45, 5)  // uncaptured
	events.ProcessAllEvents(world)

	if len(ids) != 1 || ids[0] != 9 {
		t.Errorf("forwarded entity ids = %v, want [9]", ids)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store hive.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e hive.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e hive.InteractionEvent) {
		count2++
	})

	store.EmitEvent(hive.InteractionEvent{Type: hive.EventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestTrackScores(t *testing.T) {
	world := donburi.NewWorld()
	e := TrackScores(world)
	require.Equal(t, e, TrackScores(world), "second call reuses the entity")

	sink := NewDonburiSink(world)
	id := uuid.New()
	sink.Publish(game.Event{Kind: game.EventHit, Session: id})
	sink.Publish(game.Event{Kind: game.EventHit, Session: id})
	sink.Publish(game.Event{Kind: game.EventMiss, Session: id})
	sink.Publish(game.Event{Kind: game.EventStateChanged, Session: id, State: game.StatePaused})
	sink.Publish(game.Event{
		Kind:    game.EventStateChanged,
		Session: id,
		State:   game.StateGameOver,
		Stats:   game.Stats{Hits: 2, Misses: 1, Rounds: 9},
	})

	require.Equal(t, ScoreboardData{}, Scores(world), "nothing applied before processing")
	events.ProcessAllEvents(world)

	sb := Scores(world)
	require.Equal(t, 1, sb.Games)
	require.Equal(t, 2, sb.TotalHits)
	require.Equal(t, 1, sb.TotalMisses)
	require.Equal(t, 2, sb.BestHits)
	require.Equal(t, 9, sb.Last.Rounds)
	require.Equal(t, id, sb.LastSession)

	sink.Publish(game.Event{Kind: game.EventStateChanged, State: game.StateGameOver, Stats: game.Stats{Hits: 1}})
	events.ProcessAllEvents(world)
	sb = Scores(world)
	require.Equal(t, 2, sb.Games)
	require.Equal(t, 2, sb.BestHits)
}

func TestScoresWithoutTracking(t *testing.T) {
	require.Equal(t, ScoreboardData{}, Scores(donburi.NewWorld()))
}

func TestTag(t *testing.T) {
	world := donburi.NewWorld()
	canvas := hive.NewCanvas(nil, hive.CanvasConfig{Width: 100, Height: 100})
	box := canvas.AddRectangle("box", 20, 20)

	e := Tag(world, box)
	require.NotZero(t, box.EntityID)
	require.Equal(t, uint32(e.Id()), box.EntityID)

	ref := CanvasRef.Get(world.Entry(e))
	require.Equal(t, "box", ref.Name)
	require.Equal(t, box.ID, ref.ComponentID)
}
