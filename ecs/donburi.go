package ecs

import (
	"github.com/phanxgames/hive"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for hive interaction events.
// Subscribe to this in your ECS systems to receive clicks and pointer moves.
var InteractionEventType = events.NewEventType[hive.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) hive.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event hive.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// CanvasRefData links an entity back to the hive component it was tagged on.
type CanvasRefData struct {
	Name        string
	ComponentID uint32
}

// CanvasRef is the component Tag attaches.
var CanvasRef = donburi.NewComponentType[CanvasRefData]()

// Tag creates an entity for comp and sets comp.EntityID, so interaction
// events captured by comp reach InteractionEventType.
func Tag(world donburi.World, comp *hive.Component) donburi.Entity {
	e := world.Create(CanvasRef)
	CanvasRef.SetValue(world.Entry(e), CanvasRefData{Name: comp.Name, ComponentID: comp.ID})
	comp.EntityID = uint32(e.Id())
	return e
}
