package ecs

import (
	"github.com/phanxgames/scalegesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ScaleEventType is the Donburi event type for gesture notifications.
var ScaleEventType = events.NewEventType[scalegesture.ScaleEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Notifications are queued on ScaleEventType and delivered to subscribers
// by ProcessEvents, typically once per ECS tick.
func NewDonburiStore(world donburi.World) scalegesture.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event scalegesture.ScaleEvent) {
	ScaleEventType.Publish(s.world, event)
}
