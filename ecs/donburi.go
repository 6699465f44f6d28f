// Package ecs provides ECS adapters for diorama.
package ecs

import (
	"github.com/phanxgames/diorama"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// RoomEventType is the Donburi event type for diorama events.
var RoomEventType = events.NewEventType[diorama.Event]()

type donburiSink struct {
	world  donburi.World
	filter func(diorama.Event) bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to RoomEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) diorama.EventSink {
	return &donburiSink{world: world}
}

// NewFilteredDonburiSink is like NewDonburiSink but only publishes events
// for which keep returns true.
func NewFilteredDonburiSink(world donburi.World, keep func(diorama.Event) bool) diorama.EventSink {
	return &donburiSink{world: world, filter: keep}
}

func (s *donburiSink) Emit(event diorama.Event) {
	if s.filter != nil && !s.filter(event) {
		return
	}
	RoomEventType.Publish(s.world, event)
}
