// Package ecs forwards diorama room events into a [Donburi] world.
//
// [NewDonburiSink] returns a diorama.EventSink that publishes every event
// (hover, action, cursor, modal, theme, mute, ready) as a typed Donburi
// event. Subscribe to [RoomEventType] in your systems and drain the queue
// with ProcessEvents once per frame.
//
// Usage:
//
//	world := donburi.NewWorld()
//	scene.SetEventSink(ecs.NewDonburiSink(world))
//	ecs.RoomEventType.Subscribe(world, func(w donburi.World, e diorama.Event) {
//		if e.Type == diorama.EventAction && e.Action == diorama.ActionOpenModal {
//			openModal(e.Modal)
//		}
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
