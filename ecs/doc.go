// Package ecs provides ECS adapters for scalegesture's notification stream.
//
// The primary adapter is [NewDonburiStore], which bridges gesture
// notifications (begin, scale, end) into a [Donburi] world as typed events.
// Subscribe to [ScaleEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	detector.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
