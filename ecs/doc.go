// Package ecs provides ECS adapters for the collision world.
//
// [NewDonburiSink] bridges collision and trigger events into a [Donburi]
// world as typed events. Subscribe to [InteractionEventType] in your ECS
// systems to receive them.
//
// Entities created with [AddBody] carry a [Position] and a [Physics]
// component. [Step] copies positions into the bodies, advances the
// collision world and copies the resolved positions back.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	physics.SetEventSink(sink)
//
//	player := ecs.AddBody(world, physics, body)
//
//	// each frame:
//	ecs.Step(world, physics, 1.0/60)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
