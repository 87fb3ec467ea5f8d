// Package collision is an axis-aligned rectangle physics and collision core
// for 2D games, with an optional [Ebitengine] debug renderer.
//
// A [World] owns a fixed-bounds [QuadTree] and steps a list of [Body]
// values: it applies gravity, acceleration and drag, moves each body by its
// velocity, resolves overlaps between solid bodies and reports interactions
// (collision and trigger start/stay/end) through callbacks and an optional
// [EventSink].
//
// # Quick start
//
//	world := collision.NewWorld(collision.WorldOptions{
//		Size:    collision.Size{Width: 800, Height: 600},
//		Gravity: collision.Vec2{Y: 20},
//	})
//
//	floor := collision.NewBody(collision.BodyOptions{
//		Type:     collision.BodyStatic,
//		Position: &collision.Vec2{X: 400, Y: 500},
//		Size:     collision.Size{Width: 780, Height: 30},
//	})
//	box := collision.NewBody(collision.BodyOptions{
//		Position: &collision.Vec2{X: 400, Y: 100},
//		Size:     collision.Size{Width: 30, Height: 30},
//	})
//	world.AddBody(floor)
//	world.AddBody(box)
//
//	world.OnCollisionStart(func(b1, b2 *collision.Body) {
//		// b1 is the dynamic body that was separated.
//	})
//
//	// Each frame:
//	world.Update(1.0 / 60)
//
// Positions passed to and returned from bodies ([Body.UpdatePosition],
// [Body.Position]) are centers adjusted by [Body.Offset], so a body can
// follow a sprite whose anchor is not its physical center.
//
// # Body types
//
// Dynamic bodies receive forces and are pushed out of every solid body they
// touch. Kinematic bodies move by their velocity only and push dynamic
// bodies without being pushed back. Static bodies never move. Sensors are
// never separated; they report trigger events instead.
//
// Groups and masks filter pairs: two bodies interact only when each body's
// masks share a bit with the other's groups. [Body.CanCollide] restricts the
// sides on which a body accepts contacts, which makes one-way platforms.
//
// # Queries
//
// [World.Raycast] returns the bodies crossed by a segment, closest first,
// optionally restricted to tagged bodies. [World.QueryRect] returns the
// bodies overlapping a rectangle.
//
// # Extras
//
// [GenerateTileColliders] merges a tile grid into few static rectangles.
// [TweenBody] drives kinematic bodies along eased paths (via [gween]).
// [LoadScenario] reads scripted simulations from YAML for tests and tools,
// and [ScenarioRunner.Record] writes a msgpack frame recording of a run.
// [EbitenGraphics] and [DrawStats] render the world and its statistics
// with Ebitengine, alongside [FPSOverlay] and [SaveScreenshot]. The ecs sub-module bridges events and positions into
// [Donburi].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package collision
