package ecs

import (
	"github.com/phanxgames/collision"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// InteractionEventType is the Donburi event type for collision interaction events.
// Subscribe to this in your ECS systems to receive collision and trigger events.
var InteractionEventType = events.NewEventType[collision.InteractionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) collision.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event collision.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// PositionData is the center of an entity in world units.
type PositionData struct {
	X, Y float64
}

// PhysicsData links an entity to its collision body.
type PhysicsData struct {
	Body *collision.Body
}

var (
	// Position holds the entity center.
	Position = donburi.NewComponentType[PositionData]()
	// Physics holds the entity's body.
	Physics = donburi.NewComponentType[PhysicsData]()

	bodyQuery = donburi.NewQuery(filter.Contains(Position, Physics))
)

// AddBody creates an entity for body, registers the body with physics and
// returns the entity. The entity position starts at the body position and
// the body's UserData is set to the entity.
func AddBody(w donburi.World, physics *collision.World, body *collision.Body) donburi.Entity {
	entity := w.Create(Position, Physics)
	entry := w.Entry(entity)

	p := body.Position()
	Position.SetValue(entry, PositionData{X: p.X, Y: p.Y})
	Physics.SetValue(entry, PhysicsData{Body: body})

	body.UserData = entity
	physics.AddBody(body)
	return entity
}

// RemoveBody unregisters the entity's body from physics and removes the
// entity.
func RemoveBody(w donburi.World, physics *collision.World, entity donburi.Entity) {
	if !w.Valid(entity) {
		return
	}
	entry := w.Entry(entity)
	if entry.HasComponent(Physics) {
		physics.RemoveBody(Physics.Get(entry).Body)
	}
	w.Remove(entity)
}

// PushPositions moves every body to its entity's position.
func PushPositions(w donburi.World) {
	bodyQuery.Each(w, func(entry *donburi.Entry) {
		body := Physics.Get(entry).Body
		if body == nil {
			return
		}
		pos := Position.Get(entry)
		body.UpdatePosition(pos.X, pos.Y)
	})
}

// PullPositions copies every body position back to its entity.
func PullPositions(w donburi.World) {
	bodyQuery.Each(w, func(entry *donburi.Entry) {
		body := Physics.Get(entry).Body
		if body == nil {
			return
		}
		p := body.Position()
		pos := Position.Get(entry)
		pos.X, pos.Y = p.X, p.Y
	})
}

// Step pushes entity positions into bodies, advances physics by dt, pulls
// the resolved positions back and processes the interaction events
// published during the step.
func Step(w donburi.World, physics *collision.World, dt float64) {
	PushPositions(w)
	physics.Update(dt)
	PullPositions(w)
	InteractionEventType.ProcessEvents(w)
}
