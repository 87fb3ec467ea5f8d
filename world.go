package collision

import (
	"math"
	"time"
)

const (
	defaultIterations = 8
	// maxDebugRays bounds the recorded rays when Draw is never called.
	maxDebugRays = 1000
)

// WorldOptions configures a new World.
type WorldOptions struct {
	// Position is the top-left corner of the world.
	Position Vec2
	// Size of the world. Required: bodies outside the world do not move or
	// collide.
	Size Size
	// Iterations is the number of broad+narrow phase passes per step.
	// Zero uses 8.
	Iterations int
	// Gravity is added to the velocity of dynamic bodies every step.
	Gravity Vec2
}

// debugRay is a raycast recorded for debug drawing.
type debugRay struct {
	origin, target Vec2
	hit            bool
}

// World owns the simulation loop: it integrates bodies, rebuilds the
// quadtree, resolves collisions and emits interaction events. A World is not
// safe for concurrent use.
type World struct {
	// DrawRays records raycasts so Draw can render them.
	DrawRays bool
	// ShowQuadTree makes Draw render the world bounds and tree nodes.
	ShowQuadTree bool
	// Iterations is the number of collision passes per step.
	Iterations int
	// Gravity is added to the velocity of dynamic bodies every step.
	Gravity Vec2

	bounds Rect
	tree   *QuadTree
	bodies []*Body

	// inWorld marks the bodies that take part in the current step.
	inWorld map[*Body]bool

	treeList  []*Body
	queue     interactionQueue
	events    []InteractionEvent
	handlers  handlerRegistry
	sink      EventSink
	debugRays []debugRay
	quadBuf   []Rect

	debug bool
	stats StepStats
}

// NewWorld creates a world with the given options.
func NewWorld(opts WorldOptions) *World {
	iterations := opts.Iterations
	if iterations == 0 {
		iterations = defaultIterations
	}
	w := &World{
		Iterations: iterations,
		Gravity:    opts.Gravity,
		bounds: Rect{
			X: opts.Position.X, Y: opts.Position.Y,
			Width: opts.Size.Width, Height: opts.Size.Height,
		},
		inWorld: make(map[*Body]bool),
	}
	w.tree = NewQuadTree(w.bounds.X, w.bounds.Y, w.bounds.Width, w.bounds.Height)
	return w
}

// AddBody registers body with the world. Registration order is the
// iteration order of every step.
func (w *World) AddBody(body *Body) {
	if w.debug {
		debugCheckBody(body)
	}
	w.bodies = append(w.bodies, body)
}

// RemoveBody unregisters body. Bodies registered after it keep their order.
func (w *World) RemoveBody(body *Body) {
	for i, b := range w.bodies {
		if b == body {
			copy(w.bodies[i:], w.bodies[i+1:])
			w.bodies[len(w.bodies)-1] = nil
			w.bodies = w.bodies[:len(w.bodies)-1]
			delete(w.inWorld, body)
			return
		}
	}
}

// Bodies returns the registered bodies in registration order. The slice is
// owned by the world.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Tree returns the spatial index. It holds the bodies of the last step.
func (w *World) Tree() *QuadTree {
	return w.tree
}

// Events returns the events emitted by the last Update, in emission order.
// The slice is reused by the next Update.
func (w *World) Events() []InteractionEvent {
	return w.events
}

// Update advances the simulation by dt seconds.
//
// Velocities are in units per second. Gravity, acceleration and drag are
// applied to velocities once per step.
func (w *World) Update(dt float64) {
	if w.debug {
		debugCheckWorld(w)
	}
	w.stats = StepStats{Bodies: len(w.bodies)}
	mark := w.debugNow()

	if len(w.debugRays) > maxDebugRays {
		w.debugRays = w.debugRays[:0]
	}

	w.tree.Clear()
	clear(w.inWorld)
	for _, body := range w.bodies {
		if !body.Active {
			continue
		}
		w.stats.Active++

		body.rollInteractions()
		body.WasTouching = body.Touching
		body.Touching = SideNone
		body.LastPos = Vec2{X: body.Bounds.X, Y: body.Bounds.Y}

		if !w.bounds.Intersects(body.Bounds) {
			continue
		}
		w.integrate(body, dt)
		w.tree.Insert(body)
		w.inWorld[body] = true
		w.stats.Inserted++
	}
	mark = w.debugLap(&w.stats.IntegrateTime, mark)

	for i := 0; i < w.Iterations; i++ {
		for _, body := range w.bodies {
			if !body.Active || !w.inWorld[body] {
				continue
			}
			w.treeList = w.tree.BodyList(body, w.treeList[:0])
			w.stats.Candidates += len(w.treeList)
			for _, other := range w.treeList {
				w.checkCollisions(body, other)
			}
		}
	}
	clear(w.treeList)
	mark = w.debugLap(&w.stats.ResolveTime, mark)

	for _, body := range w.bodies {
		if !body.Active {
			continue
		}
		for _, other := range body.wasCollidingWith {
			if !containsBody(body.isCollidingWith, other) {
				w.queue.push(CollisionEnd, body, other)
			}
		}
		for _, other := range body.wasTriggeredBy {
			if !containsBody(body.isTriggeredBy, other) {
				w.queue.push(TriggerEnd, body, other)
			}
		}
	}

	w.emit()
	w.stats.TreeNodes = w.tree.NodeCount()
	w.debugLap(&w.stats.EmitTime, mark)
	w.debugLog()
}

// integrate applies forces to a body and moves it by its velocity.
func (w *World) integrate(body *Body, dt float64) {
	if body.Type == BodyStatic {
		return
	}
	if body.Type == BodyDynamic {
		body.Velocity.X += body.Acceleration.X
		body.Velocity.Y += body.Acceleration.Y
		if body.UseGravity {
			body.Velocity.X += w.Gravity.X
			body.Velocity.Y += w.Gravity.Y
		}

		body.Velocity.X = applyDrag(body.Velocity.X, body.Drag.X)
		body.Velocity.Y = applyDrag(body.Velocity.Y, body.Drag.Y)

		if m := math.Abs(body.MaxVelocity.X); m != 0 {
			body.Velocity.X = clamp(body.Velocity.X, -m, m)
		}
		if m := math.Abs(body.MaxVelocity.Y); m != 0 {
			body.Velocity.Y = clamp(body.Velocity.Y, -m, m)
		}
	}
	body.Bounds.X += body.Velocity.X * dt
	body.Bounds.Y += body.Velocity.Y * dt
}

// applyDrag moves v toward zero by drag without changing its sign.
func applyDrag(v, drag float64) float64 {
	switch {
	case v > 0:
		return math.Max(v-drag, 0)
	case v < 0:
		return math.Min(v+drag, 0)
	}
	return v
}

// checkCollisions classifies and, for solid pairs, resolves the contact of
// body1 with a broad-phase candidate.
func (w *World) checkCollisions(body1, body2 *Body) {
	if !body1.Masks.HasAny(body2.Groups) || !body2.Masks.HasAny(body1.Groups) {
		return
	}
	if !BodiesIntersect(body1, body2) {
		return
	}

	switch {
	case body1.Type == BodyDynamic && !body1.IsSensor && !body2.IsSensor:
		if Separate(body1, body2) {
			w.stats.Separations++
		}
		if containsBody(body1.wasCollidingWith, body2) {
			w.queue.push(CollisionStay, body1, body2)
		} else {
			w.queue.push(CollisionStart, body1, body2)
		}
		body1.isCollidingWith = appendUnique(body1.isCollidingWith, body2)

	case body1.IsSensor && !body2.IsSensor:
		w.trigger(body1, body2)

	case body2.IsSensor && !body1.IsSensor:
		w.trigger(body2, body1)
	}
}

// trigger records that body overlaps sensor this step.
func (w *World) trigger(sensor, body *Body) {
	if containsBody(sensor.wasTriggeredBy, body) {
		w.queue.push(TriggerStay, sensor, body)
	} else {
		w.queue.push(TriggerStart, sensor, body)
	}
	sensor.isTriggeredBy = appendUnique(sensor.isTriggeredBy, body)
}

// emit drains the interaction queue, most recent first.
func (w *World) emit() {
	clear(w.events)
	w.events = w.events[:0]
	for {
		typ, b1, b2, ok := w.queue.pop()
		if !ok {
			break
		}
		e := InteractionEvent{Type: typ, Body1: b1, Body2: b2}
		w.events = append(w.events, e)
		if w.sink != nil {
			w.sink.EmitEvent(e)
		}
		w.handlers.emit(e)
	}
	w.stats.Events = len(w.events)
}

// Raycast returns the bodies touched by the segment from origin to target,
// closest first. With tags, only bodies carrying every tag are kept. A nil
// out uses a list owned by the world that the next raycast overwrites.
func (w *World) Raycast(origin, target Vec2, tags []string, out *RayHitList) *RayHitList {
	result := w.tree.LineHitList(origin, target, out)
	if len(tags) > 0 && result.Count() > 0 {
		result.keepTags(tags)
	}
	if w.DrawRays {
		w.debugRays = append(w.debugRays, debugRay{origin: origin, target: target, hit: result.Count() > 0})
	}
	return result
}

// QueryRect appends to out every body of the last step whose bounds
// intersect r, each once, and returns the extended slice.
func (w *World) QueryRect(r Rect, out []*Body) []*Body {
	probe := Body{Bounds: r}
	start := len(out)
	w.treeList = w.tree.BodyList(&probe, w.treeList[:0])
	for _, b := range w.treeList {
		if b.Bounds.Intersects(r) && !containsBody(out[start:], b) {
			out = append(out, b)
		}
	}
	clear(w.treeList)
	return out
}

// Bounds returns the world rectangle.
func (w *World) Bounds() Rect {
	return w.bounds
}

// Position returns the top-left corner of the world.
func (w *World) Position() Vec2 {
	return Vec2{X: w.bounds.X, Y: w.bounds.Y}
}

// Size returns the world size.
func (w *World) Size() Size {
	return Size{Width: w.bounds.Width, Height: w.bounds.Height}
}

// SetPosition moves the world. The quadtree follows.
func (w *World) SetPosition(x, y float64) {
	w.bounds.X = x
	w.bounds.Y = y
	w.tree.UpdatePosition(x, y)
}

// SetSize resizes the world. The quadtree follows.
func (w *World) SetSize(width, height float64) {
	w.bounds.Width = width
	w.bounds.Height = height
	w.tree.UpdateBounds(w.bounds.X, w.bounds.Y, width, height)
}

// Destroy removes every event callback and the event sink.
func (w *World) Destroy() {
	w.handlers.clear()
	w.sink = nil
}

func (w *World) debugNow() time.Time {
	if !w.debug {
		return time.Time{}
	}
	return time.Now()
}

// debugLap stores the time since mark into d and returns the new mark.
func (w *World) debugLap(d *time.Duration, mark time.Time) time.Time {
	if !w.debug {
		return mark
	}
	now := time.Now()
	*d = now.Sub(mark)
	return now
}
