package collision

import (
	"math"
	"testing"
)

func newTestWorld(gravity Vec2) *World {
	return NewWorld(WorldOptions{
		Size:    Size{Width: 800, Height: 600},
		Gravity: gravity,
	})
}

func eventTypes(events []InteractionEvent) []InteractionType {
	types := make([]InteractionType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

func TestNewWorldDefaults(t *testing.T) {
	w := newTestWorld(Vec2{})
	if w.Iterations != 8 {
		t.Errorf("Iterations = %d, want 8", w.Iterations)
	}
	if w.Tree().Bounds() != w.Bounds() {
		t.Errorf("tree bounds %v != world bounds %v", w.Tree().Bounds(), w.Bounds())
	}
}

func TestWorldBoxRestsOnFloor(t *testing.T) {
	w := newTestWorld(Vec2{Y: 20})
	floor := NewBody(BodyOptions{
		Type:     BodyStatic,
		Position: &Vec2{X: 400, Y: 500},
		Size:     Size{Width: 780, Height: 30},
	})
	box := NewBody(BodyOptions{
		Position: &Vec2{X: 400, Y: 100},
		Size:     Size{Width: 30, Height: 30},
	})
	w.AddBody(floor)
	w.AddBody(box)

	counts := map[InteractionType]int{}
	w.On(CollisionStart, func(b1, b2 *Body) {
		if b1 != box || b2 != floor {
			t.Errorf("collisionStart bodies = %v, %v", b1.Type, b2.Type)
		}
		counts[CollisionStart]++
	})
	w.OnCollisionStay(func(_, _ *Body) { counts[CollisionStay]++ })
	w.OnCollisionEnd(func(_, _ *Body) { counts[CollisionEnd]++ })

	const steps = 120
	for i := 0; i < steps; i++ {
		w.Update(1.0 / 60)
	}

	if y := box.Position().Y; math.Abs(y-470) > 0.01 {
		t.Errorf("box center Y = %v, want 470", y)
	}
	if math.Abs(box.Velocity.Y) > 20 {
		t.Errorf("box velocity = %v, want ~0", box.Velocity.Y)
	}
	if counts[CollisionStart] != 1 {
		t.Errorf("collisionStart = %d, want 1", counts[CollisionStart])
	}
	if counts[CollisionEnd] != 0 {
		t.Errorf("collisionEnd = %d, want 0", counts[CollisionEnd])
	}
	if counts[CollisionStay] == 0 || counts[CollisionStart]+counts[CollisionStay] > steps {
		t.Errorf("collisionStay = %d", counts[CollisionStay])
	}
	if !box.Touching.Has(SideBottom) || !floor.Touching.Has(SideTop) {
		t.Errorf("touching = %b / %b", box.Touching, floor.Touching)
	}
	if floor.Position() != (Vec2{X: 400, Y: 500}) {
		t.Errorf("floor moved to %v", floor.Position())
	}
}

// wallScene builds a dynamic box moving 10 units per second toward a static
// wall 5 units away.
func wallScene() (w *World, box, wall *Body) {
	w = newTestWorld(Vec2{})
	box = NewBody(BodyOptions{
		Position: &Vec2{X: 100, Y: 100},
		Size:     Size{Width: 20, Height: 20},
		Velocity: Vec2{X: 10},
	})
	wall = NewBody(BodyOptions{
		Type:     BodyStatic,
		Position: &Vec2{X: 125, Y: 100},
		Size:     Size{Width: 20, Height: 20},
	})
	w.AddBody(box)
	w.AddBody(wall)
	return w, box, wall
}

func TestWorldBodyWithoutMasksPassesThrough(t *testing.T) {
	w := newTestWorld(Vec2{})
	none := SideNone
	ghost := NewBody(BodyOptions{
		Position: &Vec2{X: 100, Y: 100},
		Size:     Size{Width: 20, Height: 20},
		Velocity: Vec2{X: 10},
		Masks:    &none,
	})
	w.AddBody(ghost)
	w.AddBody(NewBody(BodyOptions{
		Type:     BodyStatic,
		Position: &Vec2{X: 125, Y: 100},
		Size:     Size{Width: 20, Height: 20},
	}))

	w.Update(1)
	if n := len(w.Events()); n != 0 {
		t.Errorf("emitted %d events, want none", n)
	}
	if x := ghost.Position().X; x != 110 {
		t.Errorf("ghost X = %v, want 110", x)
	}
}

func TestWorldCollisionLifecycle(t *testing.T) {
	w, box, wall := wallScene()

	want := []InteractionType{CollisionStart, CollisionStay, CollisionStay}
	for i, typ := range want {
		w.Update(1)
		events := w.Events()
		if len(events) != 1 || events[0].Type != typ {
			t.Fatalf("step %d events = %v, want [%v]", i+1, eventTypes(events), typ)
		}
		if events[0].Body1 != box || events[0].Body2 != wall {
			t.Fatalf("step %d bodies out of order", i+1)
		}
	}
	if box.Bounds.X != 95 {
		t.Errorf("box X = %v, want 95", box.Bounds.X)
	}
	if len(box.CollidingWith()) != 1 || box.CollidingWith()[0] != wall {
		t.Error("CollidingWith should hold the wall")
	}

	box.Velocity.X = -10
	w.Update(1)
	events := w.Events()
	if len(events) != 1 || events[0].Type != CollisionEnd {
		t.Fatalf("events = %v, want [collisionEnd]", eventTypes(events))
	}

	w.Update(1)
	if len(w.Events()) != 0 {
		t.Errorf("events after separation = %v, want none", eventTypes(w.Events()))
	}
}

func TestWorldSensorTriggers(t *testing.T) {
	w := newTestWorld(Vec2{})
	body := NewBody(BodyOptions{
		Position: &Vec2{X: 100, Y: 100},
		Velocity: Vec2{X: 20},
	})
	sensor := NewBody(BodyOptions{
		Type:     BodyStatic,
		IsSensor: true,
		Position: &Vec2{X: 150, Y: 100},
		Size:     Size{Width: 20, Height: 20},
	})
	w.AddBody(body)
	w.AddBody(sensor)

	var collisions int
	w.OnCollisionStart(func(_, _ *Body) { collisions++ })

	want := [][]InteractionType{
		nil,
		{TriggerStart},
		{TriggerStay},
		{TriggerEnd},
		nil,
	}
	for i, types := range want {
		w.Update(1)
		got := eventTypes(w.Events())
		if len(got) != len(types) {
			t.Fatalf("step %d events = %v, want %v", i+1, got, types)
		}
		for j := range types {
			if got[j] != types[j] {
				t.Fatalf("step %d events = %v, want %v", i+1, got, types)
			}
			e := w.Events()[j]
			if e.Body1 != sensor || e.Body2 != body {
				t.Fatalf("step %d: trigger bodies should be (sensor, body)", i+1)
			}
		}
	}
	if body.Bounds.X != 195 {
		t.Errorf("body X = %v, want 195: sensors must not push", body.Bounds.X)
	}
	if collisions != 0 {
		t.Errorf("collisionStart fired %d times for a sensor", collisions)
	}
}

func TestWorldGroupsAndMasks(t *testing.T) {
	tests := []struct {
		name        string
		boxMasks    Bitset
		wallGroups  Bitset
		wantCollide bool
	}{
		{"default groups", 0, 0, true},
		{"mask excludes group", Group02, Group01, false},
		{"mask shares a group", Group01 | Group02, Group02 | Group03, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, box, wall := wallScene()
			if tt.boxMasks != 0 {
				box.Masks = tt.boxMasks
			}
			if tt.wallGroups != 0 {
				wall.Groups = tt.wallGroups
			}
			w.Update(1)
			collided := len(w.Events()) == 1
			if collided != tt.wantCollide {
				t.Errorf("collided = %v, want %v", collided, tt.wantCollide)
			}
		})
	}
}

func TestWorldIntegration(t *testing.T) {
	tests := []struct {
		name string
		opts BodyOptions
		want Vec2 // velocity after one step
	}{
		{"gravity", BodyOptions{}, Vec2{X: 0, Y: 10}},
		{"ignore gravity", BodyOptions{IgnoreGravity: true, Velocity: Vec2{X: 3}}, Vec2{X: 3}},
		{"acceleration", BodyOptions{IgnoreGravity: true, Acceleration: Vec2{X: 2, Y: -1}}, Vec2{X: 2, Y: -1}},
		{"drag stops at zero", BodyOptions{IgnoreGravity: true, Velocity: Vec2{X: 3, Y: -3}, Drag: Vec2{X: 5, Y: 1}}, Vec2{X: 0, Y: -2}},
		{"max velocity", BodyOptions{MaxVelocity: Vec2{Y: 4}}, Vec2{Y: 4}},
		{"kinematic ignores forces", BodyOptions{Type: BodyKinematic, Velocity: Vec2{X: 1}, Acceleration: Vec2{X: 5}}, Vec2{X: 1}},
		{"static never moves", BodyOptions{Type: BodyStatic, Velocity: Vec2{X: 1}}, Vec2{X: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(Vec2{Y: 10})
			tt.opts.Position = &Vec2{X: 100, Y: 100}
			b := NewBody(tt.opts)
			w.AddBody(b)
			w.Update(0.5)

			if b.Velocity != tt.want {
				t.Errorf("velocity = %v, want %v", b.Velocity, tt.want)
			}
			wantPos := Vec2{X: 100 + tt.want.X*0.5, Y: 100 + tt.want.Y*0.5}
			if b.Type == BodyStatic {
				wantPos = Vec2{X: 100, Y: 100}
			}
			if b.Position() != wantPos {
				t.Errorf("position = %v, want %v", b.Position(), wantPos)
			}
		})
	}
}

func TestWorldSkipsInactiveAndOutsideBodies(t *testing.T) {
	w := newTestWorld(Vec2{})
	inactive := NewBody(BodyOptions{Inactive: true, Position: &Vec2{X: 10, Y: 10}, Velocity: Vec2{X: 5}})
	outside := NewBody(BodyOptions{Position: &Vec2{X: 2000, Y: 10}, Velocity: Vec2{X: 5}})
	w.AddBody(inactive)
	w.AddBody(outside)

	w.Update(1)

	if inactive.Position() != (Vec2{X: 10, Y: 10}) {
		t.Errorf("inactive body moved to %v", inactive.Position())
	}
	if outside.Position() != (Vec2{X: 2000, Y: 10}) {
		t.Errorf("outside body moved to %v", outside.Position())
	}
	s := w.Stats()
	if s.Bodies != 2 || s.Active != 1 || s.Inserted != 0 {
		t.Errorf("stats = %+v", s)
	}
	if got := w.QueryRect(Rect{X: 1900, Y: 0, Width: 200, Height: 50}, nil); len(got) != 0 {
		t.Errorf("QueryRect found %d bodies outside the world", len(got))
	}
}

func TestWorldRemoveBodyKeepsOrder(t *testing.T) {
	w := newTestWorld(Vec2{})
	a, b, c := NewBody(BodyOptions{}), NewBody(BodyOptions{}), NewBody(BodyOptions{})
	w.AddBody(a)
	w.AddBody(b)
	w.AddBody(c)

	w.RemoveBody(b)
	got := w.Bodies()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("Bodies() after remove = %d bodies", len(got))
	}
	w.RemoveBody(b) // no-op
	if len(w.Bodies()) != 2 {
		t.Error("removing an unknown body should be a no-op")
	}
}

func TestWorldRaycast(t *testing.T) {
	w := newTestWorld(Vec2{})
	mk := func(x float64, tags ...string) *Body {
		b := NewBody(BodyOptions{
			Type:     BodyStatic,
			Position: &Vec2{X: x, Y: 100},
			Size:     Size{Width: 20, Height: 20},
			Tags:     tags,
		})
		w.AddBody(b)
		return b
	}
	grunt := mk(100, "enemy")
	wall := mk(200, "wall")
	boss := mk(300, "enemy", "boss")
	w.Update(1.0 / 60)

	tests := []struct {
		name string
		tags []string
		want []*Body
	}{
		{"all", nil, []*Body{grunt, wall, boss}},
		{"enemy", []string{"enemy"}, []*Body{grunt, boss}},
		{"enemy boss", []string{"enemy", "boss"}, []*Body{boss}},
		{"none", []string{"ghost"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := w.Raycast(Vec2{X: 0, Y: 100}, Vec2{X: 400, Y: 100}, tt.tags, nil)
			if hits.Count() != len(tt.want) {
				t.Fatalf("Count = %d, want %d", hits.Count(), len(tt.want))
			}
			for i, h := range hits.Hits() {
				if h.Body != tt.want[i] {
					t.Errorf("hit %d = %v, want %v", i, h.Body.Tags, tt.want[i].Tags)
				}
			}
		})
	}

	hits := w.Raycast(Vec2{X: 0, Y: 100}, Vec2{X: 400, Y: 100}, nil, nil)
	if first := hits.First(); !approx(first.X, 90) || !approx(first.Distance, 90) {
		t.Errorf("first hit = %+v, want x=90 distance=90", first)
	}
	if w.Raycast(Vec2{X: 0, Y: 0}, Vec2{X: 400, Y: 0}, nil, nil).Count() != 0 {
		t.Error("ray above the bodies should miss")
	}
}

func TestWorldQueryRect(t *testing.T) {
	w := newTestWorld(Vec2{})
	var bodies []*Body
	for i := 0; i < 20; i++ {
		b := NewBody(BodyOptions{
			Type:     BodyStatic,
			Position: &Vec2{X: 20 + float64(i)*40, Y: 300},
			Size:     Size{Width: 20, Height: 20},
		})
		bodies = append(bodies, b)
		w.AddBody(b)
	}
	w.Update(1.0 / 60)

	got := w.QueryRect(Rect{X: 0, Y: 280, Width: 100, Height: 40}, nil)
	if len(got) != 3 {
		t.Fatalf("QueryRect found %d bodies, want 3", len(got))
	}
	for i, b := range got {
		if !b.Bounds.Intersects(Rect{X: 0, Y: 280, Width: 100, Height: 40}) {
			t.Errorf("result %d does not intersect the query", i)
		}
	}

	prefix := []*Body{bodies[19]}
	got = w.QueryRect(Rect{X: 0, Y: 0, Width: 10, Height: 10}, prefix)
	if len(got) != 1 || got[0] != bodies[19] {
		t.Error("QueryRect should append to out")
	}
}

func TestWorldSetPositionAndSize(t *testing.T) {
	w := newTestWorld(Vec2{})
	w.SetPosition(100, 50)
	w.SetSize(400, 300)

	want := Rect{X: 100, Y: 50, Width: 400, Height: 300}
	if w.Bounds() != want || w.Tree().Bounds() != want {
		t.Errorf("bounds = %v, tree = %v, want %v", w.Bounds(), w.Tree().Bounds(), want)
	}
	if w.Position() != (Vec2{X: 100, Y: 50}) || w.Size() != (Size{Width: 400, Height: 300}) {
		t.Errorf("Position/Size = %v / %v", w.Position(), w.Size())
	}

	b := NewBody(BodyOptions{Position: &Vec2{X: 20, Y: 20}, IgnoreGravity: true, Velocity: Vec2{X: 1}})
	w.AddBody(b)
	w.Update(1)
	if b.Position() != (Vec2{X: 20, Y: 20}) {
		t.Error("a body left outside the moved world should not step")
	}
}

func TestWorldStats(t *testing.T) {
	w, _, _ := wallScene()
	w.Update(1)

	s := w.Stats()
	if s.Bodies != 2 || s.Active != 2 || s.Inserted != 2 {
		t.Errorf("counts = %+v", s)
	}
	if s.TreeNodes != 1 {
		t.Errorf("TreeNodes = %d, want 1", s.TreeNodes)
	}
	if s.Separations != 1 || s.Events != 1 {
		t.Errorf("Separations = %d, Events = %d, want 1, 1", s.Separations, s.Events)
	}
	// Two bodies see each other once per iteration.
	if s.Candidates != 2*w.Iterations {
		t.Errorf("Candidates = %d, want %d", s.Candidates, 2*w.Iterations)
	}
	if s.String() == "" {
		t.Error("String should describe the stats")
	}
}
