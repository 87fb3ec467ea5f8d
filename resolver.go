package collision

import "math"

// OverlapPadding is the slack, in world units, added to a body's movement
// this step when deciding whether an overlap was caused by that movement.
// Deeper overlaps are ignored unless the body did not move at all.
const OverlapPadding = 4

// BodiesIntersect reports whether the bounds of two bodies overlap. Bodies
// that only share an edge intersect.
func BodiesIntersect(b1, b2 *Body) bool {
	return b1.Bounds.Intersects(b2.Bounds)
}

// Separate pushes two intersecting bodies apart along the axis with the
// smaller penetration and updates their velocities. b1 is expected to be
// dynamic. It reports whether a separation was applied.
func Separate(b1, b2 *Body) bool {
	r1, r2 := b1.Bounds, b2.Bounds
	overlapX := math.Min(r1.X+r1.Width, r2.X+r2.Width) - math.Max(r1.X, r2.X)
	overlapY := math.Min(r1.Y+r1.Height, r2.Y+r2.Height) - math.Max(r1.Y, r2.Y)

	if overlapX > overlapY {
		return separateAxis(b1, b2, axisY)
	}
	return separateAxis(b1, b2, axisX)
}

type axis uint8

const (
	axisX axis = iota
	axisY
)

// axisView exposes one axis of a body so both axes share one resolver.
type axisView struct {
	pos   *float64
	size  float64
	last  float64
	vel   *float64
	minSd Bitset // side facing negative direction on this axis
	maxSd Bitset // side facing positive direction on this axis
}

func viewOf(b *Body, a axis) axisView {
	if a == axisX {
		return axisView{
			pos: &b.Bounds.X, size: b.Bounds.Width, last: b.LastPos.X,
			vel: &b.Velocity.X, minSd: SideLeft, maxSd: SideRight,
		}
	}
	return axisView{
		pos: &b.Bounds.Y, size: b.Bounds.Height, last: b.LastPos.Y,
		vel: &b.Velocity.Y, minSd: SideTop, maxSd: SideBottom,
	}
}

// separateAxis resolves the overlap of b1 and b2 along one axis.
func separateAxis(b1, b2 *Body, a axis) bool {
	v1, v2 := viewOf(b1, a), viewOf(b2, a)
	p1, p2 := *v1.pos, *v2.pos

	overlap := math.Min(p1+v1.size, p2+v2.size) - math.Max(p1, p2)
	ov := -overlap
	if p1 > p2 {
		ov = overlap
	}

	// The bodies passed through each other: the overlap points away from
	// the side their centers are on.
	c1 := p1 + v1.size*0.5
	c2 := p2 + v2.size*0.5
	if (ov < 0 && c1 > c2) || (ov > 0 && c1 < c2) {
		return false
	}

	delta := p1 - v1.last
	if overlap > math.Abs(delta)+OverlapPadding && delta != 0 {
		overlap = 0
	}
	if p1 <= p2 {
		overlap = -overlap
	}
	if overlap == 0 {
		return false
	}

	if overlap > 0 {
		// b1 is pushed toward +axis: contact on its min side.
		if *v1.vel > 0 || !b1.CanCollide.Has(v1.minSd) || !b2.CanCollide.Has(v2.maxSd) {
			return false
		}
		b1.Touching.Add(v1.minSd)
		b2.Touching.Add(v2.maxSd)
	} else {
		if *v1.vel < 0 || !b1.CanCollide.Has(v1.maxSd) || !b2.CanCollide.Has(v2.minSd) {
			return false
		}
		b1.Touching.Add(v1.maxSd)
		b2.Touching.Add(v2.minSd)
	}

	if b2.Type != BodyDynamic {
		*v1.pos += overlap
		*v1.vel = -*v1.vel * b1.Bounce
		return true
	}

	overlap *= 0.5
	*v1.pos += overlap
	*v2.pos -= overlap

	u1, u2 := *v1.vel, *v2.vel
	m1, m2 := b1.Mass, b2.Mass
	momentum := m1*u1 + m2*u2
	*v1.vel = (momentum + b1.Bounce*m2*(u2-u1)) / (m1 + m2)
	*v2.vel = (momentum + b2.Bounce*m1*(u1-u2)) / (m1 + m2)
	return true
}
