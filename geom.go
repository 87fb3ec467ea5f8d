package collision

import "math"

// Color is a straight-alpha debug drawing color, each channel in [0, 1].
// Renderers premultiply it themselves.
type Color struct {
	R, G, B, A float64
}

// Vec2 is a 2D vector used for positions, velocities, offsets and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Distance returns the euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Rect is a body or node bounds in world units: X, Y is the top-left corner
// and Y grows downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) is within r, borders included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap. Touching borders count as
// an overlap, so a body resting on a floor keeps colliding with it.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width*0.5, Y: r.Y + r.Height*0.5}
}

// IntersectsLine reports whether the segment from origin to target touches
// the rectangle. When it does, the first point of contact along the segment
// is returned; a segment starting inside the rectangle reports origin.
func (r Rect) IntersectsLine(origin, target Vec2) (Vec2, bool) {
	dx := target.X - origin.X
	dy := target.Y - origin.Y

	t0, t1 := 0.0, 1.0
	// Liang-Barsky: clip against each of the four edges.
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{
		origin.X - r.X,
		r.X + r.Width - origin.X,
		origin.Y - r.Y,
		r.Y + r.Height - origin.Y,
	}
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return Vec2{}, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return Vec2{}, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return Vec2{}, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return Vec2{X: origin.X + dx*t0, Y: origin.Y + dy*t0}, true
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
