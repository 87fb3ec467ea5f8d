package collision

// Graphics is the drawing surface used by World.Draw.
type Graphics interface {
	// DrawRect draws r. A lineWidth <= 0 fills the rectangle.
	DrawRect(r Rect, c Color, lineWidth float64)
	// DrawLine draws a segment from (x0, y0) to (x1, y1).
	DrawLine(x0, y0, x1, y1 float64, c Color, lineWidth float64)
}

// Debug colors used by World.Draw.
var (
	BoundsColor     = Color{R: 0.4, G: 0.4, B: 0.4, A: 1}
	BodyColor       = Color{R: 0, G: 0.5, B: 0.8, A: 1}
	StaticBodyColor = Color{R: 0, G: 0.8, B: 0, A: 1}
	RayColor        = Color{R: 1, G: 0.5, B: 0, A: 1}
	RayHitColor     = Color{R: 1, G: 1, B: 0, A: 1}
)

const debugLineWidth = 2

// Draw renders the world for debugging: the world bounds and quadtree nodes
// when ShowQuadTree is set, every active body, and the rays recorded since
// the last Draw when DrawRays is set. Recorded rays are cleared.
func (w *World) Draw(g Graphics) {
	if w.ShowQuadTree {
		g.DrawRect(w.bounds, BoundsColor, debugLineWidth)
		w.quadBuf = w.tree.TreeBounds(w.quadBuf[:0])
		for _, r := range w.quadBuf {
			g.DrawRect(r, BoundsColor, debugLineWidth)
		}
	}

	for _, b := range w.bodies {
		if !b.Active {
			continue
		}
		c := BodyColor
		if b.Type == BodyStatic {
			c = StaticBodyColor
		}
		g.DrawRect(b.Bounds, c, 0)
	}

	if w.DrawRays {
		for _, ray := range w.debugRays {
			c := RayColor
			if ray.hit {
				c = RayHitColor
			}
			g.DrawLine(ray.origin.X, ray.origin.Y, ray.target.X, ray.target.Y, c, debugLineWidth)
		}
		w.debugRays = w.debugRays[:0]
	}
}
