package collision

// QuadTree is a region quadtree over a fixed rectangle. The World clears and
// refills it every step, so it never carries state across frames.
type QuadTree struct {
	bounds Rect
	root   *quadNode
	pool   nodePool

	// hits is reused by LineHitList when the caller passes no list.
	hits *RayHitList
}

// NewQuadTree creates an empty tree covering the given rectangle.
func NewQuadTree(x, y, width, height float64) *QuadTree {
	t := &QuadTree{
		bounds: Rect{X: x, Y: y, Width: width, Height: height},
		hits:   NewRayHitList(),
	}
	t.root = t.pool.get(1, x, y, width, height)
	return t
}

// Bounds returns the rectangle covered by the tree.
func (t *QuadTree) Bounds() Rect {
	return t.bounds
}

// Insert adds body to the tree.
func (t *QuadTree) Insert(body *Body) {
	t.root.insert(body)
}

// BodyList appends to out the bodies that share a leaf with body and returns
// the extended slice. These are broad-phase candidates: they may not overlap
// body, and a candidate can appear more than once.
func (t *QuadTree) BodyList(body *Body, out []*Body) []*Body {
	return t.root.bodyList(body, out)
}

// LineHitList collects the bodies touched by the segment from origin to
// target, sorted by distance from origin. A nil out uses a list owned by the
// tree that is overwritten by the next call. The list is cleared first.
func (t *QuadTree) LineHitList(origin, target Vec2, out *RayHitList) *RayHitList {
	if out == nil {
		out = t.hits
	}
	out.Clear()
	t.root.lineHitList(origin, target, out)
	return out
}

// TreeBounds appends the bounds of every node to out, children before their
// parent, and returns the extended slice.
func (t *QuadTree) TreeBounds(out []Rect) []Rect {
	return t.root.quadBounds(out)
}

// NodeCount returns the number of nodes currently in the tree.
func (t *QuadTree) NodeCount() int {
	return t.root.count()
}

// Clear removes every body and recycles all nodes below the root.
func (t *QuadTree) Clear() {
	t.root.clear()
	t.root.reset(1, t.bounds.X, t.bounds.Y, t.bounds.Width, t.bounds.Height)
}

// UpdateBounds moves and resizes the tree. The tree is cleared.
func (t *QuadTree) UpdateBounds(x, y, width, height float64) {
	t.bounds = Rect{X: x, Y: y, Width: width, Height: height}
	t.Clear()
}

// UpdatePosition moves the tree, keeping its size. The tree is cleared.
func (t *QuadTree) UpdatePosition(x, y float64) {
	t.bounds.X = x
	t.bounds.Y = y
	t.Clear()
}
