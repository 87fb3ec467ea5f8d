package collision

const (
	// MaxBodies is the number of bodies a leaf holds before it splits.
	MaxBodies = 6
	// MaxDepth is the deepest level a node can split to. Leaves at this depth
	// accept any number of bodies.
	MaxDepth = 8
)

// Quadrant indexes of a node's children, in construction order.
const (
	quadTopLeft     = 0
	quadTopRight    = 1
	quadBottomLeft  = 2
	quadBottomRight = 3
	quadNone        = -1
)

// quadNode is one cell of the quadtree. A node is a leaf while nodes is
// empty; only leaves hold bodies.
type quadNode struct {
	depth  int
	bounds Rect
	bodies []*Body
	nodes  []*quadNode

	// indexList is scratch space for multi-quadrant routing.
	indexList []int

	pool *nodePool
}

// nodePool keeps cleared nodes for reuse so a tree rebuilt every step does
// not allocate after warmup. Not safe for concurrent use.
type nodePool struct {
	free []*quadNode
}

// get returns a node reset to the given depth and bounds.
func (p *nodePool) get(depth int, x, y, w, h float64) *quadNode {
	if n := len(p.free); n > 0 {
		node := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		node.reset(depth, x, y, w, h)
		return node
	}
	return &quadNode{
		depth:     depth,
		bounds:    Rect{X: x, Y: y, Width: w, Height: h},
		bodies:    make([]*Body, 0, MaxBodies+1),
		nodes:     make([]*quadNode, 0, 4),
		indexList: make([]int, 0, 4),
		pool:      p,
	}
}

// put returns a node to the pool. The node must not be used afterwards.
func (p *nodePool) put(node *quadNode) {
	p.free = append(p.free, node)
}

// reset reinitializes the node in place.
func (n *quadNode) reset(depth int, x, y, w, h float64) {
	n.depth = depth
	n.bounds = Rect{X: x, Y: y, Width: w, Height: h}
	clear(n.bodies)
	n.bodies = n.bodies[:0]
	clear(n.nodes)
	n.nodes = n.nodes[:0]
	n.indexList = n.indexList[:0]
}

// clear empties the node and recycles every descendant. The node itself stays
// with its owner.
func (n *quadNode) clear() {
	clear(n.bodies)
	n.bodies = n.bodies[:0]
	for i, child := range n.nodes {
		child.clear()
		n.pool.put(child)
		n.nodes[i] = nil
	}
	n.nodes = n.nodes[:0]
}

// insert adds body to the subtree. A body that fits a single quadrant goes
// there; a straddling body is inserted into every quadrant it overlaps.
func (n *quadNode) insert(body *Body) {
	if len(n.nodes) > 0 {
		n.route(body)
		return
	}

	n.bodies = append(n.bodies, body)
	if len(n.bodies) <= MaxBodies || n.depth >= MaxDepth {
		return
	}

	n.split()
	for len(n.bodies) > 0 {
		last := len(n.bodies) - 1
		b := n.bodies[last]
		n.bodies[last] = nil
		n.bodies = n.bodies[:last]
		n.route(b)
	}
}

// route forwards body to the children of a branch node.
func (n *quadNode) route(body *Body) {
	index := n.index(body.Bounds)
	if index != quadNone {
		n.nodes[index].insert(body)
		return
	}
	n.indexes(body.Bounds)
	for _, i := range n.indexList {
		n.nodes[i].insert(body)
	}
}

// split creates the four child quadrants.
func (n *quadNode) split() {
	hw := n.bounds.Width / 2
	hh := n.bounds.Height / 2
	x, y := n.bounds.X, n.bounds.Y
	next := n.depth + 1

	n.nodes = append(n.nodes,
		n.pool.get(next, x, y, hw, hh),
		n.pool.get(next, x+hw, y, hw, hh),
		n.pool.get(next, x, y+hh, hw, hh),
		n.pool.get(next, x+hw, y+hh, hw, hh),
	)
}

// index returns the quadrant that fully contains r, or quadNone when r
// straddles a center line.
func (n *quadNode) index(r Rect) int {
	midX := n.bounds.X + n.bounds.Width/2
	midY := n.bounds.Y + n.bounds.Height/2

	top := r.Y+r.Height < midY
	bottom := r.Y > midY
	left := r.X+r.Width < midX
	right := r.X > midX

	switch {
	case left && top:
		return quadTopLeft
	case left && bottom:
		return quadBottomLeft
	case right && top:
		return quadTopRight
	case right && bottom:
		return quadBottomRight
	}
	return quadNone
}

// indexes fills indexList with every child whose bounds intersect r.
func (n *quadNode) indexes(r Rect) {
	n.indexList = n.indexList[:0]
	for i, child := range n.nodes {
		if r.Intersects(child.bounds) {
			n.indexList = append(n.indexList, i)
		}
	}
}

// lineIndexes fills indexList with every child the segment touches.
func (n *quadNode) lineIndexes(origin, target Vec2) {
	n.indexList = n.indexList[:0]
	for i, child := range n.nodes {
		if _, ok := child.bounds.IntersectsLine(origin, target); ok {
			n.indexList = append(n.indexList, i)
		}
	}
}

// bodyList appends to out every other body sharing a leaf with body. Bodies
// that straddle leaves can be appended more than once.
func (n *quadNode) bodyList(body *Body, out []*Body) []*Body {
	if len(n.nodes) == 0 {
		for _, other := range n.bodies {
			if other != body {
				out = append(out, other)
			}
		}
		return out
	}

	index := n.index(body.Bounds)
	if index != quadNone {
		return n.nodes[index].bodyList(body, out)
	}
	n.indexes(body.Bounds)
	for _, i := range n.indexList {
		out = n.nodes[i].bodyList(body, out)
	}
	return out
}

// lineHitList inserts into hits every body in the subtree that the segment
// from origin to target touches.
func (n *quadNode) lineHitList(origin, target Vec2, hits *RayHitList) {
	if len(n.nodes) > 0 {
		n.lineIndexes(origin, target)
		for _, i := range n.indexList {
			n.nodes[i].lineHitList(origin, target, hits)
		}
		return
	}

	for _, body := range n.bodies {
		point, ok := body.Bounds.IntersectsLine(origin, target)
		if !ok || hits.hasBody(body) {
			continue
		}
		hits.Insert(origin, point, body)
	}
}

// quadBounds appends the bounds of every node in the subtree, children
// before their parent.
func (n *quadNode) quadBounds(out []Rect) []Rect {
	for _, child := range n.nodes {
		out = child.quadBounds(out)
	}
	return append(out, n.bounds)
}

// count returns the number of nodes in the subtree.
func (n *quadNode) count() int {
	total := 1
	for _, child := range n.nodes {
		total += child.count()
	}
	return total
}
