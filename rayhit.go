package collision

// RayHit is one intersection found by a raycast.
type RayHit struct {
	X, Y     float64
	Distance float64
	Body     *Body
}

// RayHitList is a collection of ray hits kept sorted by ascending distance.
// Hits are pooled by the list: a *RayHit obtained from the list is valid
// until the list is cleared.
type RayHitList struct {
	hits []*RayHit
	pool []*RayHit
}

// NewRayHitList creates an empty hit list.
func NewRayHitList() *RayHitList {
	return &RayHitList{}
}

func (l *RayHitList) get() *RayHit {
	if n := len(l.pool); n > 0 {
		h := l.pool[n-1]
		l.pool[n-1] = nil
		l.pool = l.pool[:n-1]
		return h
	}
	return &RayHit{}
}

func (l *RayHitList) put(h *RayHit) {
	h.Body = nil
	l.pool = append(l.pool, h)
}

// Insert records a hit at point on body for a ray starting at origin. The
// list stays ordered by distance; hits with equal distance keep insertion
// order.
func (l *RayHitList) Insert(origin, point Vec2, body *Body) {
	h := l.get()
	h.X = point.X
	h.Y = point.Y
	h.Distance = origin.Distance(point)
	h.Body = body

	i := len(l.hits)
	for i > 0 && l.hits[i-1].Distance > h.Distance {
		i--
	}
	l.hits = append(l.hits, nil)
	copy(l.hits[i+1:], l.hits[i:])
	l.hits[i] = h
}

// Hits returns the hits in ascending distance order. The slice is owned by
// the list.
func (l *RayHitList) Hits() []*RayHit {
	return l.hits
}

// FilterTags appends to out every hit whose body carries all tags and
// returns the extended slice. The list itself is not modified.
func (l *RayHitList) FilterTags(tags []string, out []*RayHit) []*RayHit {
	for _, h := range l.hits {
		if h.Body != nil && h.Body.HasAllTags(tags) {
			out = append(out, h)
		}
	}
	return out
}

// keepTags removes every hit whose body does not carry all tags.
func (l *RayHitList) keepTags(tags []string) {
	n := 0
	for _, h := range l.hits {
		if h.Body != nil && h.Body.HasAllTags(tags) {
			l.hits[n] = h
			n++
			continue
		}
		l.put(h)
	}
	clear(l.hits[n:])
	l.hits = l.hits[:n]
}

// First returns the closest hit, or nil when the list is empty.
func (l *RayHitList) First() *RayHit {
	if len(l.hits) == 0 {
		return nil
	}
	return l.hits[0]
}

// Last returns the farthest hit, or nil when the list is empty.
func (l *RayHitList) Last() *RayHit {
	if len(l.hits) == 0 {
		return nil
	}
	return l.hits[len(l.hits)-1]
}

// Count returns the number of hits.
func (l *RayHitList) Count() int {
	return len(l.hits)
}

// Remove drops hit from the list and returns it to the pool.
func (l *RayHitList) Remove(hit *RayHit) {
	for i, h := range l.hits {
		if h == hit {
			copy(l.hits[i:], l.hits[i+1:])
			l.hits[len(l.hits)-1] = nil
			l.hits = l.hits[:len(l.hits)-1]
			l.put(h)
			return
		}
	}
}

// Clear empties the list, returning every hit to the pool.
func (l *RayHitList) Clear() {
	for i, h := range l.hits {
		l.put(h)
		l.hits[i] = nil
	}
	l.hits = l.hits[:0]
}

// hasBody reports whether body already has a hit in the list.
func (l *RayHitList) hasBody(body *Body) bool {
	for _, h := range l.hits {
		if h.Body == body {
			return true
		}
	}
	return false
}
