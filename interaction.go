package collision

// InteractionType identifies a kind of interaction event.
type InteractionType uint8

const (
	TriggerStart   InteractionType = iota // a body started overlapping a sensor
	TriggerStay                           // a body keeps overlapping a sensor
	TriggerEnd                            // a body stopped overlapping a sensor
	CollisionStart                        // two solid bodies started colliding
	CollisionStay                         // two solid bodies keep colliding
	CollisionEnd                          // two solid bodies stopped colliding

	interactionTypeCount
)

// String returns the camel-case event name, e.g. "collisionStart".
func (t InteractionType) String() string {
	switch t {
	case TriggerStart:
		return "triggerStart"
	case TriggerStay:
		return "triggerStay"
	case TriggerEnd:
		return "triggerEnd"
	case CollisionStart:
		return "collisionStart"
	case CollisionStay:
		return "collisionStay"
	case CollisionEnd:
		return "collisionEnd"
	default:
		return "unknown"
	}
}

// ParseInteractionType returns the type named by s, as produced by String.
func ParseInteractionType(s string) (InteractionType, bool) {
	for t := InteractionType(0); t < interactionTypeCount; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// interaction is a pending event for a body pair within one step. For
// triggers Body1 is the sensor.
type interaction struct {
	typ   InteractionType
	body1 *Body
	body2 *Body
}

// matches reports whether the interaction has the given type and involves
// the same two bodies in either order.
func (i *interaction) matches(typ InteractionType, b1, b2 *Body) bool {
	return i.typ == typ &&
		(i.body1 == b1 || i.body1 == b2) &&
		(i.body2 == b2 || i.body2 == b1)
}

// interactionQueue is the per-step deduplicated set of pending interactions.
// Entries are pooled; the queue drains in LIFO order.
type interactionQueue struct {
	pending []*interaction
	free    []*interaction
}

// push queues an interaction unless an equal one is already pending.
func (q *interactionQueue) push(typ InteractionType, b1, b2 *Body) {
	if q.has(typ, b1, b2) {
		return
	}
	var it *interaction
	if n := len(q.free); n > 0 {
		it = q.free[n-1]
		q.free[n-1] = nil
		q.free = q.free[:n-1]
	} else {
		it = &interaction{}
	}
	it.typ, it.body1, it.body2 = typ, b1, b2
	q.pending = append(q.pending, it)
}

func (q *interactionQueue) has(typ InteractionType, b1, b2 *Body) bool {
	for _, it := range q.pending {
		if it.matches(typ, b1, b2) {
			return true
		}
	}
	return false
}

// pop removes the most recently queued interaction and returns its values.
// The entry goes straight back to the pool.
func (q *interactionQueue) pop() (InteractionType, *Body, *Body, bool) {
	n := len(q.pending)
	if n == 0 {
		return 0, nil, nil, false
	}
	it := q.pending[n-1]
	q.pending[n-1] = nil
	q.pending = q.pending[:n-1]

	typ, b1, b2 := it.typ, it.body1, it.body2
	it.body1, it.body2 = nil, nil
	q.free = append(q.free, it)
	return typ, b1, b2, true
}

func (q *interactionQueue) len() int {
	return len(q.pending)
}
