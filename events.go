package collision

// InteractionEvent is one emitted interaction between two bodies. For
// trigger events Body1 is the sensor and Body2 the body overlapping it.
type InteractionEvent struct {
	Type  InteractionType
	Body1 *Body
	Body2 *Body
}

// EventSink receives every interaction event a World emits, after the step
// has finished resolving. Used to bridge events into an ECS or a recorder.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// InteractionFunc handles an interaction between two bodies.
type InteractionFunc func(body1, body2 *Body)

type interactionHandler struct {
	id uint32
	fn InteractionFunc
}

// handlerRegistry holds the callbacks per interaction type. Handlers may
// remove callbacks, or clear the registry, while an event is being
// emitted: removed entries are tombstoned and compacted once emission ends.
type handlerRegistry struct {
	handlers [interactionTypeCount][]interactionHandler
	nextID   uint32
	emitting int
	dirty    bool
}

// CallbackHandle allows removing a registered interaction callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event InteractionType
}

// Remove unregisters this callback so it no longer fires. It is safe to call
// from inside any callback, including the one being removed.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= interactionTypeCount {
		return
	}
	h.reg.remove(h.event, h.id)
}

func (r *handlerRegistry) remove(event InteractionType, id uint32) {
	s := r.handlers[event]
	for i := range s {
		if s[i].id != id {
			continue
		}
		if r.emitting > 0 {
			s[i].fn = nil
			r.dirty = true
			return
		}
		copy(s[i:], s[i+1:])
		s[len(s)-1] = interactionHandler{}
		r.handlers[event] = s[:len(s)-1]
		return
	}
}

func (r *handlerRegistry) add(event InteractionType, fn InteractionFunc) CallbackHandle {
	if event >= interactionTypeCount || fn == nil {
		return CallbackHandle{}
	}
	r.nextID++
	id := r.nextID
	r.handlers[event] = append(r.handlers[event], interactionHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: event}
}

// emit calls the handlers registered for the event type. Handlers added
// during emission first fire on the next event.
func (r *handlerRegistry) emit(e InteractionEvent) {
	r.emitting++
	defer r.endEmit()

	n := len(r.handlers[e.Type])
	for i := 0; i < n; i++ {
		// Indexed each time: add may reallocate the slice, and entries
		// never move while emitting.
		if fn := r.handlers[e.Type][i].fn; fn != nil {
			fn(e.Body1, e.Body2)
		}
	}
}

func (r *handlerRegistry) endEmit() {
	r.emitting--
	if r.emitting > 0 || !r.dirty {
		return
	}
	r.dirty = false
	for t := range r.handlers {
		s := r.handlers[t]
		kept := s[:0]
		for _, h := range s {
			if h.fn != nil {
				kept = append(kept, h)
			}
		}
		clear(s[len(kept):])
		r.handlers[t] = kept
	}
}

func (r *handlerRegistry) clear() {
	for i := range r.handlers {
		if r.emitting > 0 {
			for j := range r.handlers[i] {
				r.handlers[i][j].fn = nil
			}
			r.dirty = true
			continue
		}
		clear(r.handlers[i])
		r.handlers[i] = r.handlers[i][:0]
	}
}

// --- World-level event registration ---

// On registers a callback for the given interaction type. Callbacks run
// synchronously at the end of Update and must not call Update.
func (w *World) On(event InteractionType, fn InteractionFunc) CallbackHandle {
	return w.handlers.add(event, fn)
}

// Off unregisters a callback. Equivalent to handle.Remove().
func (w *World) Off(handle CallbackHandle) {
	handle.Remove()
}

// OnTriggerStart registers a callback fired when a body starts overlapping
// a sensor. body1 is the sensor.
func (w *World) OnTriggerStart(fn InteractionFunc) CallbackHandle {
	return w.handlers.add(TriggerStart, fn)
}

// OnTriggerStay registers a callback fired every step a body keeps
// overlapping a sensor. body1 is the sensor.
func (w *World) OnTriggerStay(fn InteractionFunc) CallbackHandle {
	return w.handlers.add(TriggerStay, fn)
}

// OnTriggerEnd registers a callback fired on the first step a body no longer
// overlaps a sensor. body1 is the sensor.
func (w *World) OnTriggerEnd(fn InteractionFunc) CallbackHandle {
	return w.handlers.add(TriggerEnd, fn)
}

// OnCollisionStart registers a callback fired when two bodies start colliding.
func (w *World) OnCollisionStart(fn InteractionFunc) CallbackHandle {
	return w.handlers.add(CollisionStart, fn)
}

// OnCollisionStay registers a callback fired every step two bodies keep
// colliding.
func (w *World) OnCollisionStay(fn InteractionFunc) CallbackHandle {
	return w.handlers.add(CollisionStay, fn)
}

// OnCollisionEnd registers a callback fired on the first step two bodies no
// longer collide.
func (w *World) OnCollisionEnd(fn InteractionFunc) CallbackHandle {
	return w.handlers.add(CollisionEnd, fn)
}

// SetEventSink sets an optional receiver for every emitted event. Pass nil
// to remove it.
func (w *World) SetEventSink(sink EventSink) {
	w.sink = sink
}
