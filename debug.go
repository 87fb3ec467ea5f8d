package collision

import (
	"fmt"
	"os"
	"time"
)

// StepStats holds per-step counters and, in debug mode, phase timings.
type StepStats struct {
	Bodies      int // registered bodies
	Active      int // active bodies
	Inserted    int // bodies inside the world, inserted into the tree
	TreeNodes   int // quadtree nodes after the step
	Candidates  int // broad-phase candidates over all iterations
	Separations int // resolver calls that moved a body
	Events      int // interaction events emitted

	IntegrateTime time.Duration
	ResolveTime   time.Duration
	EmitTime      time.Duration
}

// Stats returns the statistics of the last Update.
func (w *World) Stats() StepStats {
	return w.stats
}

// SetDebugMode enables contract checks and per-step logging to stderr.
// Invalid bodies (mass <= 0, negative size) and worlds (iterations <= 0)
// panic in debug mode; in release mode they produce undefined results.
func (w *World) SetDebugMode(enabled bool) {
	w.debug = enabled
}

// debugLog prints the last step's stats to stderr.
func (w *World) debugLog() {
	if !w.debug {
		return
	}
	s := w.stats
	total := s.IntegrateTime + s.ResolveTime + s.EmitTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[collision] integrate: %v | resolve: %v | emit: %v | total: %v\n",
		s.IntegrateTime, s.ResolveTime, s.EmitTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[collision] bodies: %d | active: %d | inserted: %d | nodes: %d | candidates: %d | separations: %d | events: %d\n",
		s.Bodies, s.Active, s.Inserted, s.TreeNodes, s.Candidates, s.Separations, s.Events)
}

// debugCheckWorld panics when the world cannot be stepped meaningfully.
func debugCheckWorld(w *World) {
	if w.Iterations <= 0 {
		panic(fmt.Sprintf("collision debug: Update with %d iterations", w.Iterations))
	}
	for _, b := range w.bodies {
		debugCheckBody(b)
	}
}

// debugCheckBody panics with a descriptive message for bodies the resolver
// cannot handle.
func debugCheckBody(b *Body) {
	if b == nil {
		panic("collision debug: nil body")
	}
	if b.Mass <= 0 {
		panic(fmt.Sprintf("collision debug: body %v has mass %v, want > 0", b.Tags, b.Mass))
	}
	if b.Bounds.Width < 0 || b.Bounds.Height < 0 {
		panic(fmt.Sprintf("collision debug: body %v has negative size %vx%v",
			b.Tags, b.Bounds.Width, b.Bounds.Height))
	}
}
