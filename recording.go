package collision

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// BodyState is the state of one named body at the end of a frame.
type BodyState struct {
	Name     string  `msgpack:"name"`
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	VX       float64 `msgpack:"vx"`
	VY       float64 `msgpack:"vy"`
	Touching Bitset  `msgpack:"touching"`
	Active   bool    `msgpack:"active"`
}

// FrameSnapshot holds every body of a scenario and the events emitted
// during one frame. Bodies are in registration order.
type FrameSnapshot struct {
	Frame  int             `msgpack:"frame"`
	Bodies []BodyState     `msgpack:"bodies"`
	Events []ScenarioEvent `msgpack:"events"`
}

// Snapshot captures the current frame.
func (r *ScenarioRunner) Snapshot() FrameSnapshot {
	bodies := r.World.Bodies()
	s := FrameSnapshot{
		Frame:  r.frame,
		Bodies: make([]BodyState, 0, len(bodies)),
	}
	for _, b := range bodies {
		p := b.Position()
		s.Bodies = append(s.Bodies, BodyState{
			Name:     r.names[b],
			X:        p.X,
			Y:        p.Y,
			VX:       b.Velocity.X,
			VY:       b.Velocity.Y,
			Touching: b.Touching,
			Active:   b.Active,
		})
	}

	i := len(r.Events)
	for i > 0 && r.Events[i-1].Frame == r.frame {
		i--
	}
	if i < len(r.Events) {
		s.Events = append([]ScenarioEvent(nil), r.Events[i:]...)
	}
	return s
}

// Record runs the scenario to completion and writes one msgpack-encoded
// FrameSnapshot per frame to w.
func (r *ScenarioRunner) Record(w io.Writer) error {
	enc := msgpack.NewEncoder(w)
	for r.Step() {
		if err := enc.Encode(r.Snapshot()); err != nil {
			return fmt.Errorf("record frame %d: %w", r.frame, err)
		}
	}
	return nil
}

// ReadRecording decodes the snapshots written by Record.
func ReadRecording(rd io.Reader) ([]FrameSnapshot, error) {
	dec := msgpack.NewDecoder(rd)
	var frames []FrameSnapshot
	for {
		var s FrameSnapshot
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			return frames, fmt.Errorf("read recording: %w", err)
		}
		frames = append(frames, s)
	}
}
