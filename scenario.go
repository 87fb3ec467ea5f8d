package collision

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const defaultScenarioDT = 1.0 / 60

// ScenarioVec is a YAML {x, y} pair.
type ScenarioVec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ScenarioSize is a YAML {width, height} pair.
type ScenarioSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ScenarioWorld describes the world of a scenario.
type ScenarioWorld struct {
	Position   ScenarioVec  `yaml:"position"`
	Size       ScenarioSize `yaml:"size"`
	Iterations int          `yaml:"iterations,omitempty"`
	Gravity    ScenarioVec  `yaml:"gravity"`
}

// ScenarioBody describes one named body. Position is the body center.
type ScenarioBody struct {
	Name          string       `yaml:"name"`
	Type          string       `yaml:"type,omitempty"`
	Sensor        bool         `yaml:"sensor,omitempty"`
	Inactive      bool         `yaml:"inactive,omitempty"`
	Position      ScenarioVec  `yaml:"position"`
	Size          ScenarioSize `yaml:"size"`
	Velocity      ScenarioVec  `yaml:"velocity,omitempty"`
	Acceleration  ScenarioVec  `yaml:"acceleration,omitempty"`
	Drag          ScenarioVec  `yaml:"drag,omitempty"`
	MaxVelocity   ScenarioVec  `yaml:"maxVelocity,omitempty"`
	Bounce        float64      `yaml:"bounce,omitempty"`
	Mass          float64      `yaml:"mass,omitempty"`
	IgnoreGravity bool         `yaml:"ignoreGravity,omitempty"`
	Groups        *uint32      `yaml:"groups,omitempty"`
	Masks         *uint32      `yaml:"masks,omitempty"`
	CanCollide    *uint32      `yaml:"canCollide,omitempty"`
	Tags          []string     `yaml:"tags,omitempty"`
}

// ScenarioStep is a single action in a scenario script.
//
// Actions:
//
//	step       advance the world Frames frames (default 1)
//	velocity   set the velocity of Body to (X, Y)
//	position   move the center of Body to (X, Y)
//	activate   set Body active
//	deactivate set Body inactive
type ScenarioStep struct {
	Action string  `yaml:"action"`
	Body   string  `yaml:"body,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// Scenario is a scripted simulation: a world, named bodies and a sequence of
// actions. YAML and JSON input are both accepted.
type Scenario struct {
	// DT is the step duration in seconds. Zero uses 1/60.
	DT     float64        `yaml:"dt,omitempty"`
	World  ScenarioWorld  `yaml:"world"`
	Bodies []ScenarioBody `yaml:"bodies"`
	Steps  []ScenarioStep `yaml:"steps"`
}

// ErrEmptyScenario is returned by LoadScenario for empty input.
var ErrEmptyScenario = errors.New("empty scenario")

// LoadScenario parses and validates a scenario script.
func LoadScenario(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse scenario: %w", ErrEmptyScenario)
		}
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &s, nil
}

// Validate reports the first problem that would prevent Build.
func (s *Scenario) Validate() error {
	if s.World.Size.Width <= 0 || s.World.Size.Height <= 0 {
		return fmt.Errorf("world size %vx%v must be positive", s.World.Size.Width, s.World.Size.Height)
	}
	if s.World.Iterations < 0 {
		return fmt.Errorf("world iterations %d must not be negative", s.World.Iterations)
	}
	if s.DT < 0 {
		return fmt.Errorf("dt %v must not be negative", s.DT)
	}

	names := make(map[string]bool, len(s.Bodies))
	for i, b := range s.Bodies {
		if b.Name == "" {
			return fmt.Errorf("body %d: missing name", i)
		}
		if names[b.Name] {
			return fmt.Errorf("body %q: duplicate name", b.Name)
		}
		names[b.Name] = true
		if b.Type != "" {
			if _, ok := ParseBodyType(b.Type); !ok {
				return fmt.Errorf("body %q: unknown type %q", b.Name, b.Type)
			}
		}
		if b.Mass < 0 {
			return fmt.Errorf("body %q: mass %v must be positive", b.Name, b.Mass)
		}
		if b.Size.Width < 0 || b.Size.Height < 0 {
			return fmt.Errorf("body %q: negative size", b.Name)
		}
	}

	for i, st := range s.Steps {
		switch st.Action {
		case "step":
			if st.Frames < 0 {
				return fmt.Errorf("step %d: negative frames", i)
			}
		case "velocity", "position", "activate", "deactivate":
			if !names[st.Body] {
				return fmt.Errorf("step %d: %s: unknown body %q", i, st.Action, st.Body)
			}
		default:
			return fmt.Errorf("step %d: unknown action %q", i, st.Action)
		}
	}
	return nil
}

// Build creates the world and bodies of the scenario and returns a runner
// positioned before the first step.
func (s *Scenario) Build() *ScenarioRunner {
	w := NewWorld(WorldOptions{
		Position:   Vec2{X: s.World.Position.X, Y: s.World.Position.Y},
		Size:       Size{Width: s.World.Size.Width, Height: s.World.Size.Height},
		Iterations: s.World.Iterations,
		Gravity:    Vec2{X: s.World.Gravity.X, Y: s.World.Gravity.Y},
	})

	r := &ScenarioRunner{
		World:  w,
		Bodies: make(map[string]*Body, len(s.Bodies)),
		names:  make(map[*Body]string, len(s.Bodies)),
		steps:  s.Steps,
		dt:     s.DT,
	}
	if r.dt == 0 {
		r.dt = defaultScenarioDT
	}

	for _, sb := range s.Bodies {
		typ, _ := ParseBodyType(sb.Type)
		b := NewBody(BodyOptions{
			Inactive:      sb.Inactive,
			Type:          typ,
			IsSensor:      sb.Sensor,
			Position:      &Vec2{X: sb.Position.X, Y: sb.Position.Y},
			Size:          Size{Width: sb.Size.Width, Height: sb.Size.Height},
			Bounce:        sb.Bounce,
			IgnoreGravity: sb.IgnoreGravity,
			Groups:        bitsetOption(sb.Groups),
			Masks:         bitsetOption(sb.Masks),
			CanCollide:    bitsetOption(sb.CanCollide),
			Drag:          Vec2{X: sb.Drag.X, Y: sb.Drag.Y},
			Velocity:      Vec2{X: sb.Velocity.X, Y: sb.Velocity.Y},
			Acceleration:  Vec2{X: sb.Acceleration.X, Y: sb.Acceleration.Y},
			MaxVelocity:   Vec2{X: sb.MaxVelocity.X, Y: sb.MaxVelocity.Y},
			Tags:          sb.Tags,
			Mass:          sb.Mass,
		})
		w.AddBody(b)
		r.Bodies[sb.Name] = b
		r.names[b] = sb.Name
	}
	w.SetEventSink(r)
	return r
}

// bitsetOption converts an optional document mask; nil keeps the default.
func bitsetOption(v *uint32) *Bitset {
	if v == nil {
		return nil
	}
	b := Bitset(*v)
	return &b
}

// ScenarioEvent is an interaction recorded by a ScenarioRunner, with the
// bodies identified by name.
type ScenarioEvent struct {
	Frame int
	Type  InteractionType
	Body1 string
	Body2 string
}

// ScenarioRunner plays a Scenario frame by frame. It records every
// interaction event the world emits.
type ScenarioRunner struct {
	World  *World
	Bodies map[string]*Body
	Events []ScenarioEvent

	names     map[*Body]string
	steps     []ScenarioStep
	cursor    int
	remaining int
	frame     int
	dt        float64
	done      bool
}

// EmitEvent implements EventSink.
func (r *ScenarioRunner) EmitEvent(e InteractionEvent) {
	r.Events = append(r.Events, ScenarioEvent{
		Frame: r.frame,
		Type:  e.Type,
		Body1: r.names[e.Body1],
		Body2: r.names[e.Body2],
	})
}

// Frame returns the number of world updates performed so far.
func (r *ScenarioRunner) Frame() int {
	return r.frame
}

// Done reports whether all steps have been executed.
func (r *ScenarioRunner) Done() bool {
	return r.done
}

// Step executes the actions due before the next frame, then advances the
// world by one frame. It returns false once the scenario is done.
func (r *ScenarioRunner) Step() bool {
	if r.done {
		return false
	}
	for r.remaining == 0 && r.cursor < len(r.steps) {
		r.apply(r.steps[r.cursor])
		r.cursor++
	}
	if r.remaining == 0 {
		r.done = true
		return false
	}

	r.frame++
	r.World.Update(r.dt)
	r.remaining--

	if r.remaining == 0 && r.cursor >= len(r.steps) {
		r.done = true
	}
	return true
}

// Run steps until the scenario is done.
func (r *ScenarioRunner) Run() {
	for r.Step() {
	}
}

// Count returns how many recorded events have type typ.
func (r *ScenarioRunner) Count(typ InteractionType) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func (r *ScenarioRunner) apply(st ScenarioStep) {
	b := r.Bodies[st.Body]
	switch st.Action {
	case "step":
		r.remaining = max(st.Frames, 1)
	case "velocity":
		b.Velocity = Vec2{X: st.X, Y: st.Y}
	case "position":
		b.UpdatePosition(st.X, st.Y)
	case "activate":
		b.Active = true
	case "deactivate":
		b.Active = false
	}
}
