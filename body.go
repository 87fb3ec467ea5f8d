package collision

// BodyType determines how a body behaves in the simulation.
type BodyType uint8

const (
	BodyDynamic   BodyType = iota // moved by forces and separated on contact
	BodyKinematic                 // moved by its velocity only, never separated
	BodyStatic                    // never moves; dynamic bodies collide with it
)

// String returns the lower-case name of the body type.
func (t BodyType) String() string {
	switch t {
	case BodyDynamic:
		return "dynamic"
	case BodyKinematic:
		return "kinematic"
	case BodyStatic:
		return "static"
	default:
		return "unknown"
	}
}

// ParseBodyType returns the type named by s, as produced by String.
func ParseBodyType(s string) (BodyType, bool) {
	for t := BodyDynamic; t <= BodyStatic; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

const (
	defaultBodySize = 10
	defaultBodyMass = 1
)

// BodyOptions configures a new Body. The zero value describes an active,
// dynamic, gravity-affected 10x10 body of mass 1 at the origin that is in
// Group01, collides with Group01 and can collide on every side.
type BodyOptions struct {
	// Inactive excludes the body from the simulation until Active is set.
	Inactive bool
	Type     BodyType
	IsSensor bool
	// Position is the center of the body. Nil leaves the bounds at the origin.
	Position *Vec2
	// Size of the bounds. A zero size uses 10x10.
	Size Size
	// Bounce in [0, 1]: fraction of velocity kept when bouncing off a surface.
	Bounce        float64
	IgnoreGravity bool
	// Groups, Masks and CanCollide use their defaults when nil. Point at
	// SideNone (or 0) to clear them.
	Groups       *Bitset
	Masks        *Bitset
	CanCollide   *Bitset
	Drag         Vec2
	Velocity     Vec2
	Acceleration Vec2
	// MaxVelocity clamps the velocity per axis. Zero means unlimited.
	MaxVelocity Vec2
	// Offset between the host's visual center and the physical center.
	Offset   Vec2
	Tags     []string
	UserData any
	// Mass must be positive. Zero uses 1.
	Mass float64
}

// Body is the physical state of one collidable rectangle. Bodies are owned by
// the host; a World only holds references to the bodies registered with it.
type Body struct {
	Active   bool
	Type     BodyType
	IsSensor bool

	// Bounds is the world-space rectangle of the body.
	Bounds Rect
	// LastPos is the bounds origin at the start of the current step.
	LastPos Vec2

	Bounce     float64
	UseGravity bool

	Groups     Bitset
	Masks      Bitset
	CanCollide Bitset

	Drag         Vec2
	Velocity     Vec2
	Acceleration Vec2
	MaxVelocity  Vec2
	Offset       Vec2

	Tags     []string
	UserData any
	Mass     float64

	// Touching holds the sides in contact during the current step,
	// WasTouching those of the previous step.
	Touching    Bitset
	WasTouching Bitset

	isCollidingWith  []*Body
	wasCollidingWith []*Body
	isTriggeredBy    []*Body
	wasTriggeredBy   []*Body
}

// NewBody creates a body from the given options.
func NewBody(opts BodyOptions) *Body {
	b := &Body{
		Active:       !opts.Inactive,
		Type:         opts.Type,
		IsSensor:     opts.IsSensor,
		Bounce:       opts.Bounce,
		UseGravity:   !opts.IgnoreGravity,
		Groups:       Group01,
		Masks:        Group01,
		CanCollide:   SideAll,
		Drag:         opts.Drag,
		Velocity:     opts.Velocity,
		Acceleration: opts.Acceleration,
		MaxVelocity:  opts.MaxVelocity,
		Offset:       opts.Offset,
		Tags:         opts.Tags,
		UserData:     opts.UserData,
		Mass:         opts.Mass,
		Bounds:       Rect{Width: defaultBodySize, Height: defaultBodySize},
	}
	if opts.Groups != nil {
		b.Groups = *opts.Groups
	}
	if opts.Masks != nil {
		b.Masks = *opts.Masks
	}
	if opts.CanCollide != nil {
		b.CanCollide = *opts.CanCollide
	}
	if b.Mass == 0 {
		b.Mass = defaultBodyMass
	}
	if opts.Size.Width != 0 || opts.Size.Height != 0 {
		b.Bounds.Width = opts.Size.Width
		b.Bounds.Height = opts.Size.Height
	}
	if opts.Position != nil {
		b.UpdatePosition(opts.Position.X, opts.Position.Y)
	}
	b.LastPos = Vec2{X: b.Bounds.X, Y: b.Bounds.Y}
	return b
}

// UpdatePosition places the bounds so that the body's center, adjusted by
// Offset, is at (x, y). Call it whenever the host transform changes.
func (b *Body) UpdatePosition(x, y float64) {
	b.Bounds.X = x - b.Bounds.Width*0.5 + b.Offset.X
	b.Bounds.Y = y - b.Bounds.Height*0.5 + b.Offset.Y
}

// Position returns the center of the body adjusted by Offset. It is the
// inverse of UpdatePosition.
func (b *Body) Position() Vec2 {
	return Vec2{
		X: b.Bounds.X + b.Bounds.Width*0.5 - b.Offset.X,
		Y: b.Bounds.Y + b.Bounds.Height*0.5 - b.Offset.Y,
	}
}

// HasTag reports whether the body carries tag.
func (b *Body) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAllTags reports whether the body carries every tag in tags.
func (b *Body) HasAllTags(tags []string) bool {
	for _, tag := range tags {
		if !b.HasTag(tag) {
			return false
		}
	}
	return true
}

// CollidingWith returns the bodies this body collided with during the last
// step. The slice is owned by the body and reused across steps.
func (b *Body) CollidingWith() []*Body { return b.isCollidingWith }

// WasCollidingWith returns the bodies this body collided with the step before.
func (b *Body) WasCollidingWith() []*Body { return b.wasCollidingWith }

// TriggeredBy returns the bodies overlapping this sensor during the last step.
func (b *Body) TriggeredBy() []*Body { return b.isTriggeredBy }

// WasTriggeredBy returns the bodies overlapping this sensor the step before.
func (b *Body) WasTriggeredBy() []*Body { return b.wasTriggeredBy }

// rollInteractions moves the current interaction lists into the previous
// ones and empties the current ones, reusing both backing arrays.
func (b *Body) rollInteractions() {
	b.wasCollidingWith, b.isCollidingWith = b.isCollidingWith, clearBodies(b.wasCollidingWith)
	b.wasTriggeredBy, b.isTriggeredBy = b.isTriggeredBy, clearBodies(b.wasTriggeredBy)
}

// clearBodies empties s, dropping references so removed bodies can be
// collected.
func clearBodies(s []*Body) []*Body {
	clear(s)
	return s[:0]
}

func containsBody(s []*Body, b *Body) bool {
	for _, other := range s {
		if other == b {
			return true
		}
	}
	return false
}

// appendUnique appends b to s unless it is already present.
func appendUnique(s []*Body, b *Body) []*Body {
	if containsBody(s, b) {
		return s
	}
	return append(s, b)
}
