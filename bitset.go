package collision

// Bitset is a small bitmask used for collision groups, masks and body sides.
type Bitset uint32

// Has reports whether every bit of mask is set.
func (b Bitset) Has(mask Bitset) bool {
	return b&mask == mask
}

// HasAny reports whether at least one bit of mask is set.
func (b Bitset) HasAny(mask Bitset) bool {
	return b&mask != 0
}

// Add sets the bits of mask.
func (b *Bitset) Add(mask Bitset) {
	*b |= mask
}

// Remove clears the bits of mask.
func (b *Bitset) Remove(mask Bitset) {
	*b &^= mask
}

// Clear clears every bit.
func (b *Bitset) Clear() {
	*b = 0
}

// Sides of a body. Used both for the touching state and for the CanCollide
// filter that decides which sides take part in separation.
const (
	SideNone   Bitset = 0
	SideLeft   Bitset = 1 << 0
	SideRight  Bitset = 1 << 1
	SideTop    Bitset = 1 << 2
	SideBottom Bitset = 1 << 3
	SideAll           = SideLeft | SideRight | SideTop | SideBottom
)

// Collision groups. A body collides with another when its Masks share a bit
// with the other body's Groups, in both directions.
const (
	Group01 Bitset = 1 << iota
	Group02
	Group03
	Group04
	Group05
	Group06
	Group07
	Group08
	Group09
	Group10
	Group11
	Group12
	Group13
	Group14
	Group15
	Group16
)
