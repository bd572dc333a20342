// Package seq32 provides 32-bit wrap-around sequence number arithmetic, as
// used for push and ACK sequence numbers throughout the reliability engine
package seq32

// Value is a sequence number that wraps around at 2^32. Ordinary integer
// comparison is wrong for wrapped sequences; use Less/LessOrEqual instead of
// < and <=
type Value uint32

// FromU32 constructs a Value from a raw uint32
func FromU32(n uint32) Value {
	return Value(n)
}

// ToU32 returns the raw uint32 backing v
func (v Value) ToU32() uint32 {
	return uint32(v)
}

// Add returns v + n, wrapping as necessary
func (v Value) Add(n uint32) Value {
	return Value(uint32(v) + n)
}

// Sub returns the wrap-aware distance other -> v, i.e. the number of steps
// needed to reach v starting from other. Callers must only compare sequences
// that are known to be within half the sequence space of one another
func (v Value) Sub(other Value) uint32 {
	return uint32(v) - uint32(other)
}

// Increment returns v + 1
func (v Value) Increment() Value {
	return v.Add(1)
}

// maxHalf is the largest distance at which the nearer-neighbour rule still
// applies; pairs exactly 2^31 apart resolve to "greater-to-the-right" per
// the tie rule below
const maxHalf = 0x7FFFFFFF // (2^32 - 1) / 2

// Less reports whether v sorts before other under wrap-around ordering.
// Equidistant pairs (exactly 2^31 apart) are defined as greater-to-the-right
// so the order stays transitive within any half-window of sequence space
func (v Value) Less(other Value) bool {
	rv, ro := uint32(v), uint32(other)
	if rv == ro {
		return false
	}
	if rv < ro {
		return ro-rv <= maxHalf
	}
	return rv-ro > maxHalf
}

// LessOrEqual reports v <= other under wrap-around ordering
func (v Value) LessOrEqual(other Value) bool {
	return v == other || v.Less(other)
}

// Greater reports whether v sorts after other
func (v Value) Greater(other Value) bool {
	return other.Less(v)
}

// GreaterOrEqual reports v >= other under wrap-around ordering
func (v Value) GreaterOrEqual(other Value) bool {
	return v == other || other.Less(v)
}

// Max returns the greater of a and b under wrap-around ordering
func Max(a, b Value) Value {
	if a.Less(b) {
		return b
	}
	return a
}

// Min returns the lesser of a and b under wrap-around ordering
func Min(a, b Value) Value {
	if a.Less(b) {
		return a
	}
	return b
}
