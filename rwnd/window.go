// Package rwnd implements the receive window: an ordered map of
// out-of-order pushes keyed by sequence, plus the "ready queue" that holds
// delivered-but-not-yet-emitted bodies, per §3/§4.3
package rwnd

import "github.com/go-rudp/rudp/seq32"

// Location classifies where a sequence number falls relative to the window
type Location int

const (
	// AtStart is the fast path: seq is exactly the next expected sequence
	AtStart Location = iota
	// InWindow means seq belongs in the window but out of order
	InWindow
	// TooLate means seq has already been consumed
	TooLate
	// TooEarly means seq is beyond the window's current capacity
	TooEarly
)

// Window is the receive window: a sparse map of out-of-order entries keyed
// by sequence, a width (capacity), and a cursor (start) naming the next
// sequence expected. capacity shrinks by one every time start advances, and
// is restored only when the consumer calls IncrementCapacity, so the width
// always reflects how many not-yet-released slots remain
type Window[T any] struct {
	entries  map[seq32.Value]T
	capacity uint32
	start    seq32.Value
}

// New returns an empty Window with the given capacity (the rwnd's C_r)
func New[T any](capacity uint32) *Window[T] {
	return &Window[T]{entries: make(map[seq32.Value]T), capacity: capacity}
}

// Capacity returns the current window width
func (w *Window[T]) Capacity() uint32 {
	return w.capacity
}

// Start returns the next sequence expected (the lowest sequence not yet
// received in order)
func (w *Window[T]) Start() seq32.Value {
	return w.start
}

// Location classifies seq relative to the window
func (w *Window[T]) Location(seq seq32.Value) Location {
	switch {
	case !w.start.LessOrEqual(seq):
		return TooLate
	case !seq.Less(w.start.Add(w.capacity)):
		return TooEarly
	case w.start == seq:
		return AtStart
	default:
		return InWindow
	}
}

// IsAcceptable reports whether seq currently falls inside the window
func (w *Window[T]) IsAcceptable(seq seq32.Value) bool {
	switch w.Location(seq) {
	case InWindow, AtStart:
		return true
	default:
		return false
	}
}

// Insert stores v at seq. The caller must have already checked that seq is
// InWindow (not AtStart, not out of range) via Location
func (w *Window[T]) Insert(seq seq32.Value, v T) {
	w.entries[seq] = v
}

// InsertThenPopNext is the AtStart fast path: if seq is exactly the next
// expected sequence, the window advances immediately and v is handed back
// without ever entering the map; otherwise it is stored like Insert
func (w *Window[T]) InsertThenPopNext(seq seq32.Value, v T) (T, bool) {
	if seq == w.start {
		w.advance()
		return v, true
	}
	w.Insert(seq, v)
	var zero T
	return zero, false
}

// PopNext removes and returns the entry at the current start, if present,
// advancing the window
func (w *Window[T]) PopNext() (T, bool) {
	v, ok := w.entries[w.start]
	if !ok {
		var zero T
		return zero, false
	}
	delete(w.entries, w.start)
	w.advance()
	return v, true
}

func (w *Window[T]) advance() {
	w.start = w.start.Increment()
	w.capacity--
}

// IncrementCapacity widens the window by one slot. Callers invoke this each
// time a delivered value leaves the system (e.g. is taken out of the ready
// queue), preserving capacity + (values advanced past but not yet
// released) == C_r; entries stored out of order do not count
func (w *Window[T]) IncrementCapacity() {
	w.capacity++
}
