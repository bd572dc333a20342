// Package swnd implements the send window: the ordered map of in-flight
// (sent but unacked) pushes, bounded by the remote's advertised receive
// window and a hard cap, per §3/§4.6
package swnd

import "github.com/go-rudp/rudp/seq32"

// Window is the send window. Entries are always inserted via PushBack with
// a strictly increasing sequence (the allocator is Window itself, via End),
// so the insertion-ordered key slice is equivalent to the sorted order a
// BTreeMap would give
type Window[T any] struct {
	entries        map[seq32.Value]T
	order          []seq32.Value
	remoteRwndSize uint32
	end            seq32.Value
	sizeCap        uint32
}

// New returns an empty Window capped at sizeCap in-flight entries
func New[T any](sizeCap uint32) *Window[T] {
	return &Window[T]{entries: make(map[seq32.Value]T), sizeCap: sizeCap}
}

// SetRemoteRwndSize records the remote's advertised free receive slots
func (w *Window[T]) SetRemoteRwndSize(n uint32) {
	w.remoteRwndSize = n
}

// End returns the next sequence PushBack will allocate
func (w *Window[T]) End() seq32.Value {
	return w.end
}

// Start returns the oldest unacked sequence still in flight, or End if the
// window is empty
func (w *Window[T]) Start() seq32.Value {
	if len(w.order) == 0 {
		return w.end
	}
	return w.order[0]
}

// Size returns the span from the oldest unacked sequence to End. Sequences
// acked out of order inside that span still count toward it
func (w *Window[T]) Size() uint32 {
	return w.End().Sub(w.Start())
}

// IsFull reports whether the window has reached either the remote's
// advertised receive capacity (floored at 1, so a zero-rwnd peer can still
// be probed) or the hard size cap
func (w *Window[T]) IsFull() bool {
	size := w.Size()
	limit := w.remoteRwndSize
	if limit < 1 {
		limit = 1
	}
	return limit <= size || w.sizeCap <= size
}

// Get returns the entry at seq, if still in flight
func (w *Window[T]) Get(seq seq32.Value) (T, bool) {
	v, ok := w.entries[seq]
	return v, ok
}

// PushBack allocates the next sequence, stores v there, and returns the
// allocated sequence
func (w *Window[T]) PushBack(v T) seq32.Value {
	seq := w.end
	w.entries[seq] = v
	w.order = append(w.order, seq)
	w.end = w.end.Increment()
	return seq
}

// Set overwrites the entry at seq in place (used to record a retransmit's
// updated last-sent time without disturbing window order)
func (w *Window[T]) Set(seq seq32.Value, v T) {
	if _, ok := w.entries[seq]; ok {
		w.entries[seq] = v
	}
}

// Remove deletes the entry at seq, if present
func (w *Window[T]) Remove(seq seq32.Value) (T, bool) {
	v, ok := w.entries[seq]
	if !ok {
		return v, false
	}
	delete(w.entries, seq)
	for i, s := range w.order {
		if s == seq {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return v, true
}

// RemoveBefore removes every entry with sequence < nack (cumulative ACK).
// Entries are visited in ascending sequence order and removal stops at the
// first entry that is not below nack, since the order is sorted
func (w *Window[T]) RemoveBefore(nack seq32.Value) {
	i := 0
	for i < len(w.order) && w.order[i].Less(nack) {
		delete(w.entries, w.order[i])
		i++
	}
	w.order = w.order[i:]
}

// Seqs returns the in-flight sequences in ascending order. The returned
// slice must not be mutated by the caller
func (w *Window[T]) Seqs() []seq32.Value {
	return w.order
}
