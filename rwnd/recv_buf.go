package rwnd

import (
	"github.com/go-rudp/rudp/buf"
	"github.com/go-rudp/rudp/seq32"
)

// RecvBuf couples a Window of out-of-order pushes with the ready queue of
// slices that have been delivered in order but not yet emitted to the
// application. It is the Downloader's main piece of state
type RecvBuf struct {
	window *Window[buf.Slice]
	ready  []buf.Slice
}

// NewRecvBuf returns an empty RecvBuf with the given window capacity
func NewRecvBuf(capacity uint32) *RecvBuf {
	return &RecvBuf{window: New[buf.Slice](capacity)}
}

// Insert stores v at seq, draining it (and any now-consecutive entries)
// into the ready queue if it lands at the window start. Returns the
// Location the sequence was classified as, which tells the caller whether
// an ACK is owed
func (r *RecvBuf) Insert(seq seq32.Value, v buf.Slice) Location {
	loc := r.window.Location(seq)
	switch loc {
	case TooLate, TooEarly:
		// dropped; TooLate still owes an ack (the remote needs to learn the
		// duplicate arrived), TooEarly does not
	case AtStart:
		popped, _ := r.window.InsertThenPopNext(seq, v)
		r.ready = append(r.ready, popped)
		for {
			next, ok := r.window.PopNext()
			if !ok {
				break
			}
			r.ready = append(r.ready, next)
		}
	case InWindow:
		r.window.Insert(seq, v)
	}
	return loc
}

// PopFront removes and returns the first ready slice, releasing its window
// slot back to the capacity budget
func (r *RecvBuf) PopFront() (buf.Slice, bool) {
	if len(r.ready) == 0 {
		return buf.Slice{}, false
	}
	v := r.ready[0]
	r.ready = r.ready[1:]
	r.window.IncrementCapacity()
	return v, true
}

// NextSeqToReceive returns the lowest sequence not yet received in order
func (r *RecvBuf) NextSeqToReceive() seq32.Value {
	return r.window.Start()
}

// RwndSize returns the local receive window's current free slot count, as
// reported to the remote peer in the packet header
func (r *RecvBuf) RwndSize() uint32 {
	return r.window.Capacity()
}
