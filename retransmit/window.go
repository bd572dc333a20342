package retransmit

import "github.com/go-rudp/rudp/seq32"

// Window is the fast-retransmit window: a half-open [start, end) range of
// sequences scheduled for immediate resend, armed once the duplicate
// threshold activates
type Window struct {
	start, end seq32.Value
	threshold  *Threshold
}

// NewWindow returns an empty Window that arms once nackDuplicateThreshold+1
// consecutive deltas report the same remote NACK
func NewWindow(nackDuplicateThreshold uint) *Window {
	return &Window{threshold: NewThreshold(nackDuplicateThreshold)}
}

// Contains reports whether seq falls inside the window and the window is
// currently armed
func (w *Window) Contains(seq seq32.Value) bool {
	return w.threshold.IsActivated() && w.start.LessOrEqual(seq) && seq.Less(w.end)
}

// Retransmitted records that seq has just been resent, shrinking the
// window's start past it
func (w *Window) Retransmitted(seq seq32.Value) {
	w.start = seq.Increment()
}

// TrySetBoundaries offers the range [remote_nack, max_acked) as a candidate
// fast-retransmit window. It always feeds remote_nack into the duplicate
// counter; the boundaries only take effect once the counter activates
func (w *Window) TrySetBoundaries(start, end seq32.Value) {
	w.threshold.Set(start)
	if w.threshold.IsActivated() {
		w.start = start
		w.end = end
	}
}

// IsEmpty reports whether the window currently names no sequences
func (w *Window) IsEmpty() bool {
	return !w.start.Less(w.end)
}
