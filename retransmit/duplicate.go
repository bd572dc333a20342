// Package retransmit implements the duplicate-NACK counter and the
// fast-retransmit window it arms, per §3/§4.6 step 5
package retransmit

import "github.com/go-rudp/rudp/seq32"

// duplicateCounter counts how many times in a row Set has observed the same
// value. The very first comparison is against a zero-valued seed, so a
// remote NACK that happens to start at sequence zero counts as one
// occurrence of "the same value" immediately — a quirk inherited from the
// reference implementation rather than a deliberately chosen rule
type duplicateCounter struct {
	value seq32.Value
	count uint
}

func (d *duplicateCounter) set(v seq32.Value) {
	if v == d.value {
		d.count++
	} else {
		d.count = 0
	}
	d.value = v
}

// Threshold gates activation of a duplicate-triggered behavior: it takes
// effect once the consecutive-duplicate count reaches a configured bound
type Threshold struct {
	dup       duplicateCounter
	activateN uint
}

// NewThreshold returns a Threshold that activates once the same value has
// been Set activateN+1 times in a row, i.e. repeated activateN times (0
// activates on the very first Set)
func NewThreshold(activateN uint) *Threshold {
	return &Threshold{activateN: activateN}
}

// IsActivated reports whether the consecutive-duplicate count has reached
// the activation bound
func (t *Threshold) IsActivated() bool {
	return t.activateN <= t.dup.count
}

// Set records one observation of v
func (t *Threshold) Set(v seq32.Value) {
	t.dup.set(v)
}
