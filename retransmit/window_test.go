package retransmit

import (
	"testing"

	"github.com/go-rudp/rudp/seq32"
)

func TestWindowActivatesAfterThreshold(t *testing.T) {
	w := NewWindow(1)
	n := seq32.FromU32(5)

	w.TrySetBoundaries(n, seq32.FromU32(8))
	if w.Contains(seq32.FromU32(5)) {
		t.Fatalf("a single occurrence must not yet arm a threshold-1 window starting away from zero")
	}

	w.TrySetBoundaries(n, seq32.FromU32(8))
	if !w.Contains(seq32.FromU32(5)) {
		t.Fatalf("the second consecutive occurrence of the same nack must arm the window")
	}
	if !w.Contains(seq32.FromU32(7)) {
		t.Fatalf("seq 7 is inside [5,8)")
	}
	if w.Contains(seq32.FromU32(8)) {
		t.Fatalf("the window is half-open; seq 8 must be excluded")
	}
}

func TestWindowRetransmittedAdvancesStart(t *testing.T) {
	w := NewWindow(1)
	n := seq32.FromU32(5)
	w.TrySetBoundaries(n, seq32.FromU32(8))
	w.TrySetBoundaries(n, seq32.FromU32(8))

	w.Retransmitted(seq32.FromU32(5))
	if w.Contains(seq32.FromU32(5)) {
		t.Fatalf("seq 5 must no longer be scheduled after being retransmitted")
	}
	if !w.Contains(seq32.FromU32(6)) {
		t.Fatalf("seq 6 must still be scheduled")
	}
}

func TestWindowResetDuplicateOnNewValue(t *testing.T) {
	w := NewWindow(1)
	w.TrySetBoundaries(seq32.FromU32(5), seq32.FromU32(8))
	w.TrySetBoundaries(seq32.FromU32(6), seq32.FromU32(9))
	if w.Contains(seq32.FromU32(6)) {
		t.Fatalf("a changed nack value must reset the consecutive count, not arm the window")
	}
}
