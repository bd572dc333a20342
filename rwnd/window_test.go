package rwnd

import (
	"testing"

	"github.com/go-rudp/rudp/seq32"
)

// TestWindowWalkthrough mirrors the step-by-step capacity-4 scenario from
// the reference implementation's own unit test
func TestWindowWalkthrough(t *testing.T) {
	w := New[int](4)

	w.Insert(seq32.FromU32(2), 2)
	if w.Capacity() != 4 {
		t.Fatalf("got capacity %d, want 4", w.Capacity())
	}

	w.Insert(seq32.FromU32(0), 0)
	if w.Capacity() != 4 {
		t.Fatalf("got capacity %d, want 4", w.Capacity())
	}

	zero, ok := w.PopNext()
	if !ok || zero != 0 {
		t.Fatalf("got %v, %v, want 0, true", zero, ok)
	}
	if w.Capacity() != 3 {
		t.Fatalf("got capacity %d, want 3", w.Capacity())
	}

	one, ok := w.InsertThenPopNext(seq32.FromU32(1), 1)
	if !ok || one != 1 {
		t.Fatalf("got %v, %v, want 1, true", one, ok)
	}
	if w.Capacity() != 2 {
		t.Fatalf("got capacity %d, want 2", w.Capacity())
	}

	if loc := w.Location(seq32.FromU32(2)); loc != AtStart {
		t.Fatalf("got location %v, want AtStart", loc)
	}
	if loc := w.Location(seq32.FromU32(3)); loc != InWindow {
		t.Fatalf("got location %v, want InWindow", loc)
	}

	two, ok := w.PopNext()
	if !ok || two != 2 {
		t.Fatalf("got %v, %v, want 2, true", two, ok)
	}
	if w.Capacity() != 1 {
		t.Fatalf("got capacity %d, want 1", w.Capacity())
	}

	three, ok := w.InsertThenPopNext(seq32.FromU32(3), 3)
	if !ok || three != 3 {
		t.Fatalf("got %v, %v, want 3, true", three, ok)
	}
	if w.Capacity() != 0 {
		t.Fatalf("got capacity %d, want 0", w.Capacity())
	}

	if loc := w.Location(seq32.FromU32(3)); loc != TooLate {
		t.Fatalf("got location %v, want TooLate", loc)
	}
	if loc := w.Location(seq32.FromU32(4)); loc != TooEarly {
		t.Fatalf("got location %v, want TooEarly", loc)
	}
}

func TestWindowIncrementCapacity(t *testing.T) {
	w := New[int](1)
	w.InsertThenPopNext(seq32.FromU32(0), 0)
	if loc := w.Location(seq32.FromU32(1)); loc != TooEarly {
		t.Fatalf("got %v, want TooEarly before releasing the slot", loc)
	}
	w.IncrementCapacity()
	if loc := w.Location(seq32.FromU32(1)); loc != AtStart {
		t.Fatalf("got %v, want AtStart after releasing the slot", loc)
	}
}
