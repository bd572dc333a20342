package rsleep

import (
	"testing"
	"time"
)

func TestSleeperBlocksUntilAsserted(t *testing.T) {
	var w Waker
	var s Sleeper
	s.AddWaker(&w, 7)

	before := time.Now()
	go func() {
		time.Sleep(50 * time.Millisecond)
		w.Assert()
	}()

	id, ok := s.Fetch(true)
	if !ok || id != 7 {
		t.Fatalf("got (%v, %v), want (7, true)", id, ok)
	}
	if d := time.Since(before); d < 40*time.Millisecond {
		t.Fatalf("Fetch returned too early: %v", d)
	}
}

func TestSleeperNonBlocking(t *testing.T) {
	var w Waker
	var s Sleeper
	s.AddWaker(&w, 0)

	if _, ok := s.Fetch(false); ok {
		t.Fatalf("Fetch succeeded before any assert")
	}
	w.Assert()
	if _, ok := s.Fetch(false); !ok {
		t.Fatalf("Fetch failed after assert")
	}
	if _, ok := s.Fetch(false); ok {
		t.Fatalf("Fetch succeeded after the assert was already consumed")
	}
}

func TestSleeperMultipleWakers(t *testing.T) {
	var s Sleeper
	var w1, w2 Waker
	s.AddWaker(&w1, 0)
	s.AddWaker(&w2, 1)

	w1.Assert()
	w2.Assert()

	seen := map[int]bool{}
	for i := 0; i < 2; i++ {
		id, ok := s.Fetch(false)
		if !ok {
			t.Fatalf("Fetch failed with an asserted waker outstanding")
		}
		seen[id] = true
	}
	if !seen[0] || !seen[1] {
		t.Fatalf("got %v, want both ids", seen)
	}
}

func TestWakerClear(t *testing.T) {
	var w Waker
	w.Assert()
	if !w.IsAsserted() {
		t.Fatalf("want asserted after Assert")
	}
	w.Clear()
	if w.IsAsserted() {
		t.Fatalf("want not asserted after Clear")
	}
}

func TestSleeperDoneDetachesWakers(t *testing.T) {
	var s Sleeper
	w := make([]Waker, 5)
	for i := range w {
		s.AddWaker(&w[i], i)
	}
	w[2].Assert()
	s.Done()

	// Asserting a detached waker must not panic or block forever on a
	// Sleeper that no longer references it
	w[0].Assert()
}
