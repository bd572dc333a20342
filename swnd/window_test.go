package swnd

import (
	"testing"

	"github.com/go-rudp/rudp/seq32"
)

func TestWindowPushBackAllocatesAscending(t *testing.T) {
	w := New[string](10)
	a := w.PushBack("a")
	b := w.PushBack("b")
	if a != seq32.FromU32(0) || b != seq32.FromU32(1) {
		t.Fatalf("got %v, %v, want 0, 1", a, b)
	}
	if w.End() != seq32.FromU32(2) {
		t.Fatalf("got End %v, want 2", w.End())
	}
	if w.Size() != 2 {
		t.Fatalf("got Size %d, want 2", w.Size())
	}
}

func TestWindowIsFullByRemoteRwnd(t *testing.T) {
	w := New[string](100)
	w.SetRemoteRwndSize(2)
	w.PushBack("a")
	if w.IsFull() {
		t.Fatalf("one in flight against rwnd 2 must not be full")
	}
	w.PushBack("b")
	if !w.IsFull() {
		t.Fatalf("two in flight against rwnd 2 must be full")
	}
}

func TestWindowIsFullFloorsRwndAtOne(t *testing.T) {
	w := New[string](100)
	w.SetRemoteRwndSize(0)
	if w.IsFull() {
		t.Fatalf("an empty window must not be full even with a zero remote rwnd")
	}
	w.PushBack("a")
	if !w.IsFull() {
		t.Fatalf("a zero remote rwnd floors to 1, so one in-flight entry must be full")
	}
}

func TestWindowIsFullBySizeCap(t *testing.T) {
	w := New[string](1)
	w.SetRemoteRwndSize(100)
	w.PushBack("a")
	if !w.IsFull() {
		t.Fatalf("the hard size cap must apply regardless of remote rwnd")
	}
}

func TestWindowRemove(t *testing.T) {
	w := New[string](10)
	seq := w.PushBack("a")
	w.PushBack("b")
	if _, ok := w.Remove(seq); !ok {
		t.Fatalf("Remove should find the entry")
	}
	if _, ok := w.Get(seq); ok {
		t.Fatalf("removed entry must not be gettable")
	}
	if w.Start() != seq32.FromU32(1) {
		t.Fatalf("got Start %v, want 1 after removing seq 0", w.Start())
	}
}

func TestWindowRemoveBefore(t *testing.T) {
	w := New[string](10)
	w.PushBack("a")
	w.PushBack("b")
	w.PushBack("c")
	w.RemoveBefore(seq32.FromU32(2))
	if w.Start() != seq32.FromU32(2) {
		t.Fatalf("got Start %v, want 2", w.Start())
	}
	if _, ok := w.Get(seq32.FromU32(0)); ok {
		t.Fatalf("seq 0 must be gone")
	}
	if _, ok := w.Get(seq32.FromU32(2)); !ok {
		t.Fatalf("seq 2 must remain")
	}
}

func TestWindowStartOnEmptyIsEnd(t *testing.T) {
	w := New[string](10)
	w.PushBack("a")
	w.Remove(seq32.FromU32(0))
	if w.Start() != w.End() {
		t.Fatalf("an empty window's Start must equal End")
	}
}
