package buf

import (
	"bytes"
	"testing"
)

func TestSliceData(t *testing.T) {
	s := NewSlice([]byte{1, 2, 3})
	if !bytes.Equal(s.Data(), []byte{1, 2, 3}) {
		t.Fatalf("got %v", s.Data())
	}
	if s.Len() != 3 {
		t.Fatalf("got Len %d, want 3", s.Len())
	}
}

func TestSliceSplit(t *testing.T) {
	s := NewSlice([]byte{1, 2, 3, 4})
	head, tail := s.Split(2)
	if !bytes.Equal(head.Data(), []byte{1, 2}) {
		t.Fatalf("head got %v", head.Data())
	}
	if !bytes.Equal(tail.Data(), []byte{3, 4}) {
		t.Fatalf("tail got %v", tail.Data())
	}
}

func TestSlicePopFront(t *testing.T) {
	s := NewSlice([]byte{1, 2, 3, 4})
	front := s.PopFront(2)
	if !bytes.Equal(front.Data(), []byte{1, 2}) {
		t.Fatalf("front got %v", front.Data())
	}
	if !bytes.Equal(s.Data(), []byte{3, 4}) {
		t.Fatalf("remainder got %v", s.Data())
	}
}

func TestSlicePopFrontBeyondLen(t *testing.T) {
	s := NewSlice([]byte{1, 2})
	front := s.PopFront(10)
	if front.Len() != 2 {
		t.Fatalf("got Len %d, want 2", front.Len())
	}
	if !s.IsEmpty() {
		t.Fatalf("remainder should be empty")
	}
}
