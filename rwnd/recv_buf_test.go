package rwnd

import (
	"bytes"
	"testing"

	"github.com/go-rudp/rudp/buf"
	"github.com/go-rudp/rudp/seq32"
)

func slice(b byte) buf.Slice {
	return buf.NewSlice([]byte{b})
}

// TestRecvBufOutOfOrder mirrors spec scenario 4: with C_r = 3, receiving
// seq 1 then seq 0 then seq 2 must deliver bodies in order 0, 1, 2, with
// nothing ready between the seq-1 and seq-0 arrivals
func TestRecvBufOutOfOrder(t *testing.T) {
	r := NewRecvBuf(3)

	if loc := r.Insert(seq32.FromU32(1), slice(1)); loc != InWindow {
		t.Fatalf("got location %v for seq 1, want InWindow", loc)
	}
	if _, ok := r.PopFront(); ok {
		t.Fatalf("nothing should be ready before seq 0 arrives")
	}

	if loc := r.Insert(seq32.FromU32(0), slice(0)); loc != AtStart {
		t.Fatalf("got location %v for seq 0, want AtStart", loc)
	}

	v, ok := r.PopFront()
	if !ok || !bytes.Equal(v.Data(), []byte{0}) {
		t.Fatalf("got %v, %v, want body 0", v, ok)
	}
	v, ok = r.PopFront()
	if !ok || !bytes.Equal(v.Data(), []byte{1}) {
		t.Fatalf("got %v, %v, want body 1", v, ok)
	}
	if _, ok := r.PopFront(); ok {
		t.Fatalf("ready queue should be empty until seq 2 arrives")
	}

	if loc := r.Insert(seq32.FromU32(2), slice(2)); loc != AtStart {
		t.Fatalf("got location %v for seq 2, want AtStart", loc)
	}
	v, ok = r.PopFront()
	if !ok || !bytes.Equal(v.Data(), []byte{2}) {
		t.Fatalf("got %v, %v, want body 2", v, ok)
	}
}

func TestRecvBufDuplicateIsIdempotent(t *testing.T) {
	r := NewRecvBuf(3)
	r.Insert(seq32.FromU32(0), slice(0))
	r.PopFront()

	if loc := r.Insert(seq32.FromU32(0), slice(0)); loc != TooLate {
		t.Fatalf("got location %v for a replayed seq 0, want TooLate", loc)
	}
	if r.NextSeqToReceive() != seq32.FromU32(1) {
		t.Fatalf("a replayed packet must not regress next_seq_to_receive")
	}
}

func TestRecvBufTooEarlyIsDropped(t *testing.T) {
	r := NewRecvBuf(1)
	if loc := r.Insert(seq32.FromU32(5), slice(5)); loc != TooEarly {
		t.Fatalf("got location %v, want TooEarly", loc)
	}
	if _, ok := r.PopFront(); ok {
		t.Fatalf("a too-early push must never reach the ready queue")
	}
}
