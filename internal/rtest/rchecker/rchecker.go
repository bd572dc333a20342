// Package rchecker provides composable test assertions over decoded wire
// packets and fragments: a PacketChecker runs a packet-level assertion,
// optionally delegating to per-fragment FragmentCheckers
package rchecker

import (
	"testing"

	"github.com/go-rudp/rudp/buf"
	"github.com/go-rudp/rudp/seq32"
	"github.com/go-rudp/rudp/wire"
)

// PacketChecker is a function to check a property of a decoded packet
type PacketChecker func(*testing.T, wire.Packet)

// FragmentChecker is a function to check a property of one fragment
type FragmentChecker func(*testing.T, wire.Fragment)

// Packet runs every checker against pkt
func Packet(t *testing.T, pkt wire.Packet, checkers ...PacketChecker) {
	t.Helper()
	for _, c := range checkers {
		c(t, pkt)
	}
}

// Rwnd checks the packet header's advertised receive window
func Rwnd(want uint16) PacketChecker {
	return func(t *testing.T, p wire.Packet) {
		t.Helper()
		if p.Header.Rwnd != want {
			t.Fatalf("bad rwnd: got %v, want %v", p.Header.Rwnd, want)
		}
	}
}

// Nack checks the packet header's cumulative ACK sequence
func Nack(want seq32.Value) PacketChecker {
	return func(t *testing.T, p wire.Packet) {
		t.Helper()
		if p.Header.Nack != want {
			t.Fatalf("bad nack: got %v, want %v", p.Header.Nack, want)
		}
	}
}

// FragCount checks the number of fragments in the packet
func FragCount(want int) PacketChecker {
	return func(t *testing.T, p wire.Packet) {
		t.Helper()
		if len(p.Frags) != want {
			t.Fatalf("bad fragment count: got %v, want %v", len(p.Frags), want)
		}
	}
}

// FragAt runs checkers against the packet's fragment at index i
func FragAt(i int, checkers ...FragmentChecker) PacketChecker {
	return func(t *testing.T, p wire.Packet) {
		t.Helper()
		if i >= len(p.Frags) {
			t.Fatalf("no fragment at index %v (packet has %v)", i, len(p.Frags))
		}
		for _, c := range checkers {
			c(t, p.Frags[i])
		}
	}
}

// Push checks that a fragment is a Push carrying seq and the given body
func Push(seq seq32.Value, body []byte) FragmentChecker {
	return func(t *testing.T, f wire.Fragment) {
		t.Helper()
		if f.Cmd != wire.CommandPush {
			t.Fatalf("bad command: got %v, want Push", f.Cmd)
		}
		if f.Seq != seq {
			t.Fatalf("bad seq: got %v, want %v", f.Seq, seq)
		}
		w := buf.NewWriter(f.Body().Len(), 0)
		if err := f.Body().AppendTo(w); err != nil {
			t.Fatalf("collecting body: %v", err)
		}
		if string(w.Data()) != string(body) {
			t.Fatalf("bad push body: got %v, want %v", w.Data(), body)
		}
	}
}

// Ack checks that a fragment is an Ack naming seq
func Ack(seq seq32.Value) FragmentChecker {
	return func(t *testing.T, f wire.Fragment) {
		t.Helper()
		if f.Cmd != wire.CommandAck {
			t.Fatalf("bad command: got %v, want Ack", f.Cmd)
		}
		if f.Seq != seq {
			t.Fatalf("bad seq: got %v, want %v", f.Seq, seq)
		}
	}
}
