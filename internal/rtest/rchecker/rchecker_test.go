package rchecker_test

import (
	"testing"

	"github.com/go-rudp/rudp/buf"
	"github.com/go-rudp/rudp/internal/rtest/rchecker"
	"github.com/go-rudp/rudp/seq32"
	"github.com/go-rudp/rudp/wire"
)

func TestCheckersOnAHandBuiltPacket(t *testing.T) {
	push, err := wire.NewPush(seq32.FromU32(3), buf.NewSlice([]byte{9, 8, 7}))
	if err != nil {
		t.Fatalf("NewPush: %v", err)
	}
	pkt := wire.Packet{
		Header: wire.Header{Rwnd: 5, Nack: seq32.FromU32(2)},
		Frags:  []wire.Fragment{push, wire.NewAck(seq32.FromU32(1))},
	}

	rchecker.Packet(t, pkt,
		rchecker.Rwnd(5),
		rchecker.Nack(seq32.FromU32(2)),
		rchecker.FragCount(2),
		rchecker.FragAt(0, rchecker.Push(seq32.FromU32(3), []byte{9, 8, 7})),
		rchecker.FragAt(1, rchecker.Ack(seq32.FromU32(1))),
	)
}
