package mux

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/go-rudp/rudp"
	"github.com/go-rudp/rudp/buf"
)

func testCfg() rudp.Config {
	return rudp.Config{
		LocalRecvBufLen:        8,
		NackDuplicateThreshold: 2,
		RatioRTOToRTT:          1.5,
		ToSendQueueLenCap:      8,
		SwndSizeCap:            32,
		MTU:                    256,
	}
}

func listenLoopback(t *testing.T) net.PacketConn {
	t.Helper()
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestOpenReusesSessionForSameAddress(t *testing.T) {
	connA := listenLoopback(t)
	m := NewMuxer(connA, testCfg())

	addr := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 9999}
	s1, err := m.Open(addr)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s2, err := m.Open(addr)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s1 != s2 {
		t.Fatalf("Open must return the same *Session for the same address")
	}
	if len(m.Sessions()) != 1 {
		t.Fatalf("got %d sessions, want 1", len(m.Sessions()))
	}
}

func TestEndToEndOverLoopbackUDP(t *testing.T) {
	connA := listenLoopback(t)
	connB := listenLoopback(t)

	mA := NewMuxer(connA, testCfg())
	mB := NewMuxer(connB, testCfg())

	sA, err := mA.Open(connB.LocalAddr())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := sA.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	now := time.Now()
	mA.flushOne(sA, now)

	raw := make([]byte, 256)
	connB.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, addr, err := connB.ReadFrom(raw)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}

	sB, err := mB.Open(addr)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	delta, err := sB.Down.Write(buf.NewSlice(append([]byte(nil), raw[:n]...)))
	if err != nil {
		t.Fatalf("Downloader.Write: %v", err)
	}
	if err := sB.Up.SetState(delta, now); err != nil {
		t.Fatalf("SetState: %v", err)
	}

	got := make([]byte, 256)
	gn, err := sB.Read(got)
	if err != nil || string(got[:gn]) != "hello" {
		t.Fatalf("got (%q, %v), want (\"hello\", nil)", string(got[:gn]), err)
	}

	if stat := sA.Stat(); stat.Pushes == 0 {
		t.Fatalf("expected session stat to reflect the push")
	}
	if stats := mA.Stats(); stats[sA.ID].Pushes == 0 {
		t.Fatalf("expected Muxer.Stats to reflect the push for session %s", sA.ID)
	}
}

// TestFlushLoopWakesOnWrite checks that Session.Write wakes a blocked
// FlushLoop immediately rather than waiting out its period, by setting the
// period far longer than the test's deadline
func TestFlushLoopWakesOnWrite(t *testing.T) {
	connA := listenLoopback(t)
	connB := listenLoopback(t)

	mA := NewMuxer(connA, testCfg())

	sA, err := mA.Open(connB.LocalAddr())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mA.FlushLoop(ctx, time.Hour)

	if _, err := sA.Write([]byte("hi")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	connB.SetReadDeadline(time.Now().Add(2 * time.Second))
	raw := make([]byte, 256)
	if _, _, err := connB.ReadFrom(raw); err != nil {
		t.Fatalf("ReadFrom: %v (FlushLoop never woke on Write)", err)
	}
}
