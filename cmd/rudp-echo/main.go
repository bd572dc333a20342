// Command rudp-echo listens on a UDP socket and echoes back, in order and
// without loss, every byte run it receives from each peer -- a minimal
// driver exercising mux.Muxer end to end
package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"time"

	"github.com/go-rudp/rudp/mux"
	"github.com/go-rudp/rudp/rconfig"
	"github.com/go-rudp/rudp/rlog"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("Usage: %s <listen-addr> <config.yml>", os.Args[0])
	}
	listenAddr := os.Args[1]
	configPath := os.Args[2]

	cfg, err := rconfig.Load(configPath)
	if err != nil {
		log.Fatalf("rudp-echo: loading config: %v", err)
	}
	if err := rlog.SetLevel(cfg.LogLevel); err != nil {
		log.Fatalf("rudp-echo: bad log_level %q: %v", cfg.LogLevel, err)
	}

	conn, err := net.ListenPacket("udp", listenAddr)
	if err != nil {
		log.Fatalf("rudp-echo: listen: %v", err)
	}
	defer conn.Close()

	m := mux.NewMuxer(conn, cfg.ToEndpointConfig(), mux.WithAcceptUnsolicited(cfg.AcceptUnsolicited))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		if err := m.FlushLoop(ctx, cfg.FlushInterval); err != nil {
			rlog.Base.WithError(err).Info("rudp-echo: flush loop stopped")
		}
	}()

	go echoLoop(ctx, m)

	rlog.Base.WithField("addr", conn.LocalAddr()).Info("rudp-echo: listening")
	if err := m.ReadLoop(ctx); err != nil {
		rlog.Base.WithError(err).Info("rudp-echo: read loop stopped")
	}
}

// echoLoop drains every session's delivered byte runs and writes them right
// back to the same session, so the flush loop carries them out again. A
// slice that Session.Write rejects is held in pending and retried before
// anything new is read off that session, so no bytes are dropped under
// backpressure
func echoLoop(ctx context.Context, m *mux.Muxer) {
	pending := make(map[*mux.Session][]byte)
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	readBuf := make([]byte, 65536)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		for _, s := range m.Sessions() {
			if out, ok := pending[s]; ok {
				if _, err := s.Write(out); err != nil {
					continue
				}
				delete(pending, s)
			}

			n, err := s.Read(readBuf)
			if err != nil || n == 0 {
				continue
			}
			out := append([]byte(nil), readBuf[:n]...)
			if _, err := s.Write(out); err != nil {
				pending[s] = out
			}
		}
	}
}
