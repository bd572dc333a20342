// Package mux hosts many rudp sessions on one datagram socket, demultiplexing
// by remote address and handing each new peer a freshly minted session id
// via github.com/rs/xid instead of a free TCP port
package mux

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/go-rudp/rudp"
	"github.com/go-rudp/rudp/buf"
	"github.com/go-rudp/rudp/internal/rutil/tmutex"
	"github.com/go-rudp/rudp/rlog"
	"github.com/go-rudp/rudp/rsleep"
)

// Session pairs an Uploader/Downloader for one remote peer with the address
// packets for it must be sent to
type Session struct {
	ID     string
	Addr   net.Addr
	Up     *rudp.Uploader
	Down   *rudp.Downloader
	flush  *tmutex.Mutex
	logger rlog.Logger
	mux    *Muxer
}

// Write enqueues p on the session's Uploader and wakes the owning Muxer's
// flush loop, so the bytes go out on the next tick rather than waiting a
// full FlushLoop period. p is copied; the caller may reuse it once Write
// returns
func (s *Session) Write(p []byte) (int, error) {
	body := buf.NewSlice(append([]byte(nil), p...))
	if rejected, err := s.Up.Write(body); err != nil {
		_ = rejected
		return 0, err
	}
	s.mux.writeWaker.Assert()
	return len(p), nil
}

// Read copies the next delivered byte run into p, clamped to len(p); any
// remainder is retained and returned by the next Read. Read returns (0, nil)
// rather than blocking when nothing is ready yet
func (s *Session) Read(p []byte) (int, error) {
	out, ok := s.Down.EmitMax(len(p))
	if !ok {
		return 0, nil
	}
	return copy(p, out.Data()), nil
}

// Stat returns the combined uploader/downloader counters for the session.
// Downloader-only counters (decoding errors, early/late/out-of-order pushes)
// only ever appear in the Downloader's half, so the two are merged
func (s *Session) Stat() rudp.Stat {
	u := s.Up.Stat()
	d := s.Down.Stat()
	u.DecodingErrors += d.DecodingErrors
	u.EarlyPushes += d.EarlyPushes
	u.LatePushes += d.LatePushes
	u.OutOfOrderPushes += d.OutOfOrderPushes
	u.Acks += d.Acks
	u.Pushes += d.Pushes
	return u
}

// wake identifies which of a Muxer's rsleep.Wakers fired
const (
	wakeTick = iota
	wakeWrite
	wakeDone
)

// Muxer demultiplexes inbound datagrams on one net.PacketConn to the
// Session for each sender's address, and periodically flushes every open
// Session's outbound queue back onto the socket
type Muxer struct {
	conn net.PacketConn
	cfg  rudp.Config

	// acceptUnsolicited, when true, lets ReadLoop open a new Session for a
	// datagram from an address that has never been seen before; otherwise
	// such datagrams are dropped, matching a server that only replies to
	// addresses a prior Open() dialed
	acceptUnsolicited bool

	mu       sync.RWMutex
	sessions map[string]*Session

	sleeper    *rsleep.Sleeper
	tickWaker  *rsleep.Waker
	writeWaker *rsleep.Waker
	doneWaker  *rsleep.Waker
}

// MuxerOption configures a Muxer built by NewMuxer
type MuxerOption func(*Muxer)

// WithAcceptUnsolicited overrides whether ReadLoop may open a Session for a
// previously unseen remote address. The default is true
func WithAcceptUnsolicited(accept bool) MuxerOption {
	return func(m *Muxer) { m.acceptUnsolicited = accept }
}

// NewMuxer returns a Muxer reading and writing on conn, building every
// Session's Uploader/Downloader pair from cfg
func NewMuxer(conn net.PacketConn, cfg rudp.Config, opts ...MuxerOption) *Muxer {
	m := &Muxer{
		conn:              conn,
		cfg:               cfg,
		acceptUnsolicited: true,
		sessions:          make(map[string]*Session),
		sleeper:           &rsleep.Sleeper{},
		tickWaker:         &rsleep.Waker{},
		writeWaker:        &rsleep.Waker{},
		doneWaker:         &rsleep.Waker{},
	}
	m.sleeper.AddWaker(m.tickWaker, wakeTick)
	m.sleeper.AddWaker(m.writeWaker, wakeWrite)
	m.sleeper.AddWaker(m.doneWaker, wakeDone)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Stats returns a snapshot of every open session's combined counters, keyed
// by session id, suitable for rstat.NewCollector
func (m *Muxer) Stats() map[string]rudp.Stat {
	out := make(map[string]rudp.Stat)
	for _, s := range m.Sessions() {
		out[s.ID] = s.Stat()
	}
	return out
}

// Open returns the Session for addr, creating one (with a freshly minted
// session id) if none exists yet
func (m *Muxer) Open(addr net.Addr) (*Session, error) {
	key := addr.String()

	m.mu.RLock()
	s, ok := m.sessions[key]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[key]; ok {
		return s, nil
	}

	s, err := m.newSessionLocked(addr)
	if err != nil {
		return nil, err
	}
	m.sessions[key] = s
	return s, nil
}

func (m *Muxer) newSessionLocked(addr net.Addr) (*Session, error) {
	up, down, err := rudp.NewEndpoint(m.cfg)
	if err != nil {
		return nil, fmt.Errorf("mux: new session for %v: %w", addr, err)
	}
	id := xid.New().String()
	return &Session{
		ID:     id,
		Addr:   addr,
		Up:     up,
		Down:   down,
		flush:  tmutex.New(),
		logger: rlog.ForSession(id),
		mux:    m,
	}, nil
}

// Session returns the existing Session for addr, if any
func (m *Muxer) Session(addr net.Addr) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[addr.String()]
	return s, ok
}

// Sessions returns a snapshot of every open session
func (m *Muxer) Sessions() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// ReadLoop reads datagrams off the socket until ctx is cancelled or the
// socket returns an error, feeding each one to the sending address's
// Session. A decoding failure is logged and dropped, and a datagram from an
// unsolicited address (when acceptUnsolicited is false) is dropped silently;
// neither closes the loop
func (m *Muxer) ReadLoop(ctx context.Context) error {
	b := make([]byte, m.cfg.MTU)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, addr, err := m.conn.ReadFrom(b)
		if err != nil {
			return err
		}

		s, ok := m.Session(addr)
		if !ok {
			if !m.acceptUnsolicited {
				continue
			}
			s, err = m.Open(addr)
			if err != nil {
				rlog.Base.WithError(err).Warn("mux: failed to open session for unsolicited peer")
				continue
			}
		}

		body := make([]byte, n)
		copy(body, b[:n])
		delta, err := s.Down.Write(buf.NewSlice(body))
		if err != nil {
			s.logger.WithError(err).Debug("mux: dropping undecodable datagram")
			continue
		}
		if err := s.Up.SetState(delta, time.Now()); err != nil {
			s.logger.WithError(err).Warn("mux: rejecting invalid uploader state")
		}
	}
}

// FlushLoop calls Emit on every open Session, writing the resulting packets
// back to the socket, until ctx is cancelled. Rather than sleeping a fixed
// period unconditionally, it blocks on an rsleep.Sleeper gated by three
// rsleep.Wakers: one asserted every period by an internal ticker goroutine,
// one asserted by Session.Write -- so a write right after a flush goes out
// immediately instead of waiting a full period -- and one asserted when ctx
// is cancelled
func (m *Muxer) FlushLoop(ctx context.Context, period time.Duration) error {
	timer := time.NewTimer(period)
	defer timer.Stop()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-ctx.Done():
				m.doneWaker.Assert()
				return
			case <-timer.C:
				m.tickWaker.Assert()
				timer.Reset(period)
			case <-done:
				return
			}
		}
	}()

	for {
		id, ok := m.sleeper.Fetch(true)
		if !ok {
			continue
		}
		if id == wakeDone {
			return ctx.Err()
		}
		m.flushAll(time.Now())
	}
}

func (m *Muxer) flushAll(now time.Time) {
	for _, s := range m.Sessions() {
		if !s.flush.TryLock() {
			// a previous flush for this session is still writing; skip this
			// tick rather than pile up concurrent writers on one Uploader
			continue
		}
		m.flushOne(s, now)
		s.flush.Unlock()
	}
}

func (m *Muxer) flushOne(s *Session, now time.Time) {
	for _, pkt := range s.Up.Emit(now) {
		w := buf.NewWriter(m.cfg.MTU, 0)
		if err := pkt.AppendTo(w); err != nil {
			s.logger.WithError(err).Warn("mux: failed to encode outbound packet")
			continue
		}
		if _, err := m.conn.WriteTo(w.Data(), s.Addr); err != nil {
			s.logger.WithError(err).Warn("mux: failed to write outbound datagram")
			return
		}
	}
}
