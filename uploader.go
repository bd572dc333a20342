package rudp

import (
	"time"
	"weak"

	"github.com/go-rudp/rudp/buf"
	"github.com/go-rudp/rudp/bundler"
	"github.com/go-rudp/rudp/retransmit"
	"github.com/go-rudp/rudp/rnotify"
	"github.com/go-rudp/rudp/seq32"
	"github.com/go-rudp/rudp/swnd"
	"github.com/go-rudp/rudp/types"
	"github.com/go-rudp/rudp/wire"
)

// Alpha is the EWMA weight applied to each new RTT sample
const Alpha = 1.0 / 8

// RTO bounds, per §3
const (
	MinRTO     = 100 * time.Millisecond
	MaxRTO     = 60 * time.Second
	DefaultRTO = 3 * time.Second
)

// sendingPush is one swnd entry: the shared body a retransmit must reuse
// verbatim, when it was last sent, and whether it has ever been resent
type sendingPush struct {
	body            wire.Body
	lastSentAt      time.Time
	isRetransmitted bool
}

// Uploader accepts application byte runs, packs them into fragments,
// maintains the send window, and schedules retransmissions by RTO and by
// fast-retransmit evidence. It is single-threaded and non-blocking: every
// method is synchronous and takes `now` explicitly wherever time matters
type Uploader struct {
	cfg Config

	toSend *buf.SliceQueue
	swnd   *swnd.Window[sendingPush]
	toAck  []seq32.Value
	heap   sendHeap

	localRwndSize         uint32
	localNextSeqToReceive seq32.Value
	fastRetransmitWnd     *retransmit.Window

	srtt       time.Duration
	srttInited bool

	onSendAvailable weak.Pointer[rnotify.Notifier]

	// disableRTO skips RTO-driven retransmission when true. No constructor
	// or method sets it, so it is false unless assigned directly
	disableRTO bool

	stat Stat
}

// NewUploader builds an Uploader from cfg. Call alongside NewDownloader
// (both share the same cfg) to get a matched endpoint pair; see
// NewEndpoint for the common case of wanting both at once
func NewUploader(cfg Config) (*Uploader, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Uploader{
		cfg:               cfg,
		toSend:            buf.NewSliceQueue(cfg.ToSendQueueLenCap),
		swnd:              swnd.New[sendingPush](cfg.SwndSizeCap),
		fastRetransmitWnd: retransmit.NewWindow(cfg.NackDuplicateThreshold),
	}, nil
}

// Mtu returns the configured MTU
func (u *Uploader) Mtu() int {
	return u.cfg.MTU
}

// Rto returns the current retransmission timeout
func (u *Uploader) Rto() time.Duration {
	if !u.srttInited {
		return DefaultRTO
	}
	r := time.Duration(float64(u.srtt) * u.cfg.ratio())
	if r < MinRTO {
		return MinRTO
	}
	if r > MaxRTO {
		return MaxRTO
	}
	return r
}

// Stat returns a snapshot of the Uploader's counters
func (u *Uploader) Stat() Stat {
	s := u.stat
	s.NextSeq = u.swnd.End()
	s.Srtt = u.srtt
	return s
}

// SetOnSendAvailable registers a weak, best-effort observer notified the
// next time Emit transitions the to-send queue from full to non-full. The
// Uploader never extends n's lifetime
func (u *Uploader) SetOnSendAvailable(n *rnotify.Notifier) {
	u.onSendAvailable = weak.Make(n)
}

// Write enqueues s for sending. If the to-send queue is already at its
// count cap, s is returned unchanged so the caller can retry after a
// send-available notification
func (u *Uploader) Write(s buf.Slice) (rejected buf.Slice, err error) {
	rejected, ok := u.toSend.PushBack(s)
	if !ok {
		return rejected, types.ErrToSendFull
	}
	return buf.Slice{}, nil
}

// SetState applies a Downloader-produced delta: remote flow-control state,
// cumulative and selective ACK processing, RTT sampling, and fast-retransmit
// arming, per §4.6
func (u *Uploader) SetState(delta SetUploadState, now time.Time) error {
	for _, s := range delta.AckedLocalSeqs {
		if s == delta.RemoteNack {
			return types.ErrInvalidState
		}
	}

	u.swnd.SetRemoteRwndSize(delta.RemoteRwndSize)
	u.localNextSeqToReceive = delta.LocalNextSeqToReceive
	u.localRwndSize = delta.LocalRwndSize

	var maxAcked seq32.Value
	haveMaxAcked := false
	for _, s := range delta.AckedLocalSeqs {
		entry, ok := u.swnd.Remove(s)
		if !ok {
			continue
		}
		u.stat.Acks++
		if !entry.isRetransmitted {
			sample := now.Sub(entry.lastSentAt)
			u.sampleRTT(sample)
		}
		if !haveMaxAcked || maxAcked.Less(s) {
			maxAcked = s
			haveMaxAcked = true
		}
	}

	u.swnd.RemoveBefore(delta.RemoteNack)

	if haveMaxAcked && delta.RemoteNack.Less(maxAcked) {
		u.fastRetransmitWnd.TrySetBoundaries(delta.RemoteNack, maxAcked)
	}

	u.toAck = append(u.toAck, delta.RemoteSeqsToAck...)
	return nil
}

func (u *Uploader) sampleRTT(sample time.Duration) {
	if !u.srttInited {
		u.srtt = sample
		u.srttInited = true
		return
	}
	u.srtt += time.Duration(Alpha * float64(sample-u.srtt))
}

// Emit constructs the outbound packets due at time now: queued ACKs, then
// fast retransmissions, then RTO retransmissions, then as many new sends as
// the send window has room for, per §4.6
func (u *Uploader) Emit(now time.Time) []wire.Packet {
	wasFull := u.toSend.IsFull()

	bodyBudget := u.cfg.MTU - wire.PacketHdrLen
	b := bundler.New(bodyBudget)

	for _, seq := range u.toAck {
		frag := wire.NewAck(seq)
		b.Pack(frag)
	}
	u.toAck = nil

	u.emitFastRetransmissions(b, now)
	if !u.disableRTO {
		u.emitRTORetransmissions(b, now)
	}
	u.emitNewSends(b, bodyBudget, now)

	bundles := b.IntoBundles()
	packets := make([]wire.Packet, 0, len(bundles))
	for _, frags := range bundles {
		packets = append(packets, wire.Packet{
			Header: wire.Header{Rwnd: uint16(u.localRwndSize), Nack: u.localNextSeqToReceive},
			Frags:  frags,
		})
	}

	if wasFull && !u.toSend.IsFull() {
		if n := u.onSendAvailable.Value(); n != nil {
			n.Notify()
		}
	}

	return packets
}

func (u *Uploader) emitFastRetransmissions(b *bundler.Bundler, now time.Time) {
	if u.fastRetransmitWnd.IsEmpty() {
		return
	}
	for _, seq := range append([]seq32.Value(nil), u.swnd.Seqs()...) {
		if !u.fastRetransmitWnd.Contains(seq) {
			continue
		}
		entry, ok := u.swnd.Get(seq)
		if !ok {
			continue
		}
		entry.isRetransmitted = true
		entry.lastSentAt = now
		u.swnd.Set(seq, entry)
		u.heap.pushItem(seq, now)

		frag, err := wire.NewPush(seq, entry.body)
		if err != nil {
			continue
		}
		b.Pack(frag)
		u.fastRetransmitWnd.Retransmitted(seq)
		u.stat.FastRetransmissions++
		u.stat.Retransmissions++
		u.stat.Pushes++
	}
}

func (u *Uploader) emitRTORetransmissions(b *bundler.Bundler, now time.Time) {
	rto := u.Rto()
	for {
		top, ok := u.heap.peek()
		if !ok || now.Sub(top.at) < rto {
			return
		}
		u.heap.popItem()

		entry, ok := u.swnd.Get(top.seq)
		if !ok || entry.lastSentAt != top.at {
			// acked/removed, or superseded by a newer (re)send already
			// accounted for under a fresher heap entry
			continue
		}

		entry.isRetransmitted = true
		entry.lastSentAt = now
		u.swnd.Set(top.seq, entry)
		u.heap.pushItem(top.seq, now)

		frag, err := wire.NewPush(top.seq, entry.body)
		if err != nil {
			continue
		}
		b.Pack(frag)
		u.stat.RtoHits++
		u.stat.Retransmissions++
		u.stat.Pushes++
	}
}

func (u *Uploader) emitNewSends(b *bundler.Bundler, bodyBudget int, now time.Time) {
	for !u.toSend.IsEmpty() && !u.swnd.IsFull() {
		loadingSpace := b.LoadingSpace()
		var fragBodyLimit int
		if wire.PushHdrLen+1 <= loadingSpace {
			fragBodyLimit = loadingSpace - wire.PushHdrLen
		} else {
			fragBodyLimit = bodyBudget - wire.PushHdrLen
		}
		if fragBodyLimit <= 0 {
			return
		}

		pasta := buf.NewPasta()
		for !u.toSend.IsEmpty() && pasta.Len() < fragBodyLimit {
			chunk := u.toSend.SliceFront(fragBodyLimit - pasta.Len())
			if chunk.IsEmpty() {
				break
			}
			pasta.Append(chunk)
		}
		if pasta.IsEmpty() {
			return
		}

		seq := u.swnd.PushBack(sendingPush{body: pasta, lastSentAt: now})
		u.heap.pushItem(seq, now)

		frag, err := wire.NewPush(seq, pasta)
		if err != nil {
			continue
		}
		b.Pack(frag)
		u.stat.Pushes++
	}
}
