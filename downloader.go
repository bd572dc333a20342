package rudp

import (
	"math"

	"github.com/go-rudp/rudp/buf"
	"github.com/go-rudp/rudp/rwnd"
	"github.com/go-rudp/rudp/wire"
)

// Downloader parses inbound packets, feeds the ordered receive buffer, and
// produces ordered byte runs for the application plus the SetUploadState
// delta that drives the paired Uploader, per §4.4
type Downloader struct {
	recvBuf  *rwnd.RecvBuf
	leftover buf.Slice
	stat     Stat
}

// NewDownloader builds a Downloader from cfg
func NewDownloader(cfg Config) (*Downloader, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Downloader{recvBuf: rwnd.NewRecvBuf(cfg.LocalRecvBufLen)}, nil
}

// Stat returns a snapshot of the Downloader's counters
func (d *Downloader) Stat() Stat {
	return d.stat
}

// Write decodes one inbound datagram, updates the receive window, and
// returns the delta to feed into the paired Uploader's SetState. The whole
// datagram is decoded before any state changes, so a decoding failure only
// increments DecodingErrors and returns no delta
func (d *Downloader) Write(s buf.Slice) (SetUploadState, error) {
	pkt, err := wire.DecodePacket(s.Data())
	if err != nil {
		d.stat.DecodingErrors++
		return SetUploadState{}, err
	}
	return d.handlePacket(pkt), nil
}

func (d *Downloader) handlePacket(pkt wire.Packet) SetUploadState {
	delta := SetUploadState{
		RemoteRwndSize: uint32(pkt.Header.Rwnd),
		RemoteNack:     pkt.Header.Nack,
	}

	for _, frag := range pkt.Frags {
		switch frag.Cmd {
		case wire.CommandAck:
			delta.AckedLocalSeqs = append(delta.AckedLocalSeqs, frag.Seq)
			d.stat.Acks++
		case wire.CommandPush:
			d.stat.Pushes++
			body, _ := frag.Body().(buf.Slice)
			loc := d.recvBuf.Insert(frag.Seq, body)
			switch loc {
			case rwnd.AtStart:
				delta.RemoteSeqsToAck = append(delta.RemoteSeqsToAck, frag.Seq)
			case rwnd.InWindow:
				delta.RemoteSeqsToAck = append(delta.RemoteSeqsToAck, frag.Seq)
				d.stat.OutOfOrderPushes++
			case rwnd.TooLate:
				delta.RemoteSeqsToAck = append(delta.RemoteSeqsToAck, frag.Seq)
				d.stat.LatePushes++
			case rwnd.TooEarly:
				d.stat.EarlyPushes++
			}
		}
	}

	delta.LocalNextSeqToReceive = d.recvBuf.NextSeqToReceive()
	delta.LocalRwndSize = d.recvBuf.RwndSize()
	return delta
}

// Emit returns the next ready slice, if any
func (d *Downloader) Emit() (buf.Slice, bool) {
	return d.EmitMax(math.MaxInt)
}

// EmitMax returns the next ready slice clamped to at most maxLen bytes,
// splitting on the boundary and retaining the tail as leftover for the
// next call
func (d *Downloader) EmitMax(maxLen int) (buf.Slice, bool) {
	var s buf.Slice
	if !d.leftover.IsEmpty() {
		s = d.leftover
		d.leftover = buf.Slice{}
	} else {
		v, ok := d.recvBuf.PopFront()
		if !ok {
			return buf.Slice{}, false
		}
		s = v
	}

	if s.Len() <= maxLen {
		return s, true
	}
	head, tail := s.Split(maxLen)
	d.leftover = tail
	return head, true
}
