package rudp

import (
	"math"

	"github.com/go-rudp/rudp/types"
	"github.com/go-rudp/rudp/wire"
)

// Config enumerates everything NewEndpoint needs to build a matched
// Uploader/Downloader pair, per §6.3
type Config struct {
	// LocalRecvBufLen is the rwnd capacity C_r; must fit in a uint16 since
	// it is stamped into the packet header's rwnd field
	LocalRecvBufLen uint32
	// NackDuplicateThreshold is the number of times the same remote NACK
	// must be repeated, in consecutive deltas after its first report, to
	// activate fast retransmit; 0 means a single occurrence activates it
	NackDuplicateThreshold uint
	// RatioRTOToRTT is the k factor in RTO = clamp(srtt * k, MinRTO, MaxRTO)
	RatioRTOToRTT float64
	// ToSendQueueLenCap bounds the to-send queue by slice count
	ToSendQueueLenCap int
	// SwndSizeCap is the hard upper bound on in-flight sequences
	SwndSizeCap uint32
	// MTU is the maximum bytes of one outbound packet, header included
	MTU int
}

// minMTU is the smallest MTU that can carry a packet header plus either an
// Ack fragment or a one-byte Push fragment
func (c Config) minMTU() int {
	body := wire.AckHdrLen
	if push := wire.PushHdrLen + 1; push > body {
		body = push
	}
	return wire.PacketHdrLen + body
}

func (c Config) validate() error {
	if c.MTU < c.minMTU() {
		return types.ErrMtuTooSmall
	}
	if c.LocalRecvBufLen > math.MaxUint16 {
		return types.ErrRecvBufTooLarge
	}
	return nil
}

// DefaultRatioRTOToRTT is the default k factor used when a Config leaves
// RatioRTOToRTT at its zero value
const DefaultRatioRTOToRTT = 1.5

func (c Config) ratio() float64 {
	if c.RatioRTOToRTT <= 0 {
		return DefaultRatioRTOToRTT
	}
	return c.RatioRTOToRTT
}
