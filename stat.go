package rudp

import (
	"time"

	"github.com/go-rudp/rudp/seq32"
)

// Stat records the counters an endpoint exposes for observability, per
// §6.3 and §8's testable properties
type Stat struct {
	Pushes              uint64
	Acks                uint64
	Retransmissions     uint64
	RtoHits             uint64
	FastRetransmissions uint64
	EarlyPushes         uint64
	LatePushes          uint64
	OutOfOrderPushes    uint64
	DecodingErrors      uint64
	NextSeq             seq32.Value
	// Srtt is zero until the first non-retransmitted ACK seeds it
	Srtt time.Duration
}
