// Package rstat exposes every open session's counters as Prometheus metrics,
// per §6.3/§8: every field of rudp.Stat becomes a labeled counter or gauge,
// scraped lazily via the prometheus.Collector interface rather than pushed.
// One Collector aggregates every session, the same shape as
// runZeroInc-sockstats/pkg/exporter/exporter.go's TCPInfoCollector ranging
// over its connection map in a single Collect call
package rstat

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-rudp/rudp"
)

var counterFields = []struct {
	name string
	help string
	get  func(rudp.Stat) uint64
}{
	{"pushes_total", "push fragments sent or received", func(s rudp.Stat) uint64 { return s.Pushes }},
	{"acks_total", "ack fragments sent or received", func(s rudp.Stat) uint64 { return s.Acks }},
	{"retransmissions_total", "push fragments resent for any reason", func(s rudp.Stat) uint64 { return s.Retransmissions }},
	{"rto_hits_total", "retransmissions triggered by rto expiry", func(s rudp.Stat) uint64 { return s.RtoHits }},
	{"fast_retransmissions_total", "retransmissions triggered by duplicate nack evidence", func(s rudp.Stat) uint64 { return s.FastRetransmissions }},
	{"early_pushes_total", "pushes dropped as too far ahead of the receive window", func(s rudp.Stat) uint64 { return s.EarlyPushes }},
	{"late_pushes_total", "pushes dropped as already delivered", func(s rudp.Stat) uint64 { return s.LatePushes }},
	{"out_of_order_pushes_total", "pushes received ahead of the next expected sequence", func(s rudp.Stat) uint64 { return s.OutOfOrderPushes }},
	{"decoding_errors_total", "inbound datagrams that failed to decode", func(s rudp.Stat) uint64 { return s.DecodingErrors }},
}

// Collector adapts every currently open session's counters to the
// prometheus.Collector interface. Metrics are computed on demand at scrape
// time by calling sessions, so Collector itself holds no counter state and
// automatically picks up sessions opened or closed between scrapes
type Collector struct {
	sessions func() map[string]rudp.Stat

	counterDescs []*prometheus.Desc
	srttDesc     *prometheus.Desc
	nextSeqDesc  *prometheus.Desc
}

// NewCollector returns a Collector that, at every scrape, calls sessions to
// get the current session-id-to-Stat map and emits one labeled metric set
// per session (e.g. backed by mux.Muxer.Stats)
func NewCollector(sessions func() map[string]rudp.Stat) *Collector {
	c := &Collector{sessions: sessions}
	for _, f := range counterFields {
		c.counterDescs = append(c.counterDescs, prometheus.NewDesc(
			"rudp_"+f.name, f.help, []string{"session"}, nil))
	}
	c.srttDesc = prometheus.NewDesc(
		"rudp_srtt_seconds", "smoothed round-trip time estimate", []string{"session"}, nil)
	c.nextSeqDesc = prometheus.NewDesc(
		"rudp_next_seq", "next sequence the uploader will allocate", []string{"session"}, nil)
	return c
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(descs chan<- *prometheus.Desc) {
	for _, d := range c.counterDescs {
		descs <- d
	}
	descs <- c.srttDesc
	descs <- c.nextSeqDesc
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(metrics chan<- prometheus.Metric) {
	for session, s := range c.sessions() {
		for i, f := range counterFields {
			metrics <- prometheus.MustNewConstMetric(c.counterDescs[i], prometheus.CounterValue, float64(f.get(s)), session)
		}
		metrics <- prometheus.MustNewConstMetric(c.srttDesc, prometheus.GaugeValue, s.Srtt.Seconds(), session)
		metrics <- prometheus.MustNewConstMetric(c.nextSeqDesc, prometheus.GaugeValue, float64(s.NextSeq.ToU32()), session)
	}
}
