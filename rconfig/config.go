// Package rconfig loads the YAML-encoded settings a rudp endpoint is
// constructed from, in the style of tinyrange-cc's site config: a plain
// struct with yaml tags, unmarshalled with gopkg.in/yaml.v3, converted into
// the package's own Config type rather than used directly
package rconfig

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-rudp/rudp"
)

// maxFileSize guards against loading an unreasonably large config file
const maxFileSize = 1 << 20

// Config is the on-disk representation of an endpoint's settings
type Config struct {
	LocalRecvBufLen        uint32  `yaml:"local_recv_buf_len"`
	NackDuplicateThreshold uint    `yaml:"nack_duplicate_threshold"`
	RatioRTOToRTT          float64 `yaml:"ratio_rto_to_rtt"`
	ToSendQueueLenCap      int     `yaml:"to_send_queue_len_cap"`
	SwndSizeCap            uint32  `yaml:"swnd_size_cap"`
	MTU                    int     `yaml:"mtu"`
	LogLevel               string  `yaml:"log_level"`

	// FlushInterval is how often mux.Muxer's flush loop calls Emit on every
	// open session
	FlushInterval time.Duration `yaml:"flush_interval"`
	// AcceptUnsolicited allows mux.Muxer to open a new Session for a
	// datagram from a previously-unseen remote address
	AcceptUnsolicited bool `yaml:"accept_unsolicited"`
}

// Default returns the recommended baseline settings, used to fill in a
// Config read from a file that omits some fields
func Default() Config {
	return Config{
		LocalRecvBufLen:        64,
		NackDuplicateThreshold: 2,
		RatioRTOToRTT:          rudp.DefaultRatioRTOToRTT,
		ToSendQueueLenCap:      256,
		SwndSizeCap:            256,
		MTU:                    1200,
		LogLevel:               "info",
		FlushInterval:          20 * time.Millisecond,
		AcceptUnsolicited:      true,
	}
}

// Load reads and parses the YAML config at path. A missing file is not an
// error; it yields Default()
func Load(path string) (Config, error) {
	cfg := Default()

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("rconfig: stat %s: %w", path, err)
	}
	if info.Size() > maxFileSize {
		return Config{}, fmt.Errorf("rconfig: %s exceeds %d bytes", path, maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("rconfig: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("rconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ToEndpointConfig converts c into the rudp.Config NewEndpoint expects
func (c Config) ToEndpointConfig() rudp.Config {
	return rudp.Config{
		LocalRecvBufLen:        c.LocalRecvBufLen,
		NackDuplicateThreshold: c.NackDuplicateThreshold,
		RatioRTOToRTT:          c.RatioRTOToRTT,
		ToSendQueueLenCap:      c.ToSendQueueLenCap,
		SwndSizeCap:            c.SwndSizeCap,
		MTU:                    c.MTU,
	}
}

// RTOBounds returns the configured RTO clamp range, mirroring rudp's
// package-level constants for callers that want to display them
func RTOBounds() (min, max time.Duration) {
	return rudp.MinRTO, rudp.MaxRTO
}
