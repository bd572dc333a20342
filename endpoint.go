// Package rudp implements the reliability engine described in §1-§9: an
// ARQ transport with cumulative and selective ACK, sliding-window flow
// control, RTO and fast retransmission, and smoothed RTT estimation, split
// into an Uploader and a Downloader half per endpoint
package rudp

// NewEndpoint builds a matched Uploader/Downloader pair sharing cfg
func NewEndpoint(cfg Config) (*Uploader, *Downloader, error) {
	u, err := NewUploader(cfg)
	if err != nil {
		return nil, nil, err
	}
	d, err := NewDownloader(cfg)
	if err != nil {
		return nil, nil, err
	}
	return u, d, nil
}
