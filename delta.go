package rudp

import "github.com/go-rudp/rudp/seq32"

// SetUploadState is the delta the Downloader produces from every decoded
// packet and the Uploader consumes to update its send-side state, per
// §1/§4.4
type SetUploadState struct {
	RemoteRwndSize        uint32
	RemoteNack            seq32.Value
	LocalNextSeqToReceive seq32.Value
	RemoteSeqsToAck       []seq32.Value
	AckedLocalSeqs        []seq32.Value
	LocalRwndSize         uint32
}
