// Package wire implements the on-the-wire fragment and packet framing of
// §6: a fixed-layout, big-endian header format that the Uploader encodes
// into and the Downloader decodes out of
package wire

import (
	"encoding/binary"

	"github.com/go-rudp/rudp/buf"
	"github.com/go-rudp/rudp/seq32"
	"github.com/go-rudp/rudp/types"
)

// Command distinguishes a Push fragment from an Ack fragment
type Command uint8

const (
	CommandPush Command = 0
	CommandAck  Command = 1
)

const (
	// PushHdrLen is the encoded size of a Push fragment's header (seq + cmd + len)
	PushHdrLen = 9
	// AckHdrLen is the encoded size of an Ack fragment's header (seq + cmd)
	AckHdrLen = 5
)

// Body is anything that can be copied onto the back of a Writer while
// reporting its own length; buf.Slice and *buf.Pasta both satisfy it, so a
// retransmitted Push can reuse the exact Pasta it was first built from
type Body interface {
	Len() int
	AppendTo(w *buf.Writer) error
}

// Fragment is a tagged unit: either a Push carrying a non-empty body, or a
// bare Ack. Construct with NewPush/NewAck rather than the struct literal so
// the EmptyBody invariant is enforced
type Fragment struct {
	Seq  seq32.Value
	Cmd  Command
	body Body // nil for Ack
}

// NewPush builds a Push fragment. body must not be empty; EmptyBody is a
// construction-time bug, unreachable when the Uploader is used correctly
func NewPush(seq seq32.Value, body Body) (Fragment, error) {
	if body == nil || body.Len() == 0 {
		return Fragment{}, types.ErrEmptyBody
	}
	return Fragment{Seq: seq, Cmd: CommandPush, body: body}, nil
}

// NewAck builds an Ack fragment naming the acknowledged remote sequence
func NewAck(seq seq32.Value) Fragment {
	return Fragment{Seq: seq, Cmd: CommandAck}
}

// Body returns the Push body, or nil for an Ack fragment
func (f Fragment) Body() Body {
	return f.body
}

// EncodedLen returns the fragment's size once encoded, header included
func (f Fragment) EncodedLen() int {
	if f.Cmd == CommandPush {
		return PushHdrLen + f.body.Len()
	}
	return AckHdrLen
}

// AppendTo encodes f onto the back of w
func (f Fragment) AppendTo(w *buf.Writer) error {
	var hdr [PushHdrLen]byte
	binary.BigEndian.PutUint32(hdr[0:4], f.Seq.ToU32())
	hdr[4] = byte(f.Cmd)
	if f.Cmd == CommandPush {
		binary.BigEndian.PutUint32(hdr[5:9], uint32(f.body.Len()))
		if err := w.Append(hdr[:PushHdrLen]); err != nil {
			return err
		}
		return f.body.AppendTo(w)
	}
	return w.Append(hdr[:AckHdrLen])
}

// DecodeFragment parses one fragment off the front of b, returning the
// fragment and the unconsumed remainder. The decoded Push body aliases b
func DecodeFragment(b []byte) (Fragment, []byte, error) {
	if len(b) < 5 {
		return Fragment{}, nil, types.ErrDecoding
	}
	seq := seq32.FromU32(binary.BigEndian.Uint32(b[0:4]))
	cmd := Command(b[4])
	rest := b[5:]

	switch cmd {
	case CommandAck:
		return NewAck(seq), rest, nil
	case CommandPush:
		if len(rest) < 4 {
			return Fragment{}, nil, types.ErrDecoding
		}
		bodyLen := binary.BigEndian.Uint32(rest[0:4])
		rest = rest[4:]
		if bodyLen == 0 {
			return Fragment{}, nil, types.ErrDecoding
		}
		if uint64(len(rest)) < uint64(bodyLen) {
			return Fragment{}, nil, types.ErrDecoding
		}
		body := buf.NewSlice(rest[:bodyLen])
		rest = rest[bodyLen:]
		frag, err := NewPush(seq, body)
		if err != nil {
			return Fragment{}, nil, err
		}
		return frag, rest, nil
	default:
		return Fragment{}, nil, types.ErrDecoding
	}
}
