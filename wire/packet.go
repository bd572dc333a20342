package wire

import (
	"encoding/binary"

	"github.com/go-rudp/rudp/buf"
	"github.com/go-rudp/rudp/seq32"
	"github.com/go-rudp/rudp/types"
)

// PacketHdrLen is the encoded size of a Header
const PacketHdrLen = 6

// Header is the 6-byte packet header carrying flow-control and cumulative
// ACK state, piggybacked on every outbound packet
type Header struct {
	// Rwnd is the local receive buffer's current free slot count
	Rwnd uint16
	// Nack is the lowest sequence the sender has not yet received in order
	Nack seq32.Value
}

// AppendTo encodes h onto the back of w
func (h Header) AppendTo(w *buf.Writer) error {
	var raw [PacketHdrLen]byte
	binary.BigEndian.PutUint16(raw[0:2], h.Rwnd)
	binary.BigEndian.PutUint32(raw[2:6], h.Nack.ToU32())
	return w.Append(raw[:])
}

// DecodeHeader parses a Header off the front of b, returning the remainder
func DecodeHeader(b []byte) (Header, []byte, error) {
	if len(b) < PacketHdrLen {
		return Header{}, nil, types.ErrDecoding
	}
	h := Header{
		Rwnd: binary.BigEndian.Uint16(b[0:2]),
		Nack: seq32.FromU32(binary.BigEndian.Uint32(b[2:6])),
	}
	return h, b[PacketHdrLen:], nil
}

// Packet is a header followed by an ordered list of fragments
type Packet struct {
	Header Header
	Frags  []Fragment
}

// AppendTo encodes the header then every fragment, in order, onto w
func (p Packet) AppendTo(w *buf.Writer) error {
	if err := p.Header.AppendTo(w); err != nil {
		return err
	}
	for _, f := range p.Frags {
		if err := f.AppendTo(w); err != nil {
			return err
		}
	}
	return nil
}

// DecodePacket decodes a whole datagram. The buffer must be consumed
// exactly: any trailing bytes that do not form a complete fragment are a
// decoding error, and the entire packet is rejected
func DecodePacket(b []byte) (Packet, error) {
	hdr, rest, err := DecodeHeader(b)
	if err != nil {
		return Packet{}, err
	}
	p := Packet{Header: hdr}
	for len(rest) > 0 {
		var frag Fragment
		frag, rest, err = DecodeFragment(rest)
		if err != nil {
			return Packet{}, err
		}
		p.Frags = append(p.Frags, frag)
	}
	return p, nil
}
