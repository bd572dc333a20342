// Package buf provides the zero-copy buffer primitives the reliability
// engine is built from: a growable Writer with free space on both ends, an
// immutable Slice view over owned bytes, a Pasta (ordered concatenation of
// Slices treated as one logical body) and a count-capped SliceQueue
package buf

import "github.com/go-rudp/rudp/types"

// ErrNotEnoughSpace is returned by Writer's space-bounded operations when the
// requested growth or shrink does not fit
var ErrNotEnoughSpace = types.ErrNotEnoughSpace

// Writer is a byte buffer with a front-free region and a back-free region,
// so headers can be prepended without shifting the payload. The zero value
// is not usable; construct with NewWriter
type Writer struct {
	buf        []byte
	start, end int
}

// NewWriter allocates a Writer backed by a buffer of length capLen, with
// the data region starting empty at offset start (so start bytes are
// front-free, and capLen-start bytes are back-free)
func NewWriter(capLen, start int) *Writer {
	w := &Writer{buf: make([]byte, capLen), start: start, end: start}
	return w
}

// NewWriterFromBytes wraps an existing buffer, treating [start,end) as the
// already-written data region
func NewWriterFromBytes(b []byte, start, end int) *Writer {
	return &Writer{buf: b, start: start, end: end}
}

// DataLen returns the number of bytes currently held
func (w *Writer) DataLen() int {
	return w.end - w.start
}

// FrontLen returns the number of free bytes before the data region
func (w *Writer) FrontLen() int {
	return w.start
}

// BackLen returns the number of free bytes after the data region
func (w *Writer) BackLen() int {
	return len(w.buf) - w.end
}

// IsEmpty reports whether the data region is empty
func (w *Writer) IsEmpty() bool {
	return w.DataLen() == 0
}

// IsFull reports whether the data region spans the entire backing buffer
func (w *Writer) IsFull() bool {
	return w.DataLen() == len(w.buf)
}

// Data returns the data region. The returned slice aliases the Writer's
// backing array and is only valid until the next mutating call
func (w *Writer) Data() []byte {
	return w.buf[w.start:w.end]
}

// GrowFront extends the data region backwards by n bytes
func (w *Writer) GrowFront(n int) error {
	if w.start < n {
		return ErrNotEnoughSpace
	}
	w.start -= n
	return nil
}

// GrowBack extends the data region forwards by n bytes
func (w *Writer) GrowBack(n int) error {
	if len(w.buf) < w.end+n {
		return ErrNotEnoughSpace
	}
	w.end += n
	return nil
}

// ShrinkFront removes n bytes from the front of the data region
func (w *Writer) ShrinkFront(n int) error {
	if w.end < w.start+n {
		return ErrNotEnoughSpace
	}
	w.start += n
	return nil
}

// ShrinkBack removes n bytes from the back of the data region
func (w *Writer) ShrinkBack(n int) error {
	if w.end < w.start+n {
		return ErrNotEnoughSpace
	}
	w.end -= n
	return nil
}

// ResetData empties the data region, repositioning it to start
func (w *Writer) ResetData(start int) {
	w.start = start
	w.end = start
}

// Append copies n onto the back of the data region
func (w *Writer) Append(n []byte) error {
	if w.BackLen() < len(n) {
		return ErrNotEnoughSpace
	}
	copy(w.buf[w.end:], n)
	return w.GrowBack(len(n))
}

// Prepend copies n onto the front of the data region
func (w *Writer) Prepend(n []byte) error {
	if w.FrontLen() < len(n) {
		return ErrNotEnoughSpace
	}
	copy(w.buf[w.start-len(n):w.start], n)
	return w.GrowFront(len(n))
}
