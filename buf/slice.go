package buf

// Slice is a cheaply-clonable view over an owned byte run. Because the
// backing array is GC-managed, sharing a Slice (or two Slices over the same
// backing array) never requires a reference count: the array stays alive as
// long as anything still holds a slice into it
type Slice struct {
	data []byte
}

// NewSlice wraps b as a Slice. b is not copied
func NewSlice(b []byte) Slice {
	return Slice{data: b}
}

// Len returns the number of bytes in the slice
func (s Slice) Len() int {
	return len(s.data)
}

// IsEmpty reports whether the slice holds zero bytes
func (s Slice) IsEmpty() bool {
	return len(s.data) == 0
}

// Data returns the underlying bytes. The returned slice aliases s and must
// not be retained past any later mutation of the owner buffer
func (s Slice) Data() []byte {
	return s.data
}

// Slice returns the sub-range [lo, hi) of s
func (s Slice) Slice(lo, hi int) Slice {
	return Slice{data: s.data[lo:hi]}
}

// Split divides s at mid into a head [0,mid) and tail [mid,len) pair
func (s Slice) Split(mid int) (head, tail Slice) {
	return Slice{data: s.data[:mid]}, Slice{data: s.data[mid:]}
}

// PopFront removes and returns the first n bytes of s, advancing s past them
func (s *Slice) PopFront(n int) Slice {
	if n > len(s.data) {
		n = len(s.data)
	}
	front := Slice{data: s.data[:n]}
	s.data = s.data[n:]
	return front
}

// AppendTo copies s onto the back of w. It lets Slice satisfy the same
// "body" contract as Pasta, so a fragment can carry either interchangeably
func (s Slice) AppendTo(w *Writer) error {
	return w.Append(s.data)
}
