package buf

// Pasta is an ordered concatenation of Slices treated as one logical body,
// without copying any of their bytes until they are finally written out
type Pasta struct {
	slices []Slice
	length int
}

// NewPasta returns an empty Pasta
func NewPasta() *Pasta {
	return &Pasta{}
}

// Append adds s to the end of the pasta
func (p *Pasta) Append(s Slice) {
	if s.IsEmpty() {
		return
	}
	p.slices = append(p.slices, s)
	p.length += s.Len()
}

// Len returns the total number of bytes across all slices
func (p *Pasta) Len() int {
	return p.length
}

// IsEmpty reports whether the pasta holds zero bytes
func (p *Pasta) IsEmpty() bool {
	return p.length == 0
}

// AppendTo copies every slice's bytes onto the back of w, in order. Fails
// without partial writes if w's back-free space cannot hold the whole pasta
func (p *Pasta) AppendTo(w *Writer) error {
	if w.BackLen() < p.length {
		return ErrNotEnoughSpace
	}
	for _, s := range p.slices {
		if err := w.Append(s.Data()); err != nil {
			return err
		}
	}
	return nil
}
