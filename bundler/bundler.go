// Package bundler packs fragments into bundles that each fit within a
// caller-given space budget, per §4.5
package bundler

import (
	"github.com/go-rudp/rudp/types"
	"github.com/go-rudp/rudp/wire"
)

// Bundler packs fragments into one or more bundles, each at most
// eachBundleSpace bytes once encoded
type Bundler struct {
	eachBundleSpace int
	bundles         [][]wire.Fragment
	loading         []wire.Fragment
	loadingLen      int
}

// New returns an empty Bundler with the given per-bundle space budget
func New(eachBundleSpace int) *Bundler {
	return &Bundler{eachBundleSpace: eachBundleSpace}
}

// LoadingSpace returns how many more bytes the bundle currently being
// filled can still accept
func (b *Bundler) LoadingSpace() int {
	return b.eachBundleSpace - b.loadingLen
}

// Pack appends frag to the bundle being filled, sealing it and starting a
// fresh one first if frag would not fit. Returns FragTooLarge if frag's
// encoded size exceeds the space budget of any bundle
func (b *Bundler) Pack(frag wire.Fragment) error {
	n := frag.EncodedLen()
	if n > b.eachBundleSpace {
		return types.ErrFragTooLarge
	}
	if n+b.loadingLen > b.eachBundleSpace {
		b.seal()
	}
	b.loading = append(b.loading, frag)
	b.loadingLen += n
	return nil
}

func (b *Bundler) seal() {
	if len(b.loading) == 0 {
		return
	}
	b.bundles = append(b.bundles, b.loading)
	b.loading = nil
	b.loadingLen = 0
}

// IntoBundles seals the bundle currently being filled, if non-empty, and
// returns every bundle produced so far, in order
func (b *Bundler) IntoBundles() [][]wire.Fragment {
	b.seal()
	return b.bundles
}
