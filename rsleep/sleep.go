// Package rsleep provides a Sleeper/Waker pair that lets the mux flush loop
// block until one of several independent events needs attention: a timer
// fired, an upload has fresh bytes to send, or the loop is being stopped.
// A Waker can be asserted from any goroutine without blocking; a Sleeper
// collects one or more Wakers and reports, in Fetch, which one fired
package rsleep

import (
	"sync"
	"sync/atomic"
)

// Waker is a single-shot wakeup source. It can be associated with at most
// one Sleeper at a time. The zero value is ready to use
type Waker struct {
	asserted atomic.Bool

	mu sync.Mutex
	s  *Sleeper
	id int
}

// Assert marks w as fired and wakes its associated Sleeper, if any. Safe to
// call from any goroutine, any number of times; redundant asserts before the
// next Fetch collapse into one wakeup
func (w *Waker) Assert() {
	if w.asserted.CompareAndSwap(false, true) {
		w.mu.Lock()
		s := w.s
		w.mu.Unlock()
		if s != nil {
			s.signal()
		}
	}
}

// Clear resets w to the un-asserted state
func (w *Waker) Clear() {
	w.asserted.Store(false)
}

// IsAsserted reports whether w has fired since the last Clear or Fetch
func (w *Waker) IsAsserted() bool {
	return w.asserted.Load()
}

// Sleeper waits on any number of Wakers. The zero value is an empty Sleeper
// ready for use
type Sleeper struct {
	mu     sync.Mutex
	wakers []*Waker
	ch     chan struct{}
}

func (s *Sleeper) initLocked() {
	if s.ch == nil {
		s.ch = make(chan struct{}, 1)
	}
}

// AddWaker associates w with s under the given id, the value Fetch returns
// when w is the one that fired. w must not already be associated with a
// Sleeper
func (s *Sleeper) AddWaker(w *Waker, id int) {
	s.mu.Lock()
	s.initLocked()
	s.wakers = append(s.wakers, w)
	s.mu.Unlock()

	w.mu.Lock()
	w.s = s
	w.id = id
	w.mu.Unlock()
}

func (s *Sleeper) signal() {
	s.mu.Lock()
	s.initLocked()
	ch := s.ch
	s.mu.Unlock()
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Fetch returns the id of an asserted waker, clearing it in the process. If
// none is asserted and block is true, Fetch waits until one fires; if block
// is false it returns immediately with ok=false
func (s *Sleeper) Fetch(block bool) (id int, ok bool) {
	for {
		s.mu.Lock()
		s.initLocked()
		wakers := s.wakers
		ch := s.ch
		s.mu.Unlock()

		for _, w := range wakers {
			if w.asserted.CompareAndSwap(true, false) {
				return w.id, true
			}
		}

		if !block {
			return 0, false
		}
		<-ch
	}
}

// Done detaches every waker previously added with AddWaker, so they may be
// reused with a different Sleeper or safely garbage collected
func (s *Sleeper) Done() {
	s.mu.Lock()
	wakers := s.wakers
	s.wakers = nil
	s.mu.Unlock()

	for _, w := range wakers {
		w.mu.Lock()
		w.s = nil
		w.mu.Unlock()
	}
}
