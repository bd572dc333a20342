// Package tmutex provides a mutual exclusion primitive with a non-blocking
// TryLock, used to guard the mux flush loop against re-entrant flushes
package tmutex

import (
	"sync/atomic"
)

// Mutex is a mutual exclusion primitive that implements TryLock in addition
// to Lock and Unlock. The zero value is not usable; construct with New
type Mutex struct {
	v  int32
	ch chan struct{}
}

// New returns an unlocked Mutex
func New() *Mutex {
	return &Mutex{v: 1, ch: make(chan struct{}, 1)}
}

// Lock acquires the mutex, blocking until it is available
func (m *Mutex) Lock() {
	for {
		if atomic.CompareAndSwapInt32(&m.v, 1, 0) {
			return
		}
		<-m.ch
	}
}

// TryLock acquires the mutex without blocking, reporting whether it succeeded
func (m *Mutex) TryLock() bool {
	return atomic.CompareAndSwapInt32(&m.v, 1, 0)
}

// Unlock releases the mutex
func (m *Mutex) Unlock() {
	atomic.SwapInt32(&m.v, 1)

	// wake one waiter, if any
	select {
	case m.ch <- struct{}{}:
	default:
	}
}
