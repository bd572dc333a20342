package rnotify

import (
	"sync"

	"github.com/go-rudp/rudp/ilist"
)

// Entry represents one registered waiter in a Queue. It can only belong to
// one queue at a time and is added intrusively, with no extra allocation
type Entry struct {
	Callback Callback
	ilist.Entry
}

// Queue is a broadcast point for multiple subscribers to a single
// "something happened" signal, such as several mux sessions sharing one
// socket's send-available notifications. The zero value is ready to use
type Queue struct {
	list ilist.List
	mu   sync.RWMutex
}

// Register adds e to the queue
func (q *Queue) Register(e *Entry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.list.PushBack(e)
}

// Unregister removes e from the queue
func (q *Queue) Unregister(e *Entry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.list.Remove(e)
}

// NotifyAll invokes every registered entry's callback
func (q *Queue) NotifyAll() {
	q.mu.RLock()
	defer q.mu.RUnlock()
	for it := q.list.Front(); it != nil; it = it.Next() {
		it.(*Entry).Callback()
	}
}
