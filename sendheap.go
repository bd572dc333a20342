package rudp

import (
	"container/heap"
	"time"

	"github.com/go-rudp/rudp/seq32"
)

// sendHeapItem records when a sequence was last (re)sent, for the RTO
// min-heap. A sequence can appear in the heap more than once across its
// lifetime (each (re)send pushes a fresh item); an item is stale once the
// swnd entry it names has since been acked, removed, or re-sent with a
// newer lastSentAt, and is discarded lazily when popped
type sendHeapItem struct {
	seq seq32.Value
	at  time.Time
}

type sendHeap []sendHeapItem

func (h sendHeap) Len() int            { return len(h) }
func (h sendHeap) Less(i, j int) bool  { return h[i].at.Before(h[j].at) }
func (h sendHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *sendHeap) Push(x interface{}) { *h = append(*h, x.(sendHeapItem)) }
func (h *sendHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func (h *sendHeap) pushItem(seq seq32.Value, at time.Time) {
	heap.Push(h, sendHeapItem{seq: seq, at: at})
}

// peek returns the item with the smallest lastSentAt without removing it
func (h sendHeap) peek() (sendHeapItem, bool) {
	if len(h) == 0 {
		return sendHeapItem{}, false
	}
	return h[0], true
}

func (h *sendHeap) popItem() sendHeapItem {
	return heap.Pop(h).(sendHeapItem)
}
