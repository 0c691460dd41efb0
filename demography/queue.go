package demography

import "container/heap"

// Queue is the time-ordered queue of scheduled events (§4.2 event type
// 4). Ties between two scheduled events resolve in registration order
// (§5), implemented here as a secondary sort key (the sequence number
// assigned at Add time) so container/heap's partial order stays total.
type Queue struct {
	items queueHeap
	seq   int
}

type queueItem struct {
	event Event
	seq   int
}

type queueHeap []queueItem

func (h queueHeap) Len() int { return len(h) }
func (h queueHeap) Less(i, j int) bool {
	ti, tj := h[i].event.Time(), h[j].event.Time()
	if ti != tj {
		return ti < tj
	}
	return h[i].seq < h[j].seq
}
func (h queueHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *queueHeap) Push(x any)        { *h = append(*h, x.(queueItem)) }
func (h *queueHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// NewQueue creates an empty scheduled-event queue.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(&q.items)
	return q
}

// Add registers an event, in the order Add is called — the registration
// order §5 uses to break ties between same-time events.
func (q *Queue) Add(e Event) {
	heap.Push(&q.items, queueItem{event: e, seq: q.seq})
	q.seq++
}

// Len returns the number of pending events.
func (q *Queue) Len() int { return q.items.Len() }

// Peek returns the earliest pending event without removing it, or nil
// if the queue is empty.
func (q *Queue) Peek() Event {
	if q.items.Len() == 0 {
		return nil
	}
	return q.items[0].event
}

// Pop removes and returns the earliest pending event, or nil if empty.
func (q *Queue) Pop() Event {
	if q.items.Len() == 0 {
		return nil
	}
	item := heap.Pop(&q.items).(queueItem)
	return item.event
}
