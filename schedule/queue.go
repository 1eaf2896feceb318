// Package schedule holds deferred attack damage until its hit time.
package schedule

import (
	"container/heap"

	"github.com/yohamta/donburi"
)

// Event is one pending damage application.
type Event struct {
	FireAt   float64 // simulation seconds
	Attacker donburi.Entity
	Target   donburi.Entity
	Amount   float64

	seq   uint64
	index int
}

// Queue orders events by fire time, then by scheduling order.
type Queue struct {
	items eventHeap
	seq   uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Len() int {
	return len(q.items)
}

// Schedule adds an event and returns it for inspection.
func (q *Queue) Schedule(fireAt float64, attacker, target donburi.Entity, amount float64) *Event {
	q.seq++
	ev := &Event{
		FireAt:   fireAt,
		Attacker: attacker,
		Target:   target,
		Amount:   amount,
		seq:      q.seq,
	}
	heap.Push(&q.items, ev)
	return ev
}

// CancelBy drops every pending event scheduled by attacker.
func (q *Queue) CancelBy(attacker donburi.Entity) int {
	kept := q.items[:0]
	for _, ev := range q.items {
		if ev.Attacker != attacker {
			kept = append(kept, ev)
		}
	}
	n := len(q.items) - len(kept)
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = nil
	}
	q.items = kept
	if n > 0 {
		heap.Init(&q.items)
	}
	return n
}

// PendingFor counts events scheduled by attacker.
func (q *Queue) PendingFor(attacker donburi.Entity) int {
	n := 0
	for _, ev := range q.items {
		if ev.Attacker == attacker {
			n++
		}
	}
	return n
}

// Drain pops every event due at or before now, in order, and hands it to fn.
func (q *Queue) Drain(now float64, fn func(Event)) int {
	n := 0
	for len(q.items) > 0 && q.items[0].FireAt <= now {
		ev := heap.Pop(&q.items).(*Event)
		fn(*ev)
		n++
	}
	return n
}

// Clear drops all pending events.
func (q *Queue) Clear() {
	clear(q.items)
	q.items = q.items[:0]
}

type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].FireAt != h[j].FireAt {
		return h[i].FireAt < h[j].FireAt
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *eventHeap) Push(x any) {
	ev := x.(*Event)
	ev.index = len(*h)
	*h = append(*h, ev)
}
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	ev.index = -1
	*h = old[:n-1]
	return ev
}
