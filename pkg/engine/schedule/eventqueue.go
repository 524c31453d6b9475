// Package schedule orders actor turns on a discrete time line. Actors are
// opaque comparable handles; the queue only needs identity.
package schedule

import (
	"github.com/zyedidia/generic/heap"
)

type entry[T comparable] struct {
	item    T
	time    float64
	seq     uint64
	removed bool
}

func lessEntry[T comparable](a, b *entry[T]) bool {
	if a.time != b.time {
		return a.time < b.time
	}
	return a.seq < b.seq
}

// EventQueue is a priority queue keyed by absolute time. Events scheduled
// for the same time come out in insertion order. Each item has at most one
// pending event; adding an item again replaces its previous event.
type EventQueue[T comparable] struct {
	time    float64
	seq     uint64
	pending *heap.Heap[*entry[T]]
	index   map[T]*entry[T]
}

// NewEventQueue creates an empty queue at time 0
func NewEventQueue[T comparable]() *EventQueue[T] {
	return &EventQueue[T]{
		pending: heap.New[*entry[T]](lessEntry[T]),
		index:   make(map[T]*entry[T]),
	}
}

// Time returns the time of the most recently returned event
func (q *EventQueue[T]) Time() float64 {
	return q.time
}

// Len returns the number of pending events
func (q *EventQueue[T]) Len() int {
	return len(q.index)
}

// Add schedules item delay time units after the current time.
// Negative delays are treated as zero.
func (q *EventQueue[T]) Add(item T, delay float64) {
	if delay < 0 {
		delay = 0
	}
	q.AddAt(item, q.time+delay)
}

// AddAt schedules item at an absolute time, clamped to the current time.
func (q *EventQueue[T]) AddAt(item T, at float64) {
	if at < q.time {
		at = q.time
	}
	if old, ok := q.index[item]; ok {
		old.removed = true
	}
	e := &entry[T]{item: item, time: at, seq: q.seq}
	q.seq++
	q.index[item] = e
	q.pending.Push(e)
}

// Get removes and returns the earliest event, advancing the current time to
// it. ok is false when the queue is empty.
func (q *EventQueue[T]) Get() (item T, ok bool) {
	for q.pending.Size() > 0 {
		e, _ := q.pending.Pop()
		if e.removed {
			continue
		}
		delete(q.index, e.item)
		q.time = e.time
		return e.item, true
	}
	return item, false
}

// EventTime returns the absolute time item is scheduled for
func (q *EventQueue[T]) EventTime(item T) (float64, bool) {
	e, ok := q.index[item]
	if !ok {
		return 0, false
	}
	return e.time, true
}

// Remove drops the pending event for item. Returns false if there was none.
func (q *EventQueue[T]) Remove(item T) bool {
	e, ok := q.index[item]
	if !ok {
		return false
	}
	e.removed = true
	delete(q.index, item)
	return true
}

// Clear drops every pending event. The current time is kept.
func (q *EventQueue[T]) Clear() {
	q.pending = heap.New[*entry[T]](lessEntry[T])
	q.index = make(map[T]*entry[T])
}
