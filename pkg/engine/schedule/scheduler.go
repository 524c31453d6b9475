package schedule

import (
	"math"

	"github.com/zyedidia/generic/mapset"
)

// Duration converts a speed stat into the time one action takes. Faster actors
// accumulate fewer time units per action and therefore act more often.
// Non-positive speeds give +Inf: such an actor is not rescheduled.
func Duration(speed float64) float64 {
	if speed <= 0 {
		return math.Inf(1)
	}
	return 1 / speed
}

// scheduler is the state shared by Simple, Speed and Action.
type scheduler[T comparable] struct {
	queue      *EventQueue[T]
	repeat     mapset.Set[T]
	current    T
	hasCurrent bool
}

func newScheduler[T comparable]() scheduler[T] {
	return scheduler[T]{
		queue:  NewEventQueue[T](),
		repeat: mapset.New[T](),
	}
}

// Time returns the current time, the time of the last returned actor
func (s *scheduler[T]) Time() float64 {
	return s.queue.Time()
}

// TimeOf returns the absolute time a pending actor is scheduled for
func (s *scheduler[T]) TimeOf(item T) (float64, bool) {
	return s.queue.EventTime(item)
}

// Len returns the number of pending actors
func (s *scheduler[T]) Len() int {
	return s.queue.Len()
}

// Current returns the actor most recently returned by Next
func (s *scheduler[T]) Current() (T, bool) {
	return s.current, s.hasCurrent
}

// IsRepeating reports whether item is rescheduled automatically
func (s *scheduler[T]) IsRepeating(item T) bool {
	return s.repeat.Has(item)
}

// AddAfter schedules item delay time units from now. Use it to re-add a
// non-repeating actor after it acted.
func (s *scheduler[T]) AddAfter(item T, repeat bool, delay float64) {
	s.queue.Add(item, delay)
	if repeat {
		s.repeat.Put(item)
	}
}

// Remove purges item from the queue and the repeat set, and clears it as the
// current actor. Removing an absent item is a no-op that returns false.
func (s *scheduler[T]) Remove(item T) bool {
	found := s.queue.Remove(item)
	if s.repeat.Has(item) {
		s.repeat.Remove(item)
		found = true
	}
	if s.hasCurrent && s.current == item {
		s.clearCurrent()
	}
	return found
}

// Clear drops every pending actor and the repeat set
func (s *scheduler[T]) Clear() {
	s.queue.Clear()
	s.repeat = mapset.New[T]()
	s.clearCurrent()
}

func (s *scheduler[T]) clearCurrent() {
	var zero T
	s.current = zero
	s.hasCurrent = false
}

// reschedule re-adds the current actor if it repeats and the caller did not
// already schedule it. An actor with no finite delay stops repeating.
func (s *scheduler[T]) reschedule(delay float64) bool {
	if !s.hasCurrent || !s.repeat.Has(s.current) {
		return false
	}
	if math.IsInf(delay, 0) || math.IsNaN(delay) {
		// a stalled actor would drag the clock to infinity
		s.repeat.Remove(s.current)
		return false
	}
	if _, pending := s.queue.EventTime(s.current); pending {
		return false
	}
	s.queue.Add(s.current, delay)
	return true
}

func (s *scheduler[T]) next() (T, bool) {
	item, ok := s.queue.Get()
	if !ok {
		s.clearCurrent()
		return item, false
	}
	s.current = item
	s.hasCurrent = true
	return item, true
}

// Simple is a round-robin scheduler: every actor acts at the current time,
// repeating actors rejoin the back of the line.
type Simple[T comparable] struct {
	scheduler[T]
}

// NewSimple creates an empty Simple scheduler
func NewSimple[T comparable]() *Simple[T] {
	return &Simple[T]{scheduler: newScheduler[T]()}
}

// Add inserts item at the current time
func (s *Simple[T]) Add(item T, repeat bool) {
	s.AddAfter(item, repeat, 0)
}

// Next returns the next actor; ok is false when nothing is scheduled
func (s *Simple[T]) Next() (T, bool) {
	s.reschedule(0)
	return s.next()
}

// Speeder is an actor with a speed stat
type Speeder interface {
	comparable
	Speed() float64
}

// Speed schedules each actor Duration(Speed()) after its previous turn.
type Speed[T Speeder] struct {
	scheduler[T]
}

// NewSpeed creates an empty Speed scheduler
func NewSpeed[T Speeder]() *Speed[T] {
	return &Speed[T]{scheduler: newScheduler[T]()}
}

// Add inserts item at the current time. Its later turns are spaced by
// Duration(item.Speed()).
func (s *Speed[T]) Add(item T, repeat bool) {
	s.AddAfter(item, repeat, 0)
}

// Next returns the next actor; ok is false when nothing is scheduled
func (s *Speed[T]) Next() (T, bool) {
	if s.hasCurrent {
		s.reschedule(Duration(s.current.Speed()))
	}
	return s.next()
}

// DefaultActionDuration is used by Action when no duration was set.
const DefaultActionDuration = 1.0

// Action lets the current actor declare how long its action took through
// SetDuration; repeating actors come back after that long.
type Action[T comparable] struct {
	scheduler[T]
	duration float64
}

// NewAction creates an empty Action scheduler
func NewAction[T comparable]() *Action[T] {
	return &Action[T]{scheduler: newScheduler[T](), duration: DefaultActionDuration}
}

// Add inserts item at the current time
func (s *Action[T]) Add(item T, repeat bool) {
	s.AddAfter(item, repeat, 0)
}

// SetDuration sets how long the current actor's action takes. Ignored when
// there is no current actor.
func (s *Action[T]) SetDuration(d float64) {
	if s.hasCurrent {
		s.duration = d
	}
}

// Next returns the next actor; ok is false when nothing is scheduled
func (s *Action[T]) Next() (T, bool) {
	if s.hasCurrent {
		s.reschedule(s.duration)
		s.duration = DefaultActionDuration
	}
	return s.next()
}

// Remove also resets the pending duration when the current actor is removed
func (s *Action[T]) Remove(item T) bool {
	if s.hasCurrent && s.current == item {
		s.duration = DefaultActionDuration
	}
	return s.scheduler.Remove(item)
}

// Clear also resets the pending duration
func (s *Action[T]) Clear() {
	s.duration = DefaultActionDuration
	s.scheduler.Clear()
}
