package clock

import "time"

// Timer is a scheduled callback waiting for its host loop to time it.
type Timer struct {
	Handle Handle
	Delay  time.Duration
}

// Queue is a Scheduler for hosts that own their own event loop (bubbletea).
// Schedule only records the callback; the host drains the new timers, waits
// for each delay on its own loop and calls Fire with the handle.
type Queue struct {
	next      Handle
	callbacks map[Handle]func()
	fresh     []Timer
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{callbacks: make(map[Handle]func())}
}

func (q *Queue) Schedule(d time.Duration, fn func()) Handle {
	q.next++
	q.callbacks[q.next] = fn
	q.fresh = append(q.fresh, Timer{Handle: q.next, Delay: d})
	return q.next
}

func (q *Queue) Cancel(h Handle) {
	delete(q.callbacks, h)
}

// Drain returns the timers scheduled since the last Drain.
func (q *Queue) Drain() []Timer {
	out := q.fresh
	q.fresh = nil
	return out
}

// Fire runs the callback for h if it is still pending. It reports whether a
// callback ran.
func (q *Queue) Fire(h Handle) bool {
	fn, ok := q.callbacks[h]
	if !ok {
		return false
	}
	delete(q.callbacks, h)
	fn()
	return true
}

// Len reports the number of callbacks still pending.
func (q *Queue) Len() int { return len(q.callbacks) }
