package timer

import (
	"time"

	"go-match/internal/clock"
)

// Timer tracks the elapsed time of one round, from the first selection until
// Stop. Elapsed time always comes from clock timestamps.
type Timer struct {
	clock     clock.Clock
	startedAt time.Time
	stoppedAt time.Time
	started   bool
	running   bool
}

// New creates a stopped timer reading c.
func New(c clock.Clock) *Timer {
	return &Timer{clock: c}
}

// Start begins accounting. Calls after the first have no effect.
func (t *Timer) Start() {
	if t.started {
		return
	}
	t.startedAt = t.clock.Now()
	t.started = true
	t.running = true
}

// Stop freezes accounting at the current time.
func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.stoppedAt = t.clock.Now()
	t.running = false
}

// Started reports whether Start has been called.
func (t *Timer) Started() bool { return t.started }

// Running reports whether the timer is counting.
func (t *Timer) Running() bool { return t.running }

// StartedAt returns the time of the first Start, or the zero time.
func (t *Timer) StartedAt() time.Time { return t.startedAt }

// ElapsedDuration returns the time accounted so far.
func (t *Timer) ElapsedDuration() time.Duration {
	switch {
	case !t.started:
		return 0
	case t.running:
		return t.clock.Now().Sub(t.startedAt)
	default:
		return t.stoppedAt.Sub(t.startedAt)
	}
}

// Elapsed returns the accounted time in whole seconds.
func (t *Timer) Elapsed() int {
	return int(t.ElapsedDuration() / time.Second)
}
