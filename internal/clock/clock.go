package clock

import (
	"sort"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Handle identifies a scheduled callback. The zero Handle never refers to a
// pending callback.
type Handle uint64

// Scheduler runs callbacks after a delay. Callbacks are expected to run on the
// same control flow that owns the game state.
type Scheduler interface {
	// Schedule registers fn to run once after d and returns its handle.
	Schedule(d time.Duration, fn func()) Handle
	// Cancel drops a pending callback. Unknown or already fired handles are ignored.
	Cancel(h Handle)
}

// Real is the wall clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

type pending struct {
	handle Handle
	due    time.Time
	fn     func()
}

// Fake is a manually advanced Clock and Scheduler for tests.
type Fake struct {
	now     time.Time
	next    Handle
	pending []pending
}

// NewFake creates a fake clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time { return f.now }

func (f *Fake) Schedule(d time.Duration, fn func()) Handle {
	f.next++
	f.pending = append(f.pending, pending{handle: f.next, due: f.now.Add(d), fn: fn})
	return f.next
}

func (f *Fake) Cancel(h Handle) {
	for i, p := range f.pending {
		if p.handle == h {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of callbacks not yet fired.
func (f *Fake) Pending() int { return len(f.pending) }

// Advance moves the clock forward by d, firing every callback that falls due
// in schedule order. Callbacks see Now() equal to their due time.
func (f *Fake) Advance(d time.Duration) {
	target := f.now.Add(d)
	for {
		sort.SliceStable(f.pending, func(i, j int) bool {
			return f.pending[i].due.Before(f.pending[j].due)
		})
		if len(f.pending) == 0 || f.pending[0].due.After(target) {
			break
		}
		p := f.pending[0]
		f.pending = f.pending[1:]
		f.now = p.due
		p.fn()
	}
	f.now = target
}
