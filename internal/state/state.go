package state

import (
	"context"
	"time"

	"go-match/internal/clock"
	"go-match/internal/deck"

	"github.com/looplab/fsm"
)

// FSM states.
const (
	Idle        = "idle"
	OneSelected = "oneSelected"
	Evaluating  = "evaluating"
	Locked      = "locked"
	Complete    = "complete"
)

// FlipDelay is how long a mismatched pair stays face up.
const FlipDelay = 750 * time.Millisecond

// noTile marks an empty selection slot.
const noTile = -1

// EventKind is the outcome of a selection.
type EventKind int

const (
	Ignored EventKind = iota
	FirstSelected
	PairEvaluated
	RoundComplete
)

func (k EventKind) String() string {
	switch k {
	case Ignored:
		return "ignored"
	case FirstSelected:
		return "firstSelected"
	case PairEvaluated:
		return "pairEvaluated"
	case RoundComplete:
		return "roundComplete"
	default:
		return "unknown"
	}
}

// Event is returned by Select. Match is set for evaluated pairs (and the
// final pair of a round). Started is true on the first accepted selection of
// the round only.
type Event struct {
	Kind    EventKind
	Match   bool
	Started bool
}

// State is the flip resolution engine for one round.
type State struct {
	Tiles      deck.Deck
	PairCount  int
	Attempts   int
	PairsFound int
	Started    bool
	First      int
	Second     int
	FSM        *fsm.FSM

	// OnRevert is called after a mismatched pair has been turned back over.
	OnRevert func(first, second int)

	scheduler clock.Scheduler
	delay     time.Duration
	revert    clock.Handle
}

// NewState creates an engine over d. Mismatch reverts are scheduled on sched.
func NewState(d deck.Deck, sched clock.Scheduler) *State {
	s := &State{
		Tiles:     d,
		PairCount: d.PairCount(),
		First:     noTile,
		Second:    noTile,
		scheduler: sched,
		delay:     FlipDelay,
	}

	s.FSM = fsm.NewFSM(
		Idle,
		getStateTransitions(),
		getStateCallbacks(s),
	)

	return s
}

// Select flips tile id if the engine accepts it and reports the outcome.
func (s *State) Select(id int) Event {
	if !s.IsSelectable(id) {
		return Event{Kind: Ignored}
	}

	started := !s.Started
	s.Started = true

	if err := s.FSM.Event(context.Background(), "select", id); err != nil {
		return Event{Kind: Ignored}
	}

	ev := Event{Started: started}
	switch s.FSM.Current() {
	case OneSelected:
		ev.Kind = FirstSelected
	case Idle:
		ev.Kind, ev.Match = PairEvaluated, true
	case Locked:
		ev.Kind = PairEvaluated
	case Complete:
		ev.Kind, ev.Match = RoundComplete, true
	}
	return ev
}

// Close cancels a pending revert. The engine must not be used afterwards.
func (s *State) Close() {
	if s.revert != 0 {
		s.scheduler.Cancel(s.revert)
		s.revert = 0
	}
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "select", Src: []string{Idle}, Dst: OneSelected},
		{Name: "select", Src: []string{OneSelected}, Dst: Evaluating},

		{Name: "match", Src: []string{Evaluating}, Dst: Idle},
		{Name: "finish", Src: []string{Evaluating}, Dst: Complete},
		{Name: "mismatch", Src: []string{Evaluating}, Dst: Locked},

		{Name: "revert", Src: []string{Locked}, Dst: Idle},
	}
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_" + OneSelected: func(ctx context.Context, e *fsm.Event) {
			id := e.Args[0].(int)
			s.Tiles[id].State = deck.Flipped
			s.First = id
		},
		"enter_" + Evaluating: func(ctx context.Context, e *fsm.Event) {
			id := e.Args[0].(int)
			s.Tiles[id].State = deck.Flipped
			s.Second = id
			s.Attempts++

			if !s.selectionMatches() {
				e.FSM.Event(ctx, "mismatch")
				return
			}

			s.Tiles[s.First].State = deck.Matched
			s.Tiles[s.Second].State = deck.Matched
			s.clearSelection()
			s.PairsFound++

			if s.PairsFound == s.PairCount {
				e.FSM.Event(ctx, "finish")
				return
			}
			e.FSM.Event(ctx, "match")
		},
		"enter_" + Locked: func(ctx context.Context, e *fsm.Event) {
			s.revert = s.scheduler.Schedule(s.delay, s.revertSelection)
		},
	}
}

// revertSelection turns a mismatched pair face down and unlocks the engine.
// It runs from the scheduler only.
func (s *State) revertSelection() {
	s.revert = 0
	first, second := s.First, s.Second
	if first != noTile {
		s.Tiles[first].State = deck.FaceDown
	}
	if second != noTile {
		s.Tiles[second].State = deck.FaceDown
	}
	s.clearSelection()

	_ = s.FSM.Event(context.Background(), "revert")

	if s.OnRevert != nil {
		s.OnRevert(first, second)
	}
}
