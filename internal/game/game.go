package game

import (
	"go-match/internal/clock"
	"go-match/internal/deck"
	"go-match/internal/layout"
	"go-match/internal/scoring"
	"go-match/internal/state"
	"go-match/internal/timer"
)

// Game is one round: the dealt deck, its flip engine and its timer,
// independent of the UI.
type Game struct {
	ID     string
	Config layout.RoundConfig
	State  *state.State
	Timer  *timer.Timer
	Score  *scoring.Scoring
}

// NewGame initializes a round over d.
func NewGame(id string, cfg layout.RoundConfig, d deck.Deck, c clock.Clock, sched clock.Scheduler, sc *scoring.Scoring) *Game {
	return &Game{
		ID:     id,
		Config: cfg,
		State:  state.NewState(d, sched),
		Timer:  timer.New(c),
		Score:  sc,
	}
}

// HandleSelect routes a selection into the engine and keeps the timer in step.
func (g *Game) HandleSelect(id int) state.Event {
	ev := g.State.Select(id)
	if ev.Started {
		g.Timer.Start()
	}
	if ev.Kind == state.RoundComplete {
		g.Timer.Stop()
	}
	return ev
}

// Close cancels the pending revert and stops the timer.
func (g *Game) Close() {
	g.State.Close()
	g.Timer.Stop()
}

// IsComplete reports whether every pair has been found.
func (g *Game) IsComplete() bool {
	return g.State.IsComplete()
}

// Snapshot returns the round counters.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Attempts:   g.State.Attempts,
		PairsFound: g.State.PairsFound,
		Started:    g.State.Started,
	}
}

// Summary returns the round result so far.
func (g *Game) Summary() Summary {
	elapsed := g.Timer.ElapsedDuration()
	sum := Summary{
		RoundID:             g.ID,
		Layout:              g.Config.Key(),
		PairsFound:          g.State.PairsFound,
		Attempts:            g.State.Attempts,
		Elapsed:             elapsed,
		ElapsedSeconds:      g.Timer.Elapsed(),
		ElapsedMilliseconds: elapsed.Milliseconds(),
	}
	if g.Score != nil {
		sum.Best = g.Score.GotBest()
	}
	return sum
}
