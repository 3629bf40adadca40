package game

import "time"

// RoundStart is emitted on the first accepted selection of a round.
type RoundStart struct {
	RoundID   string
	Timestamp time.Time
}

// PairMatch is emitted for every matched pair, the last one included.
type PairMatch struct {
	RoundID    string
	PairsFound int
	Attempts   int
}

// PairMiss is emitted once a mismatched pair has been turned back over.
type PairMiss struct {
	RoundID  string
	Attempts int
	First    int
	Second   int
}

// Summary describes a completed round.
type Summary struct {
	RoundID             string
	Layout              string
	PairsFound          int
	Attempts            int
	Elapsed             time.Duration
	ElapsedSeconds      int
	ElapsedMilliseconds int64
	Best                bool
}

// Snapshot is the read-only view of the current round.
type Snapshot struct {
	Attempts   int  `json:"attempts"`
	PairsFound int  `json:"pairsFound"`
	Started    bool `json:"started"`
}

// Listener receives round lifecycle notifications. Calls happen on the
// control flow that drives the session.
type Listener interface {
	RoundStarted(RoundStart)
	PairMatched(PairMatch)
	PairMismatched(PairMiss)
	RoundCompleted(Summary)
}

// NopListener ignores every notification. Embed it to implement part of Listener.
type NopListener struct{}

func (NopListener) RoundStarted(RoundStart) {}
func (NopListener) PairMatched(PairMatch)   {}
func (NopListener) PairMismatched(PairMiss) {}
func (NopListener) RoundCompleted(Summary)  {}

// Listeners fans notifications out in order.
type Listeners []Listener

func (ls Listeners) RoundStarted(e RoundStart) {
	for _, l := range ls {
		l.RoundStarted(e)
	}
}

func (ls Listeners) PairMatched(e PairMatch) {
	for _, l := range ls {
		l.PairMatched(e)
	}
}

func (ls Listeners) PairMismatched(e PairMiss) {
	for _, l := range ls {
		l.PairMismatched(e)
	}
}

func (ls Listeners) RoundCompleted(e Summary) {
	for _, l := range ls {
		l.RoundCompleted(e)
	}
}
