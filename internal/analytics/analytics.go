// Package analytics reports round lifecycle notifications as structured log
// events, using the event names the ad unit's tracking expects.
package analytics

import (
	"time"

	"go-match/internal/clock"
	"go-match/internal/game"

	"github.com/rs/zerolog"
)

// Tracking event names.
const (
	EventGameStart    = "bm_game_start"
	EventPairMatch    = "bm_pair_match"
	EventPairMiss     = "bm_pair_miss"
	EventGameComplete = "bm_game_complete"
	EventExitClick    = "bm_exit_click"
)

// ExitClick is the payload of a click-through. The counters come from the
// round snapshot at click time.
type ExitClick struct {
	Attempts   int
	PairsFound int
	Timestamp  time.Time
	URL        string
}

// Recorder is a game.Listener writing one log event per notification.
type Recorder struct {
	log   zerolog.Logger
	clock clock.Clock

	Completed int
}

var _ game.Listener = (*Recorder)(nil)

// NewRecorder creates a Recorder logging to log.
func NewRecorder(log zerolog.Logger, c clock.Clock) *Recorder {
	if c == nil {
		c = clock.Real{}
	}
	return &Recorder{log: log, clock: c}
}

func (r *Recorder) RoundStarted(e game.RoundStart) {
	r.log.Info().
		Str("event", EventGameStart).
		Str("round", e.RoundID).
		Int64("ts", e.Timestamp.UnixMilli()).
		Send()
}

func (r *Recorder) PairMatched(e game.PairMatch) {
	r.log.Info().
		Str("event", EventPairMatch).
		Str("round", e.RoundID).
		Int("pairsFound", e.PairsFound).
		Int("attempts", e.Attempts).
		Send()
}

func (r *Recorder) PairMismatched(e game.PairMiss) {
	r.log.Debug().
		Str("event", EventPairMiss).
		Str("round", e.RoundID).
		Int("attempts", e.Attempts).
		Ints("tiles", []int{e.First, e.Second}).
		Send()
}

func (r *Recorder) RoundCompleted(e game.Summary) {
	r.Completed++
	r.log.Info().
		Str("event", EventGameComplete).
		Str("round", e.RoundID).
		Str("layout", e.Layout).
		Int("attempts", e.Attempts).
		Int64("timeMs", e.ElapsedMilliseconds).
		Bool("best", e.Best).
		Send()
}

// ExitClicked reports a click-through carrying the round snapshot and returns
// the payload sent.
func (r *Recorder) ExitClicked(snap game.Snapshot, url string) ExitClick {
	click := ExitClick{
		Attempts:   snap.Attempts,
		PairsFound: snap.PairsFound,
		Timestamp:  r.clock.Now(),
		URL:        url,
	}
	r.log.Info().
		Str("event", EventExitClick).
		Int("attempts", click.Attempts).
		Int("pairsFound", click.PairsFound).
		Int64("ts", click.Timestamp.UnixMilli()).
		Str("url", click.URL).
		Send()
	return click
}
