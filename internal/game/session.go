package game

import (
	"fmt"
	"math/rand"

	"go-match/internal/clock"
	"go-match/internal/deck"
	"go-match/internal/layout"
	"go-match/internal/scoring"
	"go-match/internal/state"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionOptions configures a Session. Zero values get working defaults.
type SessionOptions struct {
	Viewport     layout.Viewport
	Symbols      []string
	Rand         *rand.Rand
	Clock        clock.Clock
	Scheduler    clock.Scheduler
	ScoreStorage scoring.ScoreStorage
	Listener     Listener
	Logger       *zerolog.Logger
	// NewID names rounds; defaults to random UUIDs.
	NewID func() string
}

// Session is the lifecycle controller: it deals rounds, routes selections to
// the current round and notifies the listener.
type Session struct {
	CurrentGame *Game
	Viewport    layout.Viewport
	Rounds      int

	generator *deck.Generator
	clock     clock.Clock
	scheduler clock.Scheduler
	storage   scoring.ScoreStorage
	listener  Listener
	log       zerolog.Logger
	newID     func() string
}

// NewSession creates a session and deals its first round.
func NewSession(opts SessionOptions) (*Session, error) {
	s := &Session{
		Viewport:  opts.Viewport,
		generator: deck.NewGenerator(opts.Symbols, opts.Rand),
		clock:     opts.Clock,
		scheduler: opts.Scheduler,
		storage:   opts.ScoreStorage,
		listener:  opts.Listener,
		newID:     opts.NewID,
	}

	if s.Viewport == (layout.Viewport{}) {
		s.Viewport = layout.DefaultViewport()
	}
	if s.clock == nil {
		s.clock = clock.Real{}
	}
	if s.scheduler == nil {
		s.scheduler = clock.NewQueue()
	}
	if s.storage == nil {
		s.storage = scoring.NewMemoryStorage()
	}
	if s.listener == nil {
		s.listener = NopListener{}
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	} else {
		s.log = zerolog.Nop()
	}

	if err := s.NextGame(); err != nil {
		return nil, err
	}
	return s, nil
}

// NextGame deals a fresh round for the current viewport.
func (s *Session) NextGame() error {
	cfg := layout.ResolveViewport(s.Viewport)

	d, err := s.generator.Generate(cfg.PairCount)
	if err != nil {
		return fmt.Errorf("deal round for %s: %w", s.Viewport, err)
	}

	sc, err := scoring.InitScoring(cfg.Key(), s.storage)
	if err != nil {
		return err
	}

	g := NewGame(s.newID(), cfg, d, s.clock, s.scheduler, sc)
	g.State.OnRevert = func(first, second int) {
		s.listener.PairMismatched(PairMiss{
			RoundID:  g.ID,
			Attempts: g.State.Attempts,
			First:    first,
			Second:   second,
		})
	}

	s.CurrentGame = g
	s.Rounds++

	s.log.Debug().
		Str("round", g.ID).
		Str("viewport", s.Viewport.String()).
		Str("layout", cfg.Key()).
		Msg("round dealt")
	return nil
}

// Select routes a tile selection to the current round.
func (s *Session) Select(id int) state.Event {
	g := s.CurrentGame
	ev := g.HandleSelect(id)

	if ev.Started {
		s.listener.RoundStarted(RoundStart{RoundID: g.ID, Timestamp: g.Timer.StartedAt()})
	}

	if ev.Match {
		s.listener.PairMatched(PairMatch{
			RoundID:    g.ID,
			PairsFound: g.State.PairsFound,
			Attempts:   g.State.Attempts,
		})
	}

	if ev.Kind == state.RoundComplete {
		s.complete(g)
	}
	return ev
}

func (s *Session) complete(g *Game) {
	sum := g.Summary()
	if err := g.Score.Record(g.ID, sum.Attempts, sum.PairsFound, sum.Elapsed, s.clock.Now()); err != nil {
		s.log.Warn().Err(err).Str("round", g.ID).Msg("could not record round")
	}
	sum.Best = g.Score.GotBest()

	s.log.Info().
		Str("round", g.ID).
		Int("attempts", sum.Attempts).
		Int("elapsed_s", sum.ElapsedSeconds).
		Msg("round complete")
	s.listener.RoundCompleted(sum)
}

// Reset discards the current round and deals a new one. A pending revert and
// the running timer are cancelled first.
func (s *Session) Reset() error {
	if s.CurrentGame != nil {
		s.CurrentGame.Close()
	}
	s.log.Debug().Msg("round reset")
	return s.NextGame()
}

// Resize records a new viewport; it applies from the next round.
func (s *Session) Resize(width, height int) {
	s.Viewport = layout.Viewport{Width: width, Height: height}
}

// Snapshot returns the counters of the current round.
func (s *Session) Snapshot() Snapshot {
	return s.CurrentGame.Snapshot()
}

// Tiles returns a render-ready copy of the current deck.
func (s *Session) Tiles() deck.Deck {
	return s.CurrentGame.State.Tiles.Clone()
}

// Config returns the layout of the current round.
func (s *Session) Config() layout.RoundConfig {
	return s.CurrentGame.Config
}

// IsFinished reports whether the current round is complete.
func (s *Session) IsFinished() bool {
	return s.CurrentGame.IsComplete()
}
