package scoring

import (
	"fmt"
	"sort"
	"time"
)

// Scoring records the result of a round against the previous rounds played
// on the same layout.
type Scoring struct {
	storage ScoreStorage
	history ScoreHistory
	layout  string
}

// InitScoring loads the history for layout from storage.
func InitScoring(layout string, storage ScoreStorage) (*Scoring, error) {
	s := &Scoring{
		storage: storage,
		layout:  layout,
	}

	allEntries, err := s.storage.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("could not load round history: %w", err)
	}

	filtered := []ScoreHistoryEntry{}
	for _, entry := range allEntries {
		if entry.Layout == layout {
			filtered = append(filtered, entry)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Better(filtered[j])
	})

	s.history.Entries = filtered
	s.history.Rounds = len(filtered)
	if len(filtered) > 0 {
		s.history.BestEntry = &filtered[0]
	}

	return s, nil
}

// Record sets the completed round as the current entry and persists it.
func (s *Scoring) Record(roundID string, attempts, pairsFound int, elapsed time.Duration, at time.Time) error {
	s.history.CurrentScore = &ScoreHistoryEntry{
		RoundID:    roundID,
		Layout:     s.layout,
		Attempts:   attempts,
		PairsFound: pairsFound,
		ElapsedMs:  elapsed.Milliseconds(),
		Timestamp:  at.Format(time.RFC3339),
	}
	return s.SaveEntries()
}

// SaveEntries appends the current entry to storage.
func (s *Scoring) SaveEntries() error {
	if s.history.CurrentScore == nil {
		return nil
	}

	allEntries, err := s.storage.LoadAll()
	if err != nil {
		return fmt.Errorf("could not load rounds for saving: %w", err)
	}

	for _, entry := range allEntries {
		if entry.RoundID == s.history.CurrentScore.RoundID {
			return nil
		}
	}

	return s.storage.SaveAll(append(allEntries, *s.history.CurrentScore))
}

// Layout returns the layout key the history is filtered on.
func (s *Scoring) Layout() string { return s.layout }

// Current returns the recorded round, or nil before Record.
func (s *Scoring) Current() *ScoreHistoryEntry { return s.history.CurrentScore }

func (s *Scoring) GetBest() *ScoreHistoryEntry {
	return s.history.GetBestEntry()
}

// GetNumPrevious returns the number of earlier rounds on this layout.
func (s *Scoring) GetNumPrevious() int {
	return s.history.Rounds
}

func (s *Scoring) GotBest() bool {
	return s.history.GotBest()
}

func (s *Scoring) GetNScoreEntries(n int) []ScoreHistoryEntry {
	return s.history.GetNScoreEntries(n)
}
