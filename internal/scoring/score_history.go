package scoring

import (
	"sort"
)

// ScoreHistory holds the completed rounds played on one board layout,
// including the round currently being recorded.
type ScoreHistory struct {
	Entries      []ScoreHistoryEntry
	BestEntry    *ScoreHistoryEntry
	CurrentScore *ScoreHistoryEntry
	Rounds       int
}

// ScoreHistoryEntry is the summary of one completed round.
type ScoreHistoryEntry struct {
	RoundID    string `json:"round_id"`
	Layout     string `json:"layout"`
	Attempts   int    `json:"attempts"`
	PairsFound int    `json:"pairs_found"`
	ElapsedMs  int64  `json:"elapsed_ms"`
	Timestamp  string `json:"timestamp"`
}

// Better reports whether e beats other: fewer attempts first, then less time.
func (e ScoreHistoryEntry) Better(other ScoreHistoryEntry) bool {
	if e.Attempts != other.Attempts {
		return e.Attempts < other.Attempts
	}
	return e.ElapsedMs < other.ElapsedMs
}

// GetBestEntry returns the best previous entry.
func (sh ScoreHistory) GetBestEntry() *ScoreHistoryEntry {
	return sh.BestEntry
}

// GetNScoreEntries returns the top N entries, the current one included, best first.
func (sh ScoreHistory) GetNScoreEntries(n int) []ScoreHistoryEntry {
	all := make([]ScoreHistoryEntry, 0, len(sh.Entries)+1)
	all = append(all, sh.Entries...)
	if sh.CurrentScore != nil {
		all = append(all, *sh.CurrentScore)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Better(all[j])
	})

	if len(all) < n {
		return all
	}
	return all[:n]
}

// GotBest checks if the current round ties or beats the previous best.
func (sh ScoreHistory) GotBest() bool {
	if sh.CurrentScore == nil {
		return false
	}
	if sh.BestEntry == nil {
		return true
	}
	return !sh.BestEntry.Better(*sh.CurrentScore)
}
