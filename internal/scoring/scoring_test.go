package scoring

import (
	"errors"
	"testing"
	"time"
)

// MockScoreStorage is a mock implementation of the ScoreStorage interface
// that stores entries in memory and can simulate failures.
type MockScoreStorage struct {
	Entries []ScoreHistoryEntry
	err     error
}

func (m *MockScoreStorage) LoadAll() ([]ScoreHistoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.Entries, nil
}

func (m *MockScoreStorage) SaveAll(entries []ScoreHistoryEntry) error {
	if m.err != nil {
		return m.err
	}
	m.Entries = entries
	return nil
}

var recordedAt = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// TestInitScoring_NewLayout verifies scoring for a layout with no history.
func TestInitScoring_NewLayout(t *testing.T) {
	scoring, err := InitScoring("4x3/6", &MockScoreStorage{})
	if err != nil {
		t.Fatalf("InitScoring returned an unexpected error: %v", err)
	}

	if scoring.GetNumPrevious() != 0 {
		t.Errorf("expected 0 previous rounds, got %d", scoring.GetNumPrevious())
	}
	if scoring.GetBest() != nil {
		t.Errorf("expected nil best entry, got %v", scoring.GetBest())
	}
	if scoring.GotBest() {
		t.Error("GotBest should be false before a round is recorded")
	}
}

// TestInitScoring_WithHistory checks layout filtering and best selection.
func TestInitScoring_WithHistory(t *testing.T) {
	mockStorage := &MockScoreStorage{
		Entries: []ScoreHistoryEntry{
			{RoundID: "other", Layout: "4x5/6", Attempts: 6},
			{RoundID: "slow", Layout: "4x3/6", Attempts: 9, ElapsedMs: 30000},
			{RoundID: "fast", Layout: "4x3/6", Attempts: 9, ElapsedMs: 20000},
			{RoundID: "worst", Layout: "4x3/6", Attempts: 14, ElapsedMs: 10000},
		},
	}

	scoring, err := InitScoring("4x3/6", mockStorage)
	if err != nil {
		t.Fatalf("InitScoring returned an unexpected error: %v", err)
	}

	if scoring.GetNumPrevious() != 3 {
		t.Errorf("expected 3 previous rounds, got %d", scoring.GetNumPrevious())
	}
	best := scoring.GetBest()
	if best == nil || best.RoundID != "fast" {
		t.Fatalf("expected best round 'fast', got %+v", best)
	}
}

func TestInitScoring_LoadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := InitScoring("4x3/6", &MockScoreStorage{err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped storage error, got %v", err)
	}
}

func TestRecord_SavesAndRanks(t *testing.T) {
	mockStorage := &MockScoreStorage{
		Entries: []ScoreHistoryEntry{
			{RoundID: "a", Layout: "4x3/6", Attempts: 8, ElapsedMs: 15000},
			{RoundID: "b", Layout: "4x3/6", Attempts: 12, ElapsedMs: 9000},
		},
	}
	scoring, _ := InitScoring("4x3/6", mockStorage)

	if err := scoring.Record("c", 10, 6, 12*time.Second, recordedAt); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if len(mockStorage.Entries) != 3 {
		t.Fatalf("expected 3 stored entries, got %d", len(mockStorage.Entries))
	}
	cur := scoring.Current()
	if cur.ElapsedMs != 12000 || cur.Layout != "4x3/6" || cur.Timestamp != "2024-05-01T10:00:00Z" {
		t.Errorf("unexpected current entry: %+v", cur)
	}
	if scoring.GotBest() {
		t.Error("10 attempts should not beat 8")
	}

	entries := scoring.GetNScoreEntries(5)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	order := []string{entries[0].RoundID, entries[1].RoundID, entries[2].RoundID}
	if order[0] != "a" || order[1] != "c" || order[2] != "b" {
		t.Errorf("unexpected ranking %v", order)
	}

	if top := scoring.GetNScoreEntries(1); len(top) != 1 || top[0].RoundID != "a" {
		t.Errorf("unexpected top entry %+v", top)
	}
}

func TestRecord_NewBest(t *testing.T) {
	mockStorage := &MockScoreStorage{
		Entries: []ScoreHistoryEntry{{RoundID: "a", Layout: "4x3/6", Attempts: 8, ElapsedMs: 15000}},
	}
	scoring, _ := InitScoring("4x3/6", mockStorage)
	_ = scoring.Record("b", 8, 6, 15*time.Second, recordedAt)

	if !scoring.GotBest() {
		t.Error("tying the best round should count as a best")
	}
}

func TestSaveEntries_Idempotent(t *testing.T) {
	mockStorage := &MockScoreStorage{}
	scoring, _ := InitScoring("4x3/6", mockStorage)

	if err := scoring.SaveEntries(); err != nil || len(mockStorage.Entries) != 0 {
		t.Fatalf("SaveEntries without a round should be a no-op, got %v / %d", err, len(mockStorage.Entries))
	}

	_ = scoring.Record("r1", 7, 6, time.Second, recordedAt)
	_ = scoring.SaveEntries()

	if len(mockStorage.Entries) != 1 {
		t.Errorf("round saved twice: %d entries", len(mockStorage.Entries))
	}
}

func TestMemoryStorage_SaveAndLoad(t *testing.T) {
	storage := NewMemoryStorage()

	entries, err := storage.LoadAll()
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty storage, got %d entries, err %v", len(entries), err)
	}

	in := []ScoreHistoryEntry{{RoundID: "x", Attempts: 6}, {RoundID: "y", Attempts: 9}}
	if err := storage.SaveAll(in); err != nil {
		t.Fatalf("SaveAll returned error: %v", err)
	}
	in[0].Attempts = 100

	loaded, _ := storage.LoadAll()
	if len(loaded) != 2 || loaded[0].Attempts != 6 {
		t.Errorf("storage should keep its own copy, got %+v", loaded)
	}

	loaded[1].Attempts = 100
	again, _ := storage.LoadAll()
	if again[1].Attempts != 9 {
		t.Error("LoadAll should return a copy")
	}
}
