package scoring

import (
	"sync"
)

// ScoreStorage defines the interface for loading and saving round history.
// This allows for mocking the storage layer during tests.
type ScoreStorage interface {
	// LoadAll loads all entries.
	LoadAll() ([]ScoreHistoryEntry, error)
	// SaveAll replaces the stored entries.
	SaveAll(entries []ScoreHistoryEntry) error
}

// MemoryStorage keeps round history for the lifetime of the process only.
// It is safe for concurrent use.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries []ScoreHistoryEntry
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// LoadAll returns a copy of the stored entries.
func (m *MemoryStorage) LoadAll() ([]ScoreHistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ScoreHistoryEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// SaveAll stores a copy of entries, overwriting existing data.
func (m *MemoryStorage) SaveAll(entries []ScoreHistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make([]ScoreHistoryEntry, len(entries))
	copy(m.entries, entries)
	return nil
}
