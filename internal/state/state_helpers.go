package state

import "go-match/internal/deck"

// IsSelectable reports whether Select(id) would be accepted.
func (s *State) IsSelectable(id int) bool {
	if !s.FSM.Can("select") {
		return false
	}
	if id < 0 || id >= len(s.Tiles) {
		return false
	}
	return s.Tiles[id].State == deck.FaceDown
}

// IsLocked reports whether a mismatched pair is waiting to be reverted.
func (s *State) IsLocked() bool {
	return s.FSM.Is(Locked)
}

// IsComplete reports whether every pair has been found.
func (s *State) IsComplete() bool {
	return s.FSM.Is(Complete)
}

// HasPendingRevert reports whether a revert callback is scheduled.
func (s *State) HasPendingRevert() bool {
	return s.revert != 0
}

// Selection returns the selected tile ids; -1 marks an empty slot.
func (s *State) Selection() (first, second int) {
	return s.First, s.Second
}

// FlippedCount returns the number of tiles face up and not yet matched.
func (s *State) FlippedCount() int {
	n := 0
	for _, t := range s.Tiles {
		if t.State == deck.Flipped {
			n++
		}
	}
	return n
}

func (s *State) selectionMatches() bool {
	return s.Tiles[s.First].Value == s.Tiles[s.Second].Value
}

func (s *State) clearSelection() {
	s.First = noTile
	s.Second = noTile
}
