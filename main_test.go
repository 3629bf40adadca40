package main

import (
	"strings"
	"testing"

	"go-match/internal/clock"
	"go-match/internal/config"
	"go-match/internal/deck"
	"go-match/internal/layout"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

func newTestModel(t *testing.T) *LocalState {
	t.Helper()
	m, err := initialModel(config.Options{Viewport: layout.DefaultViewport(), Seed: 7}, zerolog.Nop())
	if err != nil {
		t.Fatalf("initialModel: %v", err)
	}
	m.Update(preloadDoneMsg{})
	return m
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func TestModel_SelectionHeldWhileLoading(t *testing.T) {
	m, err := initialModel(config.Options{Viewport: layout.DefaultViewport(), Seed: 7}, zerolog.Nop())
	if err != nil {
		t.Fatalf("initialModel: %v", err)
	}

	m.Update(enter())
	if m.Session.Snapshot().Started {
		t.Error("selection during the preloader should be ignored")
	}
	if !strings.Contains(m.View(), "Loading") {
		t.Error("expected the preloader view")
	}
}

func TestModel_CursorMovement(t *testing.T) {
	m := newTestModel(t)
	cols := m.Session.Config().Columns

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.cursor != 0 {
		t.Errorf("cursor should stay at 0, got %d", m.cursor)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1+cols {
		t.Errorf("expected cursor %d, got %d", 1+cols, m.cursor)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.cursor != 0 {
		t.Errorf("expected cursor back at 0, got %d", m.cursor)
	}
}

func TestModel_MismatchRevertsOnFire(t *testing.T) {
	m := newTestModel(t)
	tiles := m.Session.Tiles()

	other := -1
	for i := 1; i < len(tiles); i++ {
		if tiles[i].Value != tiles[0].Value {
			other = i
			break
		}
	}

	m.Update(enter())
	m.cursor = other
	m.Update(enter())

	if m.Queue.Len() != 1 {
		t.Fatalf("expected one pending revert, got %d", m.Queue.Len())
	}
	if len(m.Queue.Drain()) != 0 {
		t.Error("update should have turned new timers into commands")
	}

	m.Update(fireMsg(clock.Handle(1)))
	for _, tile := range m.Session.Tiles() {
		if tile.State != deck.FaceDown {
			t.Fatalf("tile %d should be face down after the revert", tile.ID)
		}
	}
	if got := m.Session.Snapshot().Attempts; got != 1 {
		t.Errorf("expected 1 attempt, got %d", got)
	}
}

func TestModel_CompleteShowsSummary(t *testing.T) {
	m := newTestModel(t)
	tiles := m.Session.Tiles()

	pairs := make(map[string][]int)
	for _, tile := range tiles {
		pairs[tile.Value] = append(pairs[tile.Value], tile.ID)
	}
	for _, ids := range pairs {
		m.cursor = ids[0]
		m.Update(enter())
		m.cursor = ids[1]
		m.Update(enter())
	}

	if !m.overlay {
		t.Fatal("expected the completion overlay")
	}
	want := "You matched 6 pairs in 6 attempts"
	if !strings.Contains(m.View(), want) {
		t.Errorf("summary missing %q", want)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.overlay || m.Session.Rounds != 2 {
		t.Errorf("reset should deal a new round, rounds=%d overlay=%v", m.Session.Rounds, m.overlay)
	}
}

func TestModel_ExitClickNotice(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if !strings.Contains(m.notice, "No click-through URL") {
		t.Errorf("unexpected notice %q", m.notice)
	}

	m.ClickURL = "https://example.com"
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if m.notice != "Visit https://example.com" {
		t.Errorf("unexpected notice %q", m.notice)
	}
}
