package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/match3/internal/registry"
	"github.com/vovakirdan/match3/internal/storage"
)

type fakeLister struct {
	entries []storage.SessionEntry
	err     error
}

func (f fakeLister) RecentSessions(limit int) ([]storage.SessionEntry, error) {
	return f.entries, f.err
}

func session(id int64, gameID string) storage.SessionEntry {
	return storage.SessionEntry{
		ID:            id,
		SessionParams: storage.SessionParams{GameID: gameID, Seed: id * 10, Width: 8, Height: 8, PaletteSize: 6},
		Moves:         int(id),
		CreatedAt:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func updateSessions(t *testing.T, m SessionsModel, msg tea.Msg) SessionsModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(SessionsModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return model
}

func TestSessionsFilterAndChoose(t *testing.T) {
	registry.Register("zz_sessions_other", func() registry.Game { return &fakeGame{} })

	src := fakeLister{entries: []storage.SessionEntry{
		session(3, "zz_sessions_other"),
		session(2, "zz_sessions_mine"),
		session(1, "zz_sessions_other"),
	}}
	m := NewSessionsModel(src, 100, 30)

	if len(m.shown) != 3 {
		t.Fatalf("all-variants view shows %d sessions, expected 3", len(m.shown))
	}
	if !strings.Contains(m.View(), "all variants") {
		t.Errorf("title should name the filter")
	}

	// Tab until the filter lands on the registered variant.
	for i := 0; i < len(m.filters) && m.filters[m.filter] != "zz_sessions_other"; i++ {
		m = updateSessions(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	if m.filters[m.filter] != "zz_sessions_other" {
		t.Fatalf("filter never reached the registered variant: %v", m.filters)
	}
	if len(m.shown) != 2 {
		t.Fatalf("filtered view shows %d sessions, expected 2", len(m.shown))
	}

	m = updateSessions(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateSessions(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Chosen() != 1 {
		t.Errorf("Chosen() = %d, expected 1", m.Chosen())
	}
}

func TestSessionsEmptyAndError(t *testing.T) {
	m := NewSessionsModel(fakeLister{}, 80, 24)
	if !strings.Contains(m.View(), "No sessions") {
		t.Errorf("empty journal should say so:\n%s", m.View())
	}

	m = updateSessions(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Chosen() != 0 {
		t.Errorf("nothing to choose from an empty journal")
	}

	m = NewSessionsModel(fakeLister{err: errors.New("locked")}, 80, 24)
	if !strings.Contains(m.View(), "locked") {
		t.Errorf("load error should be shown:\n%s", m.View())
	}
}

func TestSessionsBack(t *testing.T) {
	m := NewSessionsModel(fakeLister{entries: []storage.SessionEntry{session(1, "x")}}, 80, 24)
	m = updateSessions(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.quitting || m.Chosen() != 0 {
		t.Errorf("esc should leave without choosing")
	}
}

// containsPlain reports whether s contains sub once escape sequences are
// removed.
func containsPlain(s, sub string) bool {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && (r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z'):
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return strings.Contains(b.String(), sub)
}
