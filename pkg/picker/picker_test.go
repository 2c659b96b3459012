package picker

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/trail/pkg/item"
)

func fixtures(t *testing.T) []*item.Item {
	t.Helper()
	when := time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)
	var items []*item.Item
	for _, title := range []string{"alpha review", "beta deploy", "gamma standup"} {
		items = append(items, item.New("Work", title, when))
		when = when.Add(time.Hour)
	}
	return items
}

func step(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

func TestSingleSelect(t *testing.T) {
	m := newModel(fixtures(t), Options{})

	m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	got := m.chosen()
	if len(got) != 1 || got[0].Title != "beta deploy" {
		t.Errorf("chosen() = %v, want beta deploy", got)
	}
	if m.cancelled {
		t.Error("cancelled = true, want false")
	}
}

func TestMultiSelectToggles(t *testing.T) {
	m := newModel(fixtures(t), Options{Multi: true})

	// Toggle the first two, untoggle the second, then accept.
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	got := m.chosen()
	if len(got) != 1 || got[0].Title != "alpha review" {
		t.Errorf("chosen() = %v, want alpha review only", got)
	}
}

func TestMultiAcceptWithoutToggleTakesCursorRow(t *testing.T) {
	m := newModel(fixtures(t), Options{Multi: true})

	m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	got := m.chosen()
	if len(got) != 1 || got[0].Title != "gamma standup" {
		t.Errorf("chosen() = %v, want gamma standup", got)
	}
}

func TestFilterNarrowsRows(t *testing.T) {
	m := newModel(fixtures(t), Options{})

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("beta")})
	if len(m.visible) != 1 {
		t.Fatalf("visible = %d rows after filter, want 1", len(m.visible))
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	got := m.chosen()
	if len(got) != 1 || got[0].Title != "beta deploy" {
		t.Errorf("chosen() = %v, want beta deploy", got)
	}
}

func TestFilterKeepsCursorInRange(t *testing.T) {
	m := newModel(fixtures(t), Options{})

	m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("alpha")})

	if m.cursor != 0 {
		t.Errorf("cursor = %d after narrowing, want 0", m.cursor)
	}
}

func TestEscapeCancels(t *testing.T) {
	m := newModel(fixtures(t), Options{})

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.cancelled {
		t.Error("cancelled = false after esc, want true")
	}
	if got := m.chosen(); len(got) != 0 {
		t.Errorf("chosen() = %v after cancel, want none", got)
	}
}

func TestPickEmptyInput(t *testing.T) {
	got, err := Pick(nil, Options{})
	if err != nil {
		t.Fatalf("Pick(nil) error = %v", err)
	}
	if got != nil {
		t.Errorf("Pick(nil) = %v, want nil", got)
	}
}
