// Package picker is the interactive item selector behind the
// --interactive flags. It filters as you type and never mutates the
// journal; callers act on what comes back.
package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"tableflip.dev/trail/pkg/item"
)

// ErrCancelled reports a picker dismissed without a choice.
var ErrCancelled = errors.New("picker: cancelled")

// Options configure one picker run.
type Options struct {
	// Title is shown above the filter input.
	Title string
	// Multi allows toggling several items before accepting.
	Multi bool
	// Limit bounds the visible rows. Zero means 15.
	Limit int
}

// Pick runs the selector over items and returns the chosen ones in store
// order. Dismissing the picker is ErrCancelled; an empty selection on
// accept returns an empty slice.
func Pick(items []*item.Item, opts Options) ([]*item.Item, error) {
	if len(items) == 0 {
		return nil, nil
	}
	out, err := tea.NewProgram(newModel(items, opts)).Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	final := out.(model)
	if final.cancelled {
		return nil, ErrCancelled
	}
	return final.chosen(), nil
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Accept key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
	Toggle: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle")),
	Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
	Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

type model struct {
	opts      Options
	input     textinput.Model
	items     []*item.Item
	visible   []int // indexes into items with the filter applied
	cursor    int   // position within visible
	selected  map[int]bool
	cancelled bool
}

func newModel(items []*item.Item, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "> "
	ti.Focus()

	m := model{
		opts:     opts,
		input:    ti,
		items:    items,
		selected: make(map[int]bool),
	}
	m.visible = allIndexes(len(items))
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Quit):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, keys.Accept):
			if len(m.visible) > 0 && (!m.opts.Multi || len(m.chosen()) == 0) {
				m.selected[m.visible[m.cursor]] = true
			}
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, keys.Toggle):
			if m.opts.Multi && len(m.visible) > 0 {
				idx := m.visible[m.cursor]
				m.selected[idx] = !m.selected[idx]
				if m.cursor < len(m.visible)-1 {
					m.cursor++
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refilter()
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder
	if m.opts.Title != "" {
		b.WriteString(titleStyle.Render(m.opts.Title) + "\n")
	}
	b.WriteString(m.input.View() + "\n\n")

	limit := m.opts.Limit
	if limit <= 0 {
		limit = 15
	}
	start := 0
	if m.cursor >= limit {
		start = m.cursor - limit + 1
	}

	for row := start; row < len(m.visible) && row < start+limit; row++ {
		idx := m.visible[row]
		line := m.items[idx].Line()
		if m.selected[idx] {
			line = selectedStyle.Render("* " + line)
		}
		if row == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("  no matches") + "\n")
	}

	help := "enter pick, esc cancel"
	if m.opts.Multi {
		help = "tab toggle, enter accept, esc cancel"
	}
	b.WriteString("\n" + dimStyle.Render(help) + "\n")
	return b.String()
}

// refilter recomputes the visible rows from the filter input, ranking
// matches fuzzily over title and note text.
func (m *model) refilter() {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.visible = allIndexes(len(m.items))
	} else {
		sources := make([]string, len(m.items))
		for i, it := range m.items {
			sources[i] = it.SearchText()
		}
		m.visible = m.visible[:0]
		for _, match := range fuzzy.Find(query, sources) {
			m.visible = append(m.visible, match.Index)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// chosen returns the selected items in store order.
func (m model) chosen() []*item.Item {
	var out []*item.Item
	for i, it := range m.items {
		if m.selected[i] {
			out = append(out, it)
		}
	}
	return out
}

func allIndexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
