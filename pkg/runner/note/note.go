// Package note provides the runner that edits an entry's note lines.
package note

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/trail/pkg/config"
	"tableflip.dev/trail/pkg/editor"
	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/journal"
	"tableflip.dev/trail/pkg/picker"
	"tableflip.dev/trail/pkg/printers"
	"tableflip.dev/trail/pkg/store"
)

// Note appends to, replaces, or clears the note of one entry. Without an
// ID or an interactive pick the most recent entry is the target.
type Note struct {
	Store  *store.Store
	Config *config.Config

	Text []string
	// Replace swaps the whole note instead of appending.
	Replace bool
	// Clear drops the note.
	Clear bool
	// Editor opens the note in $EDITOR; the result replaces it.
	Editor bool

	ID          int64
	Criteria    filter.Config
	Interactive bool
}

// Do applies the note change and prints the entry.
func (n *Note) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not note, no store")
	}
	j, err := n.Store.Load()
	if err != nil {
		return err
	}

	it, err := n.target(j)
	if err != nil || it == nil {
		return err
	}

	note, err := n.reviseNote(it)
	if err != nil {
		return err
	}

	updated := &item.Item{Note: note}
	if _, err := j.Update(it.ID, updated); err != nil {
		return err
	}

	if err := n.Store.Save(j); err != nil {
		return err
	}

	pp := printers.Pretty{}
	fmt.Fprintln(color.Output, "")
	fmt.Fprint(color.Output, pp.Line(it))
	return nil
}

func (n *Note) target(j *journal.Journal) (*item.Item, error) {
	if n.ID != 0 {
		it, ok := j.ItemByID(n.ID)
		if !ok {
			return nil, fmt.Errorf("%w: id %d", journal.ErrItemNotFound, n.ID)
		}
		return it, nil
	}

	items, err := filter.Apply(j.Items(), n.Criteria)
	if err != nil {
		return nil, err
	}
	if n.Interactive {
		picked, err := picker.Pick(items, picker.Options{Title: "Note"})
		if errors.Is(err, picker.ErrCancelled) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if len(picked) == 0 {
			return nil, nil
		}
		return picked[0], nil
	}
	if len(items) == 0 {
		return nil, errors.New("no entry to note")
	}
	return items[len(items)-1], nil
}

// reviseNote computes the new note lines for the target entry.
func (n *Note) reviseNote(it *item.Item) ([]string, error) {
	switch {
	case n.Clear:
		return nil, nil
	case n.Editor:
		var app string
		if n.Config != nil {
			app = n.Config.EditorApp
		}
		initial := strings.Join(it.Note, "\n")
		if initial != "" {
			initial += "\n"
		}
		initial += "\n" + editor.Banner("Note for: "+it.Title)
		text, err := editor.Editor{App: app}.Edit(initial)
		if err != nil {
			return nil, err
		}
		text, err = editor.StripComments(text)
		if errors.Is(err, editor.ErrEmptyInput) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return strings.Split(text, "\n"), nil
	case n.Replace:
		return append([]string(nil), n.Text...), nil
	default:
		return append(append([]string(nil), it.Note...), n.Text...), nil
	}
}
