// Package edit provides the runner that rewrites entries through the
// user's editor.
package edit

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

// Edit opens entries in the editor and applies the buffer on save. With
// no selection the whole journal file is opened.
type Edit struct {
	Store  *store.Store
	Config *config.Config

	// IDs name specific entries to edit.
	IDs []int64
	// Criteria selects entries when no IDs are given.
	Criteria filter.Config
	// Interactive picks from the criteria matches.
	Interactive bool
}

// Do runs the editor and saves whatever changed.
func (n *Edit) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not edit, no store")
	}
	j, err := n.Store.Load()
	if err != nil {
		return err
	}

	app := ""
	if n.Config != nil {
		app = n.Config.EditorApp
	}
	ed := editor.Editor{App: app}

	if len(n.IDs) == 0 && !n.Interactive && filter.IsAll(n.Criteria.Section) &&
		len(n.Criteria.Tags) == 0 && n.Criteria.Search == "" && !n.Criteria.Unfinished {
		return n.editJournal(j, ed)
	}
	return n.editEntries(j, ed)
}

// editJournal opens the full file text and replaces the journal with the
// parsed buffer.
func (n *Edit) editJournal(j *journal.Journal, ed editor.Editor) error {
	initial := j.Serialize()
	edited, err := ed.Edit(initial)
	if err != nil {
		return err
	}
	if edited == initial {
		fmt.Fprintln(color.Output, "no changes")
		return nil
	}
	if strings.TrimSpace(edited) == "" {
		return errors.New("edit buffer came back empty, nothing applied")
	}

	replacement, err := journal.ParseString(edited)
	if err != nil {
		return err
	}
	if err := n.Store.Save(replacement); err != nil {
		return err
	}
	fmt.Fprintf(color.Output, "saved %d entries\n", replacement.Len())
	return nil
}

// editEntries opens only the selected entries and applies them back by
// position. The buffer must come back with the same number of entries.
func (n *Edit) editEntries(j *journal.Journal, ed editor.Editor) error {
	targets, err := n.targets(j)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Fprintln(color.Output, "no matching entries")
		return nil
	}

	var b strings.Builder
	b.WriteString(editor.Banner(
		"One line per entry, notes indented below it.",
		"Keep the entry count, lines starting with # are dropped.",
	))
	section := ""
	for _, it := range targets {
		if !strings.EqualFold(it.Section, section) {
			section = it.Section
			b.WriteString(section)
			b.WriteString(":\n")
		}
		b.WriteString(it.Line())
		b.WriteString("\n")
		for _, note := range it.Note {
			b.WriteString("\t")
			b.WriteString(note)
			b.WriteString("\n")
		}
	}

	edited, err := ed.Edit(b.String())
	if err != nil {
		return err
	}
	stripped, err := editor.StripComments(edited)
	if err != nil {
		if errors.Is(err, editor.ErrEmptyInput) {
			return errors.New("edit buffer came back empty, nothing applied")
		}
		return err
	}

	parsed, err := journal.ParseString(stripped + "\n")
	if err != nil {
		return err
	}
	revised := parsed.Items()
	if len(revised) != len(targets) {
		return fmt.Errorf("edit buffer has %d entries, expected %d, nothing applied", len(revised), len(targets))
	}

	changed := 0
	for i, it := range targets {
		r := revised[i]
		if r.Title == it.Title && r.Date.Equal(it.Date) &&
			strings.EqualFold(r.Section, it.Section) && sameNote(r.Note, it.Note) {
			continue
		}
		if _, err := j.Update(it.ID, r); err != nil {
			return err
		}
		changed++
	}
	if changed == 0 {
		fmt.Fprintln(color.Output, "no changes")
		return nil
	}
	if err := n.Store.Save(j); err != nil {
		return err
	}

	pp := printers.Pretty{}
	fmt.Fprintln(color.Output, "")
	fmt.Fprint(color.Output, pp.Title("Updated"))
	for _, it := range targets {
		fmt.Fprint(color.Output, pp.Line(it))
	}
	return nil
}

func sameNote(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (n *Edit) targets(j *journal.Journal) ([]*item.Item, error) {
	if len(n.IDs) > 0 {
		targets := make([]*item.Item, 0, len(n.IDs))
		for _, id := range n.IDs {
			it, ok := j.ItemByID(id)
			if !ok {
				return nil, fmt.Errorf("%w: id %d", journal.ErrItemNotFound, id)
			}
			targets = append(targets, it)
		}
		return targets, nil
	}

	items, err := filter.Apply(j.Items(), n.Criteria)
	if err != nil {
		return nil, err
	}
	if !n.Interactive {
		return items, nil
	}
	picked, err := picker.Pick(items, picker.Options{Title: "edit", Multi: true})
	if err != nil {
		if errors.Is(err, picker.ErrCancelled) {
			return nil, nil
		}
		return nil, err
	}
	return picked, nil
}
