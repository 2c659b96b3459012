// Package add provides the runner that records a new journal entry.
package add

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/trail/pkg/config"
	"tableflip.dev/trail/pkg/editor"
	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/journal"
	"tableflip.dev/trail/pkg/printers"
	"tableflip.dev/trail/pkg/store"
	"tableflip.dev/trail/pkg/tag"
	"tableflip.dev/trail/pkg/timeutil"
)

// Add records one entry.
type Add struct {
	Store  *store.Store
	Config *config.Config

	Title   string
	Section string
	Note    []string
	// Back is a time expression backdating the entry.
	Back string
	// Done stamps the entry finished. DoneExpr overrides the stamp time,
	// Took places it a duration after the entry date and wins over both.
	Done     bool
	DoneExpr string
	Took     string
	// Timed closes out the previous open entry with this entry's date.
	Timed bool
	// Editor composes the entry in $EDITOR instead of taking Title as is.
	Editor bool
}

// Do appends the entry and reprints its section.
func (n *Add) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not add, no store")
	}
	j, err := n.Store.Load()
	if err != nil {
		return err
	}

	now := time.Now()
	date := now
	if n.Back != "" {
		date, err = timeutil.Resolve(n.Back, timeutil.ResolveOptions{Now: now})
		if err != nil {
			return err
		}
	}

	title := strings.TrimSpace(n.Title)
	note := n.Note
	if n.Editor {
		title, note, err = n.compose(title, note)
		if err != nil {
			return err
		}
	}

	section := n.Section
	if section == "" && n.Config != nil {
		section = n.Config.DefaultSection
	}

	opts := journal.AddOptions{
		Date:  date,
		Note:  note,
		Timed: n.Timed,
	}
	if n.Config != nil {
		opts.Autotag = n.Config.Autotag
		opts.DefaultTags = n.Config.DefaultTags
	}

	it, _, err := j.AddItem(title, section, opts)
	if err != nil {
		return err
	}

	if n.Done {
		at := date
		if n.DoneExpr != "" {
			at, err = timeutil.Resolve(n.DoneExpr, timeutil.ResolveOptions{Now: now})
			if err != nil {
				return err
			}
		}
		if n.Took != "" {
			window, err := timeutil.ParseWindow(n.Took)
			if err != nil {
				return err
			}
			at = date.Add(window)
		}
		it.Title = tag.Set(it.Title, "done", tag.SetOptions{Value: at.Format(item.TimeFormat)})
	}

	if err := n.Store.Save(j); err != nil {
		return err
	}

	pp := printers.Pretty{}
	fmt.Fprintln(color.Output, "")
	fmt.Fprint(color.Output, pp.TitleWithCount(it.Section, len(j.In(it.Section))))
	fmt.Fprint(color.Output, pp.Line(it))
	return nil
}

// compose runs the editor over a seeded buffer and splits the result into
// title and note.
func (n *Add) compose(title string, note []string) (string, []string, error) {
	var app string
	if n.Config != nil {
		app = n.Config.EditorApp
	}
	initial := editor.Banner(
		"First line becomes the entry title, the rest its note.",
		"Lines starting with # are dropped.",
	)
	if title != "" {
		initial = title + "\n" + strings.Join(note, "\n") + "\n\n" + initial
	}

	text, err := editor.Editor{App: app}.Edit(initial)
	if err != nil {
		return "", nil, err
	}
	text, err = editor.StripComments(text)
	if err != nil {
		return "", nil, err
	}
	got, gotNote := editor.SplitEntry(text)
	return got, gotNote, nil
}
