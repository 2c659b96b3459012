// Package again provides the runner that repeats the latest entry with a
// fresh timestamp.
package again

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/journal"
	"tableflip.dev/trail/pkg/printers"
	"tableflip.dev/trail/pkg/store"
	"tableflip.dev/trail/pkg/tag"
	"tableflip.dev/trail/pkg/timeutil"
)

// Again re-adds the most recent open entry. When everything is finished
// the most recent entry repeats with its @done stamp stripped.
type Again struct {
	Store *store.Store

	// Section relocates the repeated entry; empty keeps the original
	// section.
	Section string
	// Back backdates the repeated entry.
	Back string
}

// Do repeats the entry and prints it.
func (n *Again) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not repeat, no store")
	}
	j, err := n.Store.Load()
	if err != nil {
		return err
	}

	src := latest(j, false)
	if src == nil {
		src = latest(j, true)
	}
	if src == nil {
		fmt.Fprintln(color.Output, "nothing to repeat")
		return nil
	}

	date := time.Now()
	if n.Back != "" {
		date, err = timeutil.Resolve(n.Back, timeutil.ResolveOptions{Now: date})
		if err != nil {
			return err
		}
	}

	title := tag.Set(src.Title, "done", tag.SetOptions{Remove: true})
	section := n.Section
	if section == "" {
		section = src.Section
	}

	it, _, err := j.AddItem(title, section, journal.AddOptions{
		Date: date,
		Note: append([]string(nil), src.Note...),
	})
	if err != nil {
		return err
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

// latest returns the most recent entry, restricted to open entries unless
// finished ones are allowed.
func latest(j *journal.Journal, allowFinished bool) *item.Item {
	var best *item.Item
	for _, it := range j.Items() {
		if !allowFinished && it.Finished() {
			continue
		}
		if best == nil || !it.Date.Before(best.Date) {
			best = it
		}
	}
	return best
}
