// Package finish provides the runner that closes entries out, stamping
// them done or cancelling them without a finish time.
package finish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/trail/pkg/config"
	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/journal"
	"tableflip.dev/trail/pkg/picker"
	"tableflip.dev/trail/pkg/printers"
	"tableflip.dev/trail/pkg/store"
	"tableflip.dev/trail/pkg/tag"
	"tableflip.dev/trail/pkg/timeutil"
)

// Finish stamps open entries done.
type Finish struct {
	Store  *store.Store
	Config *config.Config

	// Cancel closes the entries with a bare @done, recording no finish
	// time.
	Cancel bool
	// Took sets the finish time to the entry date plus a duration such as
	// "1h30m".
	Took string
	// Back sets the finish time from a time expression instead of now.
	Back string
	// Count bounds how many of the most recent open entries close. Zero
	// means one; All lifts the bound.
	Count int
	All   bool
	// IDs close specific entries instead of the most recent ones.
	IDs []int64
	// Criteria narrows which open entries qualify.
	Criteria filter.Config
	// Interactive picks the entries to close.
	Interactive bool
}

// Do closes the selected entries and prints them.
func (n *Finish) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not finish, no store")
	}
	j, err := n.Store.Load()
	if err != nil {
		return err
	}

	targets, err := n.targets(j)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Fprintln(color.Output, "nothing open to finish")
		return nil
	}

	now := time.Now()
	for _, it := range targets {
		value := ""
		if !n.Cancel {
			at, err := n.finishTime(it, now)
			if err != nil {
				return err
			}
			value = at.Format(item.TimeFormat)
		}
		it.Title = tag.Set(it.Title, "done", tag.SetOptions{Value: value, Force: true})
	}

	if err := n.Store.Save(j); err != nil {
		return err
	}

	pp := printers.Pretty{}
	fmt.Fprintln(color.Output, "")
	for _, it := range targets {
		fmt.Fprint(color.Output, pp.Line(it))
	}
	return nil
}

func (n *Finish) targets(j *journal.Journal) ([]*item.Item, error) {
	if len(n.IDs) > 0 {
		var out []*item.Item
		for _, id := range n.IDs {
			it, ok := j.ItemByID(id)
			if !ok {
				return nil, fmt.Errorf("%w: id %d", journal.ErrItemNotFound, id)
			}
			out = append(out, it)
		}
		return out, nil
	}

	cfg := n.Criteria
	cfg.Unfinished = true
	if !n.All && !n.Interactive {
		cfg.Count = n.Count
		if cfg.Count <= 0 {
			cfg.Count = 1
		}
		cfg.Age = filter.Newest
	}
	items, err := filter.Apply(j.Items(), cfg)
	if err != nil {
		return nil, err
	}

	if n.Interactive {
		items, err = picker.Pick(items, picker.Options{Title: "Finish", Multi: true})
		if errors.Is(err, picker.ErrCancelled) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}

// finishTime resolves the @done stamp for one entry.
func (n *Finish) finishTime(it *item.Item, now time.Time) (time.Time, error) {
	switch {
	case n.Took != "":
		d, err := timeutil.ParseWindow(n.Took)
		if err != nil {
			return time.Time{}, err
		}
		return it.Date.Add(d), nil
	case n.Back != "":
		return timeutil.Resolve(n.Back, timeutil.ResolveOptions{Now: now})
	default:
		return now, nil
	}
}
