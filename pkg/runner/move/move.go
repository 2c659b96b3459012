// Package move provides the runner that reassigns entries to another
// section.
package move

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/journal"
	"tableflip.dev/trail/pkg/picker"
	"tableflip.dev/trail/pkg/printers"
	"tableflip.dev/trail/pkg/store"
)

// Move relocates entries into a target section.
type Move struct {
	Store *store.Store

	Target string
	// Label stamps moved entries with @from(<original section>).
	Label bool

	// Count bounds how many of the most recent matches move. Zero means
	// one; All lifts the bound.
	Count int
	All   bool
	IDs   []int64
	// Criteria narrows which entries qualify.
	Criteria filter.Config
	// Interactive picks the entries to move.
	Interactive bool
}

// Do moves the selected entries and reprints the target section.
func (n *Move) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not move, no store")
	}
	if n.Target == "" {
		return errors.New("target section required")
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
		fmt.Fprintln(color.Output, "no matching entries")
		return nil
	}

	for _, it := range targets {
		if _, err := j.Move(it.ID, n.Target, journal.MoveOptions{Label: n.Label}); err != nil {
			return err
		}
	}

	if err := n.Store.Save(j); err != nil {
		return err
	}

	section := targets[0].Section
	all := j.In(section)
	pp := printers.Pretty{}
	fmt.Fprintln(color.Output, "")
	fmt.Fprint(color.Output, pp.TitleWithCount(section, len(all)))
	fmt.Fprint(color.Output, pp.List(all))
	return nil
}

func (n *Move) targets(j *journal.Journal) ([]*item.Item, error) {
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
		items, err = picker.Pick(items, picker.Options{Title: "Move to " + n.Target, Multi: true})
		if errors.Is(err, picker.ErrCancelled) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}
