// Package strike provides the runner that removes entries from the
// journal for good.
package strike

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

// Strike deletes entries by ID or interactive pick.
type Strike struct {
	Store *store.Store

	IDs []int64
	// Criteria narrows the interactive pick.
	Criteria    filter.Config
	Interactive bool
}

// Do removes the selected entries and prints what went away.
func (n *Strike) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not strike, no store")
	}
	if len(n.IDs) == 0 && !n.Interactive {
		return errors.New("strike needs entry ids or --interactive")
	}
	j, err := n.Store.Load()
	if err != nil {
		return err
	}

	ids := n.IDs
	var picked []*item.Item
	if n.Interactive {
		items, err := filter.Apply(j.Items(), n.Criteria)
		if err != nil {
			return err
		}
		picked, err = picker.Pick(items, picker.Options{Title: "Strike", Multi: true})
		if errors.Is(err, picker.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, it := range picked {
			ids = append(ids, it.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	pp := printers.Pretty{}
	var gone []string
	for _, id := range ids {
		it, ok := j.ItemByID(id)
		if !ok {
			return fmt.Errorf("%w: id %d", journal.ErrItemNotFound, id)
		}
		gone = append(gone, pp.Line(it))
		if _, err := j.Delete(id); err != nil {
			return err
		}
	}

	if err := n.Store.Save(j); err != nil {
		return err
	}

	fmt.Fprintln(color.Output, "")
	fmt.Fprint(color.Output, pp.Title("Struck"))
	for _, line := range gone {
		fmt.Fprint(color.Output, line)
	}
	return nil
}
