// Package watch provides the runner that follows the journal file and
// prints entries as other processes add them.
package watch

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/journal"
	"tableflip.dev/trail/pkg/printers"
	"tableflip.dev/trail/pkg/store"
)

// Watch tails the journal file until the context is cancelled.
type Watch struct {
	Store *store.Store

	// Criteria restricts which new entries are printed.
	Criteria filter.Config
	// ShowID prints entry ids alongside each line.
	ShowID bool
}

// Do follows the file and prints every entry that appears.
func (n *Watch) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not watch, no store")
	}
	j, err := n.Store.Load()
	if err != nil {
		return err
	}
	baseline := j.Items()

	events, err := n.Store.Watch(ctx)
	if err != nil {
		return err
	}

	pp := printers.Pretty{ShowID: n.ShowID}
	fmt.Fprintf(color.Output, "watching %s\n", n.Store.Path())

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Removed {
				fmt.Fprintln(color.Output, "journal file removed, waiting for it to come back")
				baseline = nil
				continue
			}
			j, err := n.Store.Load()
			if err != nil {
				// Transient half-written state; the next event retries.
				var perr *journal.ParseError
				if errors.As(err, &perr) {
					continue
				}
				return err
			}
			fresh := added(baseline, j.Items())
			baseline = j.Items()

			shown, err := filter.Apply(fresh, n.Criteria)
			if err != nil {
				return err
			}
			for _, it := range shown {
				fmt.Fprint(color.Output, pp.Line(it))
			}
		}
	}
}

// added returns the items of next that have no counterpart in prev.
func added(prev, next []*item.Item) []*item.Item {
	var fresh []*item.Item
	for _, it := range next {
		known := false
		for _, old := range prev {
			if it.SameAs(old) {
				known = true
				break
			}
		}
		if !known {
			fresh = append(fresh, it)
		}
	}
	return fresh
}
