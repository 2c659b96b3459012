// Package retag provides the runner behind every tag mutation verb: tag,
// untag, flag, and unflag.
package retag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/journal"
	"tableflip.dev/trail/pkg/picker"
	"tableflip.dev/trail/pkg/printers"
	"tableflip.dev/trail/pkg/store"
	"tableflip.dev/trail/pkg/tag"
)

// Retag applies one tag mutation to the selected entries.
type Retag struct {
	Store *store.Store

	// Names are the tags to touch; a leading @ is optional.
	Names []string
	// Value attaches @name(value) instead of a bare tag.
	Value string
	// Date uses the current time as the value.
	Date bool
	// Remove strips the named tags.
	Remove bool
	// Rename replaces the named tags, keeping values.
	Rename string
	// Regex matches existing tags by pattern.
	Regex bool
	// Force refreshes an existing tag's value in place.
	Force bool

	// Count bounds how many of the most recent matches change. Zero means
	// one; All lifts the bound.
	Count int
	All   bool
	// IDs target specific entries instead of the most recent ones.
	IDs []int64
	// Criteria narrows which entries qualify.
	Criteria filter.Config
	// Interactive picks the entries to change.
	Interactive bool
}

// Do mutates the tags and prints the touched entries.
func (n *Retag) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not tag, no store")
	}
	if len(n.Names) == 0 {
		return errors.New("tag name required")
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

	value := n.Value
	if n.Date {
		value = time.Now().Format(item.TimeFormat)
	}

	changed := 0
	for _, it := range targets {
		title := it.Title
		for _, name := range n.Names {
			name = strings.TrimPrefix(strings.TrimSpace(name), "@")
			if name == "" {
				continue
			}
			title = tag.Set(title, name, tag.SetOptions{
				Value:  value,
				Remove: n.Remove,
				Rename: n.Rename,
				Regex:  n.Regex,
				Force:  n.Force,
			})
		}
		if title == it.Title {
			continue
		}
		if _, err := j.Update(it.ID, &item.Item{Title: title, Note: it.Note}); err != nil {
			return err
		}
		changed++
	}

	if changed == 0 {
		fmt.Fprintln(color.Output, "nothing to change")
		return nil
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

func (n *Retag) targets(j *journal.Journal) ([]*item.Item, error) {
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
		items, err = picker.Pick(items, picker.Options{Title: "Tag", Multi: true})
		if errors.Is(err, picker.ErrCancelled) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}
