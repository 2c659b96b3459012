// Package tags provides the runner that summarizes tag usage across the
// journal.
package tags

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/store"
)

// Tags prints every tag in use with counts and last use.
type Tags struct {
	Store *store.Store

	// Criteria restricts which entries are counted.
	Criteria filter.Config
}

type usage struct {
	name        string
	count, open int
	last        time.Time
}

// Do renders the tag usage table, most used first.
func (n *Tags) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not list tags, no store")
	}
	j, err := n.Store.Load()
	if err != nil {
		return err
	}
	items, err := filter.Apply(j.Items(), n.Criteria)
	if err != nil {
		return err
	}

	byName := map[string]*usage{}
	for _, it := range items {
		for _, name := range it.Tags() {
			key := strings.ToLower(name)
			u, ok := byName[key]
			if !ok {
				u = &usage{name: name}
				byName[key] = u
			}
			u.count++
			if !it.Finished() {
				u.open++
			}
			if it.Date.After(u.last) {
				u.last = it.Date
			}
		}
	}
	if len(byName) == 0 {
		fmt.Fprintln(color.Output, "no tags yet")
		return nil
	}

	all := make([]*usage, 0, len(byName))
	for _, u := range byName {
		all = append(all, u)
	}
	sort.Slice(all, func(a, b int) bool {
		if all[a].count != all[b].count {
			return all[a].count > all[b].count
		}
		return all[a].name < all[b].name
	})

	_, _ = fmt.Fprintln(color.Output, "")

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Tag"), bold.Sprint("Entries"), bold.Sprint("Open"), bold.Sprint("Last used"))
	for _, u := range all {
		tbl.AddRow("@"+u.name, u.count, u.open, u.last.Format(item.TimeFormat))
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
	return nil
}
