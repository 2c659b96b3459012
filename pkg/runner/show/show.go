// Package show provides the runner behind every listing verb: the plain
// listing, the preset day and range views, and the calendar.
package show

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/trail/pkg/config"
	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/pager"
	"tableflip.dev/trail/pkg/picker"
	"tableflip.dev/trail/pkg/printers"
	"tableflip.dev/trail/pkg/store"
)

// Show lists journal entries matching a filter.
type Show struct {
	Store  *store.Store
	Config *config.Config

	// Criteria selects and orders the entries.
	Criteria filter.Config
	// Title overrides the heading; entries render flat beneath it.
	Title string
	// Totals appends a summed-interval footer.
	Totals bool
	// ShowID prefixes every line with the entry ID.
	ShowID bool
	// Calendar renders a month grid and agenda instead of the listing.
	Calendar bool
	// Month anchors the calendar. The zero value means the current month.
	Month time.Time
	// Interactive narrows the listing to picked entries before printing.
	Interactive bool
	// Reverse prints newest first instead of the chronological default.
	Reverse bool
	// NoPager forces direct output even when paging is configured.
	NoPager bool
}

// Do filters the journal and prints the result.
func (n *Show) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not show, no store")
	}
	j, err := n.Store.Load()
	if err != nil {
		return err
	}

	if n.Criteria.Case == "" && n.Config != nil {
		if c, ok := filter.ParseCase(n.Config.Search.Case); ok {
			n.Criteria.Case = c
		}
	}

	items, err := filter.Apply(j.Items(), n.Criteria)
	if err != nil {
		return err
	}

	if n.Interactive {
		items, err = picker.Pick(items, picker.Options{Title: n.heading(), Multi: true})
		if errors.Is(err, picker.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	if n.Reverse {
		for i, k := 0, len(items)-1; i < k; i, k = i+1, k-1 {
			items[i], items[k] = items[k], items[i]
		}
	}

	pp := printers.Pretty{ShowID: n.ShowID}
	var b strings.Builder
	b.WriteString("\n")

	switch {
	case n.Calendar:
		month := n.Month
		if month.IsZero() {
			month = time.Now()
		}
		b.WriteString(pp.Calendar(month, items))
		b.WriteString(pp.Agenda(month, time.Now(), items))
	case n.Title != "":
		b.WriteString(pp.TitleWithCount(n.Title, len(items)))
		b.WriteString(pp.List(items))
	case !filter.IsAll(n.Criteria.Section):
		b.WriteString(pp.TitleWithCount(n.Criteria.Section, len(items)))
		b.WriteString(pp.List(items))
	default:
		b.WriteString(pp.Items(items))
	}

	if n.Totals {
		b.WriteString("\n")
		b.WriteString(pp.Totals(items))
	}

	return n.print(b.String())
}

func (n *Show) heading() string {
	if n.Title != "" {
		return n.Title
	}
	if !filter.IsAll(n.Criteria.Section) {
		return n.Criteria.Section
	}
	return "All"
}

func (n *Show) print(text string) error {
	if !n.NoPager && n.Config != nil && n.Config.Paginate {
		return pager.Page(text)
	}
	_, err := fmt.Fprint(color.Output, text)
	return err
}
