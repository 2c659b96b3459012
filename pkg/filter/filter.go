// Package filter selects and orders journal items against a composable set
// of criteria. All present criteria combine with a logical AND; tag
// criteria carry their own boolean composition internally.
package filter

import (
	"sort"
	"strings"
	"time"

	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/tag"
	"tableflip.dev/trail/pkg/timeutil"
)

// All is the reserved pseudo-section meaning no section restriction.
const All = "All"

// IsAll reports whether a section name means no restriction.
func IsAll(section string) bool {
	return section == "" || strings.EqualFold(section, All)
}

// Age picks which end of the timeline survives a count truncation.
type Age string

const (
	Newest Age = "newest"
	Oldest Age = "oldest"
)

// ParseAge maps a flag or view value to an Age. Anything but "oldest"
// keeps the default of Newest.
func ParseAge(s string) Age {
	if strings.EqualFold(s, string(Oldest)) {
		return Oldest
	}
	return Newest
}

// TagFilter is the structured tag criterion carried by saved views.
type TagFilter struct {
	Tags []string
	Bool tag.Bool
}

// Config is one filter request. The zero value matches everything.
type Config struct {
	// Section restricts to one section; empty or All means no restriction.
	Section string
	// Unfinished keeps only items without a @done tag.
	Unfinished bool
	// Tags and Bool combine per the boolean mode; names may carry glob
	// wildcards. In Pattern mode the names are a +include/-exclude query.
	Tags []string
	Bool tag.Bool
	// TagFilter is a second tag criterion, kept separate so a saved view
	// and an explicit --tag flag can both apply.
	TagFilter *TagFilter
	// Search matches title and note text. Wrapping in slashes switches to
	// regex mode, a leading single quote to exact mode.
	Search string
	// Case controls search case sensitivity: smart, sensitive, or ignore.
	Case Case
	// From and To bound the item date inclusively. A zero To with a set
	// From means the same calendar day as From.
	From time.Time
	To   time.Time
	// OnlyTimed keeps items with a defined interval.
	OnlyTimed bool
	// Before and After are date expressions cutting the timeline.
	Before string
	After  string
	// Today and Yesterday restrict to a single calendar day. Today wins
	// when both are set.
	Today     bool
	Yesterday bool
	// Not inverts each criterion above independently, not the final result.
	Not bool
	// Count truncates the result after filtering; zero keeps everything.
	Count int
	Age   Age
	// Now anchors date resolution. The zero value means time.Now().
	Now time.Time
}

// Apply filters items and returns them in display order, chronologically
// ascending. Items are first ordered by date with ties broken by
// case-folded title, so count truncation is deterministic.
func Apply(items []*item.Item, cfg Config) ([]*item.Item, error) {
	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}

	var beforeCut, afterCut time.Time
	var err error
	if cfg.Before != "" {
		beforeCut, err = timeutil.Resolve(cfg.Before, timeutil.ResolveOptions{Now: now, Guess: timeutil.GuessEnd})
		if err != nil {
			return nil, err
		}
	}
	if cfg.After != "" {
		afterCut, err = timeutil.Resolve(cfg.After, timeutil.ResolveOptions{Now: now, Guess: timeutil.GuessBegin})
		if err != nil {
			return nil, err
		}
	}

	sorted := make([]*item.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(a, b int) bool {
		if !sorted[a].Date.Equal(sorted[b].Date) {
			return sorted[a].Date.Before(sorted[b].Date)
		}
		return strings.ToLower(sorted[a].Title) < strings.ToLower(sorted[b].Title)
	})
	reverse(sorted)

	kept := make([]*item.Item, 0, len(sorted))
	for _, it := range sorted {
		if !IsAll(cfg.Section) && !strings.EqualFold(it.Section, cfg.Section) {
			continue
		}
		if keepItem(it, cfg, now, beforeCut, afterCut) {
			kept = append(kept, it)
		}
	}

	if cfg.Count > 0 && len(kept) > cfg.Count {
		if cfg.Age == Oldest {
			kept = kept[len(kept)-cfg.Count:]
		} else {
			kept = kept[:cfg.Count]
		}
	}
	reverse(kept)
	return kept, nil
}

// keepItem runs the criterion chain. Each criterion flips its own verdict
// when Not is set; the section restriction is applied by the caller and
// never flips.
func keepItem(it *item.Item, cfg Config, now, beforeCut, afterCut time.Time) bool {
	keep := true
	flip := func(ok bool) bool {
		if cfg.Not {
			return !ok
		}
		return ok
	}

	if keep && cfg.Unfinished {
		keep = flip(!it.Finished())
	}
	if keep && len(cfg.Tags) > 0 {
		mode := cfg.Bool
		if mode == "" {
			mode = tag.And
		}
		keep = flip(tag.Has(it.Title, cfg.Tags, mode))
	}
	if keep && cfg.TagFilter != nil && len(cfg.TagFilter.Tags) > 0 {
		mode := cfg.TagFilter.Bool
		if mode == "" {
			mode = tag.And
		}
		keep = flip(tag.Has(it.Title, cfg.TagFilter.Tags, mode))
	}
	if keep && cfg.Search != "" {
		keep = flip(searchMatch(it.SearchText(), cfg.Search, cfg.Case))
	}
	if keep && !cfg.From.IsZero() {
		to := cfg.To
		if to.IsZero() {
			to = timeutil.EndOfDay(cfg.From)
		}
		keep = flip(!it.Date.Before(cfg.From) && !it.Date.After(to))
	}
	if keep && cfg.OnlyTimed {
		_, timed := it.Interval()
		keep = flip(timed)
	}
	if keep && cfg.Before != "" {
		keep = flip(!it.Date.After(beforeCut))
	}
	if keep && cfg.After != "" {
		keep = flip(!it.Date.Before(afterCut))
	}
	if keep && (cfg.Today || cfg.Yesterday) {
		day := now
		if !cfg.Today {
			day = now.AddDate(0, 0, -1)
		}
		keep = flip(timeutil.SameDay(it.Date, day))
	}
	return keep
}

func reverse(items []*item.Item) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
