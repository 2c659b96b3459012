package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/tag"
)

// CriteriaOptions collects the filter flags shared by the listing and
// targeting commands.
type CriteriaOptions struct {
	Section    string
	Tags       []string
	Bool       string
	Search     string
	Case       string
	Unfinished bool
	OnlyTimed  bool
	Today      bool
	Yesterday  bool
	Before     string
	After      string
	Not        bool
	Count      int
	Age        string
	Sort       string
}

// AddCriteriaArgs wires the full flag set, for commands whose whole job is
// selecting entries.
func AddCriteriaArgs(cmd *cobra.Command, o *CriteriaOptions) {
	AddMatchArgs(cmd, o)
	cmd.Flags().BoolVar(&o.OnlyTimed, "only-timed", false,
		"Keep only entries with a recorded interval.")
	cmd.Flags().BoolVar(&o.Today, "today", false,
		"Keep only today's entries.")
	cmd.Flags().BoolVar(&o.Yesterday, "yesterday", false,
		"Keep only yesterday's entries.")
	cmd.Flags().StringVar(&o.Before, "before", "",
		`Keep entries before a date expression, example: --before="mon 3pm".`)
	cmd.Flags().StringVar(&o.After, "after", "",
		`Keep entries after a date expression, example: --after="2 days ago".`)
	cmd.Flags().BoolVar(&o.Not, "not", false,
		"Invert each of the other criteria.")
	AddCountArgs(cmd, o)
}

// AddSortArg wires the display order flag, for commands that print a
// listing.
func AddSortArg(cmd *cobra.Command, o *CriteriaOptions) {
	cmd.Flags().StringVar(&o.Sort, "sort", "",
		"Display order, 'asc' (default) or 'desc'.")
}

// AddMatchArgs wires the narrowing flags, for commands that mutate whatever
// matches.
func AddMatchArgs(cmd *cobra.Command, o *CriteriaOptions) {
	cmd.Flags().StringVarP(&o.Section, "section", "s", "",
		"Restrict to one section, or 'All'.")
	cmd.Flags().StringArrayVar(&o.Tags, "tag", nil,
		"Restrict to entries carrying a tag. Repeatable, globs allowed.")
	cmd.Flags().StringVar(&o.Bool, "bool", "",
		"How multiple --tag flags combine: and, or, not, or pattern.")
	cmd.Flags().StringVar(&o.Search, "search", "",
		"Restrict to entries matching text. /re/ for regex, 'exact for exact.")
	cmd.Flags().StringVar(&o.Case, "case", "",
		"Search case handling: smart, sensitive, or ignore.")
	cmd.Flags().BoolVarP(&o.Unfinished, "unfinished", "u", false,
		"Restrict to entries not yet marked done.")
}

// AddCountArgs wires just the truncation pair.
func AddCountArgs(cmd *cobra.Command, o *CriteriaOptions) {
	cmd.Flags().IntVarP(&o.Count, "count", "n", 0,
		"Keep at most this many entries, 0 keeps everything.")
	cmd.Flags().StringVar(&o.Age, "age", "",
		"Which end survives --count: newest (default) or oldest.")
}

// Criteria converts the parsed flags into a filter request.
func (o *CriteriaOptions) Criteria() (filter.Config, error) {
	c, ok := filter.ParseCase(o.Case)
	if !ok {
		return filter.Config{}, fmt.Errorf("unknown search case %q", o.Case)
	}
	b, err := tag.ParseBool(o.Bool)
	if err != nil {
		return filter.Config{}, err
	}
	return filter.Config{
		Section:    o.Section,
		Tags:       o.Tags,
		Bool:       b,
		Search:     o.Search,
		Case:       c,
		Unfinished: o.Unfinished,
		OnlyTimed:  o.OnlyTimed,
		Today:      o.Today,
		Yesterday:  o.Yesterday,
		Before:     o.Before,
		After:      o.After,
		Not:        o.Not,
		Count:      o.Count,
		Age:        filter.ParseAge(o.Age),
	}, nil
}

// Reverse reports whether --sort asked for newest-first display.
func (o *CriteriaOptions) Reverse() (bool, error) {
	switch o.Sort {
	case "", "asc":
		return false, nil
	case "desc":
		return true, nil
	}
	return false, fmt.Errorf("unknown sort order %q", o.Sort)
}
