package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/runner/show"
	"tableflip.dev/trail/pkg/timeutil"
)

func addRecent(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	po := &options.OutputOptions{}

	count := 10

	cmd := &cobra.Command{
		Use:   "recent [count]",
		Short: "List the most recent entries",
		Example: `
trail recent
trail recent 25 --section=Work
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most a count, got %d arguments", len(args))
			}
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("not a count: %q", args[0])
				}
				count = n
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}
			criteria, err := co.Criteria()
			if err != nil {
				return err
			}
			criteria.Count = count
			criteria.Age = filter.Newest
			s := show.Show{
				Store:    p,
				Config:   cfg,
				Criteria: criteria,
				Title:    "Recent",
				ShowID:   io.ShowID,
				NoPager:  po.NoPager,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddMatchArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.AddShowIDArgs(cmd, io)
	options.AddPagerArg(cmd, po)

	topLevel.AddCommand(cmd)
}

func addToday(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	po := &options.OutputOptions{}

	var totals bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "List today's entries",
		Example: `
trail today --totals
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}
			criteria, err := co.Criteria()
			if err != nil {
				return err
			}
			criteria.Today = true
			s := show.Show{
				Store:    p,
				Config:   cfg,
				Criteria: criteria,
				Title:    "Today",
				Totals:   totals,
				ShowID:   io.ShowID,
				NoPager:  po.NoPager,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddMatchArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.AddShowIDArgs(cmd, io)
	options.AddPagerArg(cmd, po)
	cmd.Flags().BoolVar(&totals, "totals", false,
		"Append a summed time footer.")

	topLevel.AddCommand(cmd)
}

func addYesterday(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	po := &options.OutputOptions{}

	var totals bool

	cmd := &cobra.Command{
		Use:   "yesterday",
		Short: "List yesterday's entries",
		Example: `
trail yesterday --totals
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}
			criteria, err := co.Criteria()
			if err != nil {
				return err
			}
			criteria.Yesterday = true
			s := show.Show{
				Store:    p,
				Config:   cfg,
				Criteria: criteria,
				Title:    "Yesterday",
				Totals:   totals,
				ShowID:   io.ShowID,
				NoPager:  po.NoPager,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddMatchArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.AddShowIDArgs(cmd, io)
	options.AddPagerArg(cmd, po)
	cmd.Flags().BoolVar(&totals, "totals", false,
		"Append a summed time footer.")

	topLevel.AddCommand(cmd)
}

func addOn(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	po := &options.OutputOptions{}

	var expr string

	cmd := &cobra.Command{
		Use:   "on <date expression>",
		Short: "List the entries of one day",
		Example: `
trail on friday
trail on "2 days ago"
trail on 2026-01-05
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a date expression")
			}
			expr = strings.Join(args, " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}
			criteria, err := co.Criteria()
			if err != nil {
				return err
			}
			day, err := timeutil.Resolve(expr, timeutil.ResolveOptions{Guess: timeutil.GuessBegin})
			if err != nil {
				return err
			}
			criteria.From = day
			s := show.Show{
				Store:    p,
				Config:   cfg,
				Criteria: criteria,
				Title:    day.Format("Monday 2006-01-02"),
				ShowID:   io.ShowID,
				NoPager:  po.NoPager,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddMatchArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.AddShowIDArgs(cmd, io)
	options.AddPagerArg(cmd, po)

	topLevel.AddCommand(cmd)
}

func addSince(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	po := &options.OutputOptions{}

	var (
		expr   string
		totals bool
	)

	cmd := &cobra.Command{
		Use:   "since <date expression>",
		Short: "List every entry since a date",
		Example: `
trail since monday
trail since "last week" --totals
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a date expression")
			}
			expr = strings.Join(args, " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}
			criteria, err := co.Criteria()
			if err != nil {
				return err
			}
			criteria.After = expr
			s := show.Show{
				Store:    p,
				Config:   cfg,
				Criteria: criteria,
				Title:    "Since " + expr,
				Totals:   totals,
				ShowID:   io.ShowID,
				NoPager:  po.NoPager,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddMatchArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.AddShowIDArgs(cmd, io)
	options.AddPagerArg(cmd, po)
	cmd.Flags().BoolVar(&totals, "totals", false,
		"Append a summed time footer.")

	topLevel.AddCommand(cmd)
}

func addGrep(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	po := &options.OutputOptions{}

	var pattern string

	cmd := &cobra.Command{
		Use:     "grep <pattern>",
		Aliases: []string{"search"},
		Short:   "Search entry titles and notes",
		Long: `Search entry titles and notes. Wrap the pattern in slashes for a regular
expression, lead with a single quote for an exact match.`,
		Example: `
trail grep standup
trail grep "/parse.*error/"
trail search "'Exact Phrase" --case=sensitive
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a search pattern")
			}
			pattern = strings.Join(args, " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}
			criteria, err := co.Criteria()
			if err != nil {
				return err
			}
			criteria.Search = pattern
			s := show.Show{
				Store:    p,
				Config:   cfg,
				Criteria: criteria,
				ShowID:   io.ShowID,
				NoPager:  po.NoPager,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddMatchArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.AddShowIDArgs(cmd, io)
	options.AddPagerArg(cmd, po)

	topLevel.AddCommand(cmd)
}

func addCalendar(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	po := &options.OutputOptions{}

	var expr string

	cmd := &cobra.Command{
		Use:     "calendar [month expression]",
		Aliases: []string{"cal"},
		Short:   "Show a month of activity at a glance",
		Example: `
trail calendar
trail cal "last month"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				expr = strings.Join(args, " ")
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}
			criteria, err := co.Criteria()
			if err != nil {
				return err
			}
			s := show.Show{
				Store:    p,
				Config:   cfg,
				Criteria: criteria,
				Calendar: true,
				NoPager:  po.NoPager,
			}
			if expr != "" {
				month, err := timeutil.Resolve(expr, timeutil.ResolveOptions{Guess: timeutil.GuessBegin})
				if err != nil {
					return err
				}
				s.Month = month
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddMatchArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.AddPagerArg(cmd, po)

	topLevel.AddCommand(cmd)
}
