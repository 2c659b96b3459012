package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/runner/retag"
)

func addFlag(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	no := &options.InteractiveOptions{}

	var (
		date  bool
		count int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "flag",
		Short: "Put the marker tag on the most recent entries",
		Example: `
trail flag
trail flag -n 2 --section=Work
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
			s := retag.Retag{
				Store:       p,
				Names:       []string{cfg.MarkerTag},
				Date:        date,
				Count:       count,
				All:         all,
				IDs:         io.IDs,
				Criteria:    criteria,
				Interactive: no.Interactive,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddMatchArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.AddIDArgs(cmd, io)
	options.InteractiveArgs(cmd, no)
	cmd.Flags().BoolVarP(&date, "date", "d", false,
		"Record the flag time as the tag value.")
	cmd.Flags().IntVarP(&count, "count", "n", 0,
		"Flag the last n matching entries.")
	cmd.Flags().BoolVarP(&all, "all", "a", false,
		"Flag every matching entry.")

	topLevel.AddCommand(cmd)
}

func addUnflag(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	no := &options.InteractiveOptions{}

	var (
		count int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "unflag",
		Short: "Take the marker tag off the most recent entries",
		Example: `
trail unflag
trail unflag --all
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
			s := retag.Retag{
				Store:       p,
				Names:       []string{cfg.MarkerTag},
				Remove:      true,
				Count:       count,
				All:         all,
				IDs:         io.IDs,
				Criteria:    criteria,
				Interactive: no.Interactive,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddMatchArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.AddIDArgs(cmd, io)
	options.InteractiveArgs(cmd, no)
	cmd.Flags().IntVarP(&count, "count", "n", 0,
		"Unflag the last n matching entries.")
	cmd.Flags().BoolVarP(&all, "all", "a", false,
		"Unflag every matching entry.")

	topLevel.AddCommand(cmd)
}
