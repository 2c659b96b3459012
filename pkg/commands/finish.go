package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/runner/finish"
)

func addFinish(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	no := &options.InteractiveOptions{}
	wo := &options.WhenOptions{}

	var (
		all   bool
		count int
	)

	cmd := &cobra.Command{
		Use:     "finish [count]",
		Aliases: []string{"done"},
		Short:   "Mark the most recent open entries done",
		Example: `
trail finish
trail finish 3 --took=45m
trail finish --id=12 --back=17:30
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
			s := finish.Finish{
				Store:       p,
				Config:      cfg,
				Took:        wo.Took,
				Back:        wo.Back,
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

	options.AddTookArgs(cmd, wo)
	options.AddBackArgs(cmd, wo)
	options.AddIDArgs(cmd, io)
	options.InteractiveArgs(cmd, no)
	cmd.Flags().BoolVarP(&all, "all", "a", false,
		"Close every matching open entry.")

	topLevel.AddCommand(cmd)
}

func addCancel(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	no := &options.InteractiveOptions{}

	var (
		all   bool
		count int
	)

	cmd := &cobra.Command{
		Use:   "cancel [count]",
		Short: "Mark the most recent open entries done without a finish time",
		Example: `
trail cancel
trail cancel 2 --section=Errands
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
			s := finish.Finish{
				Store:       p,
				Config:      cfg,
				Cancel:      true,
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
	cmd.Flags().BoolVarP(&all, "all", "a", false,
		"Cancel every matching open entry.")

	topLevel.AddCommand(cmd)
}
