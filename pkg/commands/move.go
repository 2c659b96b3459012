package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/runner/move"
)

func addMove(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	no := &options.InteractiveOptions{}

	var (
		target string
		label  bool
		count  int
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "move <section>",
		Short: "Move the most recent entries into another section",
		Example: `
trail move Later
trail move Archive --id=4 --id=9
trail move "Next Week" --label -n 3
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a target section")
			}
			target = strings.Join(args, " ")

			return nil
		},
		ValidArgsFunction: completeSections,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := persistence()
			if err != nil {
				return err
			}
			criteria, err := co.Criteria()
			if err != nil {
				return err
			}
			s := move.Move{
				Store:       p,
				Target:      target,
				Label:       label,
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
	cmd.Flags().BoolVar(&label, "label", false,
		"Stamp moved entries with @from(<original section>).")
	cmd.Flags().IntVarP(&count, "count", "n", 0,
		"Move the last n matching entries.")
	cmd.Flags().BoolVarP(&all, "all", "a", false,
		"Move every matching entry.")

	topLevel.AddCommand(cmd)
}
