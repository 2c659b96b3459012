package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/runner/strike"
)

func addStrike(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	no := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "strike <id>...",
		Aliases: []string{"delete", "rm"},
		Short:   "Delete entries from the journal",
		Example: `
trail strike 12
trail strike 3 4 5
trail strike --interactive --section=Work
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 && !no.Interactive {
				return errors.New("requires an entry id")
			}
			ids, err := options.ParseIDs(args)
			if err != nil {
				return err
			}
			io.IDs = append(io.IDs, ids...)

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := persistence()
			if err != nil {
				return err
			}
			criteria, err := co.Criteria()
			if err != nil {
				return err
			}
			s := strike.Strike{
				Store:       p,
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

	topLevel.AddCommand(cmd)
}
