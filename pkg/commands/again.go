package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/runner/again"
)

func addAgain(topLevel *cobra.Command) {
	so := &options.SectionOptions{}
	wo := &options.WhenOptions{}

	cmd := &cobra.Command{
		Use:     "again",
		Aliases: []string{"resume"},
		Short:   "Repeat the most recent entry with a fresh timestamp",
		Example: `
trail again
trail resume --section=Currently
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := persistence()
			if err != nil {
				return err
			}
			s := again.Again{
				Store:   p,
				Section: so.Section,
				Back:    wo.Back,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddSectionArgs(cmd, so)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.AddBackArgs(cmd, wo)

	topLevel.AddCommand(cmd)
}
