package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/runner/tags"
)

func addTags(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}

	cmd := &cobra.Command{
		Use:   "tags [section]",
		Short: "List every tag in use",
		Example: `
trail tags
trail tags Work --unfinished
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				co.Section = strings.Join(args, " ")
			}

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
			s := tags.Tags{
				Store:    p,
				Criteria: criteria,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddMatchArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	topLevel.AddCommand(cmd)
}
