package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch [section]",
		Short: "Follow the journal file and print entries as they appear",
		Long: `Follow the journal file and print every entry another process appends,
until interrupted.`,
		Example: `
trail watch
trail watch Work --tag=deploy
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
			s := watch.Watch{
				Store:    p,
				Criteria: criteria,
				ShowID:   io.ShowID,
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddMatchArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
