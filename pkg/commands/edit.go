package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	no := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "edit [id]...",
		Short: "Edit entries, or the whole journal, in $EDITOR",
		Long: `Open entries in the editor and apply whatever changed. With no ids and no
criteria the whole journal file is opened instead.`,
		Example: `
trail edit
trail edit 12
trail edit --section=Work --unfinished
`,
		Args: func(cmd *cobra.Command, args []string) error {
			ids, err := options.ParseIDs(args)
			if err != nil {
				return err
			}
			io.IDs = append(io.IDs, ids...)

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
			s := edit.Edit{
				Store:       p,
				Config:      cfg,
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
