package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/runner/undo"
)

func addUndo(topLevel *cobra.Command) {
	var list bool

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Put the journal back the way it was",
		Example: `
trail undo
trail undo --list
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := persistence()
			if err != nil {
				return err
			}
			s := undo.Undo{
				Store: p,
				List:  list,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false,
		"List the snapshots instead of restoring one.")

	topLevel.AddCommand(cmd)
}

func addRedo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "redo",
		Short: "Reverse the last undo",
		Example: `
trail redo
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := persistence()
			if err != nil {
				return err
			}
			s := undo.Undo{
				Store: p,
				Redo:  true,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
