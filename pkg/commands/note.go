package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/runner/note"
)

func addNote(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	no := &options.InteractiveOptions{}

	var (
		text      string
		id        int64
		replace   bool
		clear     bool
		useEditor bool
	)

	cmd := &cobra.Command{
		Use:   "note [text]",
		Short: "Add a note line to the most recent entry",
		Long: `Add a note line to an entry. Without an id or an interactive pick the
most recent entry takes the note.`,
		Example: `
trail note waiting on the upstream fix
trail note --id=12 --replace "new note"
trail note --clear
trail note --editor
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 && !clear && !useEditor {
				return errors.New("requires note text")
			}
			text = strings.Join(args, " ")

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
			s := note.Note{
				Store:       p,
				Config:      cfg,
				Replace:     replace,
				Clear:       clear,
				Editor:      useEditor,
				ID:          id,
				Criteria:    criteria,
				Interactive: no.Interactive,
			}
			if text != "" {
				s.Text = []string{text}
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddMatchArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.InteractiveArgs(cmd, no)
	cmd.Flags().Int64Var(&id, "id", 0, "Target an entry by ID.")
	cmd.Flags().BoolVarP(&replace, "replace", "r", false,
		"Replace the whole note instead of appending.")
	cmd.Flags().BoolVar(&clear, "clear", false, "Drop the note.")
	cmd.Flags().BoolVarP(&useEditor, "editor", "e", false,
		"Edit the note in $EDITOR.")

	topLevel.AddCommand(cmd)
}
