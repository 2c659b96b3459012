package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	so := &options.SectionOptions{}
	wo := &options.WhenOptions{}

	var (
		title     string
		note      []string
		doneAt    string
		timed     bool
		useEditor bool
	)

	cmd := &cobra.Command{
		Use:     "add <entry>",
		Aliases: []string{"now", "did"},
		Short:   "Add a journal entry",
		Long: `Add a journal entry to a section. Inline @tags and @tags(values) in the
title are kept as written. The did alias marks the entry done right away.`,
		Example: `
trail add fixing the parser @bug
trail now "reviewing PRs" --note="the big one first"
trail did standup --back=9:30 --took=15m
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 && !useEditor {
				return errors.New("requires an entry title")
			}
			title = strings.Join(args, " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}
			s := add.Add{
				Store:   p,
				Config:  cfg,
				Title:   title,
				Section: so.Section,
				Note:    note,
				Back:    wo.Back,
				Took:    wo.Took,
				Timed:   timed,
				Editor:  useEditor,
			}
			if cmd.CalledAs() == "did" || doneAt != "" || wo.Took != "" {
				s.Done = true
			}
			if doneAt != "" && doneAt != "now" {
				s.DoneExpr = doneAt
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddSectionArgs(cmd, so)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.AddBackArgs(cmd, wo)
	options.AddTookArgs(cmd, wo)
	cmd.Flags().StringArrayVarP(&note, "note", "m", nil,
		"Note line under the entry. Repeatable.")
	cmd.Flags().StringVar(&doneAt, "done", "",
		"Mark the entry done right away, optionally at a time expression.")
	cmd.Flags().Lookup("done").NoOptDefVal = "now"
	cmd.Flags().BoolVar(&timed, "finish-last", false,
		"Close the previous open entry out with this entry's start time.")
	cmd.Flags().BoolVarP(&useEditor, "editor", "e", false,
		"Compose the entry in $EDITOR.")

	topLevel.AddCommand(cmd)
}
