package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/importer"
	"tableflip.dev/trail/pkg/runner/ingest"
)

func addImport(topLevel *cobra.Command) {
	so := &options.SectionOptions{}

	var (
		file      string
		kind      string
		tags      []string
		prefix    string
		overwrite bool
		noAutotag bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Pull entries in from another journal or a report",
		Long: `Pull entries in from another file. The journal type merges a file in the
native format, the timing type reads a Timing.app JSON report. Entries
already present are skipped unless --overwrite is set.`,
		Example: `
trail import old-journal.md
trail import report.json --type=timing --section=Imported
trail import laptop.md --prefix="[laptop]" --tag=synced
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one file")
			}
			file = args[0]

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}
			s := ingest.Ingest{
				Store:     p,
				Config:    cfg,
				File:      file,
				Type:      kind,
				Section:   so.Section,
				Tags:      tags,
				Prefix:    prefix,
				Overwrite: overwrite,
				NoAutotag: noAutotag,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddSectionArgs(cmd, so)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	cmd.Flags().StringVarP(&kind, "type", "t", "",
		"Import type, defaults to journal.")
	_ = cmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return importer.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	cmd.Flags().StringArrayVar(&tags, "tag", nil,
		"Tag to put on every imported entry. Repeatable.")
	cmd.Flags().StringVar(&prefix, "prefix", "",
		"Text prepended to every imported title.")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false,
		"Replace entries that already exist instead of skipping them.")
	cmd.Flags().BoolVar(&noAutotag, "no-autotag", false,
		"Skip the configured autotag rules for imported entries.")

	topLevel.AddCommand(cmd)
}
