package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/runner/archive"
	"tableflip.dev/trail/pkg/tag"
)

func addArchive(topLevel *cobra.Command) {
	so := &options.SectionOptions{}

	var (
		destination string
		keep        int
		tags        []string
		boolMode    string
		search      string
		before      string
		label       bool
	)

	cmd := &cobra.Command{
		Use:   "archive [destination]",
		Short: "Move old entries into an archive section",
		Long: `Move entries out of their section into an archive section, keeping the
most recent ones in place. Without a destination the configured archive
section is used.`,
		Example: `
trail archive
trail archive Done --section=Work --keep=5
trail archive --tag=obsolete --before="last month"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most a destination, got %d arguments", len(args))
			}
			if len(args) == 1 {
				destination = strings.TrimSpace(args[0])
			}

			return nil
		},
		ValidArgsFunction: completeSections,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}
			b, err := tag.ParseBool(boolMode)
			if err != nil {
				return err
			}
			s := archive.Archive{
				Store:       p,
				Config:      cfg,
				Source:      so.Section,
				Destination: destination,
				Keep:        keep,
				Tags:        tags,
				Bool:        b,
				Search:      search,
				Before:      before,
				Label:       label,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddSectionArgs(cmd, so)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	cmd.Flags().IntVar(&keep, "keep", 0,
		"How many recent entries stay behind in the source section.")
	cmd.Flags().StringArrayVar(&tags, "tag", nil,
		"Archive only entries carrying a tag. Repeatable.")
	cmd.Flags().StringVar(&boolMode, "bool", "",
		"How multiple --tag flags combine: and, or, not, or pattern.")
	cmd.Flags().StringVar(&search, "search", "",
		"Archive only entries matching text.")
	cmd.Flags().StringVar(&before, "before", "",
		"Archive only entries before a date expression.")
	cmd.Flags().BoolVar(&label, "label", false,
		"Stamp archived entries with @from(<original section>).")

	topLevel.AddCommand(cmd)
}

func addRotate(topLevel *cobra.Command) {
	so := &options.SectionOptions{}

	var (
		keep     int
		tags     []string
		boolMode string
		search   string
		before   string
	)

	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "Move old entries into a dated sibling file",
		Long: `Move entries out of the journal into a sibling file named after today,
for example trail_2026-01-31.md next to trail.md. The most recent entries
stay in place.`,
		Example: `
trail rotate --keep=10
trail rotate --section=Work --before="6 months ago"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}
			b, err := tag.ParseBool(boolMode)
			if err != nil {
				return err
			}
			s := archive.Archive{
				Store:  p,
				Config: cfg,
				Source: so.Section,
				Keep:   keep,
				Tags:   tags,
				Bool:   b,
				Search: search,
				Before: before,
				Rotate: true,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddSectionArgs(cmd, so)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	cmd.Flags().IntVar(&keep, "keep", 0,
		"How many recent entries stay behind per section.")
	cmd.Flags().StringArrayVar(&tags, "tag", nil,
		"Rotate only entries carrying a tag. Repeatable.")
	cmd.Flags().StringVar(&boolMode, "bool", "",
		"How multiple --tag flags combine: and, or, not, or pattern.")
	cmd.Flags().StringVar(&search, "search", "",
		"Rotate only entries matching text.")
	cmd.Flags().StringVar(&before, "before", "",
		"Rotate only entries before a date expression.")

	topLevel.AddCommand(cmd)
}
