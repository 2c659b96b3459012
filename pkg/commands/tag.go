package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/runner/retag"
)

func addTag(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	no := &options.InteractiveOptions{}

	var (
		names  []string
		value  string
		date   bool
		rename string
		regex  bool
		force  bool
		count  int
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "tag <name>...",
		Short: "Add tags to the most recent entries",
		Example: `
trail tag urgent
trail tag review --value=alice -n 3
trail tag old --rename=stale --regex --all
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires at least one tag name")
			}
			names = args

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
			s := retag.Retag{
				Store:       p,
				Names:       names,
				Value:       value,
				Date:        date,
				Rename:      rename,
				Regex:       regex,
				Force:       force,
				Count:       count,
				All:         all,
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
	cmd.Flags().StringVarP(&value, "value", "v", "",
		"Attach the tag as @name(value).")
	cmd.Flags().BoolVarP(&date, "date", "d", false,
		"Use the current time as the tag value.")
	cmd.Flags().StringVar(&rename, "rename", "",
		"Rename the named tags to this, keeping values.")
	cmd.Flags().BoolVar(&regex, "regex", false,
		"Match existing tag names as regular expressions.")
	cmd.Flags().BoolVar(&force, "force", false,
		"Refresh the value of a tag that is already present.")
	cmd.Flags().IntVarP(&count, "count", "n", 0,
		"Tag the last n matching entries.")
	cmd.Flags().BoolVarP(&all, "all", "a", false,
		"Tag every matching entry.")

	topLevel.AddCommand(cmd)
}

func addUntag(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	no := &options.InteractiveOptions{}

	var (
		names []string
		regex bool
		count int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "untag <name>...",
		Short: "Remove tags from the most recent entries",
		Example: `
trail untag urgent
trail untag "temp.*" --regex --all
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires at least one tag name")
			}
			names = args

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
			s := retag.Retag{
				Store:       p,
				Names:       names,
				Remove:      true,
				Regex:       regex,
				Count:       count,
				All:         all,
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
	cmd.Flags().BoolVar(&regex, "regex", false,
		"Match existing tag names as regular expressions.")
	cmd.Flags().IntVarP(&count, "count", "n", 0,
		"Untag the last n matching entries.")
	cmd.Flags().BoolVarP(&all, "all", "a", false,
		"Untag every matching entry.")

	topLevel.AddCommand(cmd)
}
