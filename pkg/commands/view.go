package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/config"
	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/runner/show"
	"tableflip.dev/trail/pkg/runner/views"
	"tableflip.dev/trail/pkg/tag"
)

func addView(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	no := &options.InteractiveOptions{}
	po := &options.OutputOptions{}

	var (
		name   string
		totals bool
	)

	cmd := &cobra.Command{
		Use:   "view <name>",
		Short: "List entries through a saved view",
		Long: `List entries through a view saved in the config file. Flags given here
refine the view's own criteria.`,
		Example: `
trail view standup
trail view blockers --count=5
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a view name")
			}
			name = strings.Join(args, " ")

			return nil
		},
		ValidArgsFunction: completeViews,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}
			v, err := cfg.View(name)
			if errors.Is(err, config.ErrUnknownView) {
				if suggestions := cfg.SuggestViews(name); len(suggestions) > 0 {
					return fmt.Errorf("%w, did you mean %q?", err, suggestions[0])
				}
				return err
			}
			if err != nil {
				return err
			}
			criteria, err := v.Criteria()
			if err != nil {
				return err
			}
			if co.Section != "" {
				criteria.Section = co.Section
			}
			if len(co.Tags) > 0 {
				b, err := tag.ParseBool(co.Bool)
				if err != nil {
					return err
				}
				criteria.Tags = co.Tags
				criteria.Bool = b
			}
			if co.Search != "" {
				criteria.Search = co.Search
			}
			if co.Unfinished {
				criteria.Unfinished = true
			}
			if co.Count > 0 {
				criteria.Count = co.Count
			}
			if co.Age != "" {
				criteria.Age = filter.ParseAge(co.Age)
			}
			s := show.Show{
				Store:       p,
				Config:      cfg,
				Criteria:    criteria,
				Title:       name,
				Totals:      totals,
				ShowID:      io.ShowID,
				Interactive: no.Interactive,
				NoPager:     po.NoPager,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddMatchArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.AddCountArgs(cmd, co)
	options.AddShowIDArgs(cmd, io)
	options.InteractiveArgs(cmd, no)
	options.AddPagerArg(cmd, po)
	cmd.Flags().BoolVar(&totals, "totals", false,
		"Append a summed time footer.")

	topLevel.AddCommand(cmd)
}

func addViews(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "List the saved views",
		Example: `
trail views
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			s := views.Views{
				Config: cfg,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func completeViews(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, len(cfg.Views))
	for _, name := range cfg.ViewNames() {
		if toComplete == "" || strings.HasPrefix(strings.ToLower(name), strings.ToLower(toComplete)) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
