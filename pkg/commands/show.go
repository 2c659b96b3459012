package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	"tableflip.dev/trail/pkg/runner/export"
	"tableflip.dev/trail/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}
	io := &options.IDOptions{}
	no := &options.InteractiveOptions{}
	po := &options.OutputOptions{}

	var totals bool

	cmd := &cobra.Command{
		Use:     "show [section]",
		Aliases: []string{"list", "ls"},
		Short:   "List entries, filtered every which way",
		Example: `
trail show
trail show Work --unfinished
trail show --tag=bug --bool=or --search=parser
trail show All -n 20 --age=oldest
trail show --output=json
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				co.Section = strings.Join(args, " ")
			}

			return nil
		},
		ValidArgsFunction: completeSections,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}
			criteria, err := co.Criteria()
			if err != nil {
				return err
			}
			if po.Output != "" {
				s := export.Export{
					Store:    p,
					Config:   cfg,
					Criteria: criteria,
					Format:   po.Output,
				}
				err = s.Do(context.Background())
				return oo.HandleError(err)
			}
			reverse, err := co.Reverse()
			if err != nil {
				return err
			}
			s := show.Show{
				Store:       p,
				Config:      cfg,
				Criteria:    criteria,
				Totals:      totals,
				ShowID:      io.ShowID,
				Interactive: no.Interactive,
				Reverse:     reverse,
				NoPager:     po.NoPager,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddCriteriaArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	options.AddSortArg(cmd, co)
	options.AddShowIDArgs(cmd, io)
	options.InteractiveArgs(cmd, no)
	options.AddOutputArgs(cmd, po)
	cmd.Flags().BoolVar(&totals, "totals", false,
		"Append a summed time footer.")

	topLevel.AddCommand(cmd)
}
