package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/commands/options"
	formats "tableflip.dev/trail/pkg/export"
	"tableflip.dev/trail/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	co := &options.CriteriaOptions{}

	var (
		format       string
		template     string
		dateFormat   string
		templateFile string
		title        string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render entries through an export format",
		Example: `
trail export --output=json
trail export --output=markdown --section=Work --output-file=work.md
trail export --template="%date ; %title"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}
			criteria, err := co.Criteria()
			if err != nil {
				return err
			}
			s := export.Export{
				Store:        p,
				Config:       cfg,
				Criteria:     criteria,
				Format:       format,
				Template:     template,
				DateFormat:   dateFormat,
				TemplateFile: templateFile,
				Title:        title,
				OutputFile:   outputFile,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddCriteriaArgs(cmd, co)
	flagName := "section"
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeSections)

	cmd.Flags().StringVarP(&format, "output", "o", "",
		"Export format or configured template name.")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return formats.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	cmd.Flags().StringVar(&template, "template", "",
		`Inline per-entry pattern, example: --template="%date | %title%note".`)
	cmd.Flags().StringVar(&dateFormat, "date-format", "",
		"Go time layout for %date in template output.")
	cmd.Flags().StringVar(&templateFile, "template-file", "",
		"HTML page template overriding the built-in one.")
	cmd.Flags().StringVar(&title, "title", "",
		"Title handed to the renderer.")
	cmd.Flags().StringVarP(&outputFile, "output-file", "f", "",
		"Write the result to a file instead of stdout.")

	topLevel.AddCommand(cmd)
}
