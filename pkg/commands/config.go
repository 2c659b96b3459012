package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/config"
	"tableflip.dev/trail/pkg/runner/conf"
	"tableflip.dev/trail/pkg/store"
)

func addConfig(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage the settings",
		Example: `
trail config show
trail config init
trail config edit
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addConfigShow(cmd)
	addConfigInit(cmd)
	addConfigEdit(cmd)

	topLevel.AddCommand(cmd)
}

func addConfigShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show where everything lives and what the settings are",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			// config show still works without an openable journal.
			p, _ := store.Open(cfg, journalFile)
			s := conf.Show{
				Config: cfg,
				Store:  p,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addConfigInit(topLevel *cobra.Command) {
	var (
		file    string
		section string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .trailrc and create the journal",
		Example: `
trail config init
trail config init --section=Work
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := conf.Init{
				File:    file,
				Section: section,
			}
			err := s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&file, "path", "",
		"Where to write the config file, defaults to ~/.trailrc.")
	cmd.Flags().StringVarP(&section, "section", "s", "",
		"First section of a fresh journal.")

	topLevel.AddCommand(cmd)
}

func addConfigEdit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the config file in $EDITOR, with a syntax check on save",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			s := conf.Edit{
				Config: cfg,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
