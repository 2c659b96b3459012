package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/runner/sections"
)

func addSections(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List the journal's sections",
		Example: `
trail sections
trail sections add Later
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := persistence()
			if err != nil {
				return err
			}
			s := sections.List{
				Store: p,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	addSectionsAdd(cmd)

	topLevel.AddCommand(cmd)
}

func addSectionsAdd(topLevel *cobra.Command) {
	var name string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an empty section",
		Example: `
trail sections add "Next Week"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a section name")
			}
			name = strings.Join(args, " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := persistence()
			if err != nil {
				return err
			}
			s := sections.Add{
				Store: p,
				Name:  name,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
