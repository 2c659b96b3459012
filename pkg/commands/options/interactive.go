package options

import "github.com/spf13/cobra"

// InteractiveOptions routes a verb through the terminal picker so the
// entries come from a selection instead of the usual most-recent rule.
type InteractiveOptions struct {
	Interactive bool
}

func InteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		`Pick the entries from a list instead of taking the most recent.`)
}
