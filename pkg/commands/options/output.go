package options

import (
	"github.com/spf13/cobra"
)

// OutputOptions selects how listings leave the terminal.
type OutputOptions struct {
	// Output names an export format to render through instead of the
	// pretty listing.
	Output  string
	NoPager bool
}

func AddOutputArgs(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", "",
		"Render through an export format instead of the default listing.")
	AddPagerArg(cmd, o)
}

func AddPagerArg(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().BoolVar(&o.NoPager, "no-pager", false,
		"Never pipe output through the pager.")
}
