package options

import (
	"github.com/spf13/cobra"
)

// WhenOptions carries the time expression flags shared by the verbs that
// stamp dates.
type WhenOptions struct {
	Back string
	Took string
}

func AddBackArgs(cmd *cobra.Command, o *WhenOptions) {
	cmd.Flags().StringVarP(&o.Back, "back", "b", "",
		`Backdate to a time expression, example: --back=20m or --back="yesterday 15:30".`)
}

func AddTookArgs(cmd *cobra.Command, o *WhenOptions) {
	cmd.Flags().StringVarP(&o.Took, "took", "t", "",
		`Duration the entry took, example: --took=1h30m.`)
}
