package options

import (
	"github.com/spf13/cobra"
)

// SectionOptions names one section, for verbs that write into it.
type SectionOptions struct {
	Section string
}

func AddSectionArgs(cmd *cobra.Command, o *SectionOptions) {
	cmd.Flags().StringVarP(&o.Section, "section", "s", "",
		"Section to write into, defaults to the configured one.")
}
