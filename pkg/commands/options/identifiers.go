package options

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	IDs    []int64
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each entry.")
}

func AddIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().Int64SliceVar(&o.IDs, "id", nil,
		"Target entries by ID instead of recency. Repeatable.")
}

// ParseIDs reads bare numeric arguments as entry IDs.
func ParseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not an entry id: %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
