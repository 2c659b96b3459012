package importer

import (
	"fmt"

	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/journal"
)

func init() {
	Register("journal", Native{})
}

// Native merges another journal file, keeping each entry's section unless
// the options force one.
type Native struct{}

func (Native) Import(j *journal.Journal, path string, opts Options) (Result, error) {
	var res Result
	src, err := journal.Load(path)
	if err != nil {
		return res, fmt.Errorf("importer: journal: %w", err)
	}

	var candidates []*item.Item
	for _, it := range src.Items() {
		section := opts.Section
		if section == "" {
			section = it.Section
		}
		title := opts.title(it.Title)
		if title == "" {
			res.Skipped++
			continue
		}
		cand := item.New(section, title, it.Date)
		cand.Note = append(cand.Note, it.Note...)
		candidates = append(candidates, cand)
	}

	return merge(j, candidates, opts, res)
}
