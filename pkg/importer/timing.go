package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/journal"
	"tableflip.dev/trail/pkg/tag"
)

func init() {
	Register("timing", Timing{})
}

// Timing imports a Timing.app JSON report. Each activity becomes a
// finished entry spanning its start and end dates, tagged with its
// project path.
type Timing struct{}

const timingSection = "Timing"

type timingActivity struct {
	ActivityTitle string `json:"activityTitle"`
	Project       string `json:"project"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
}

func (Timing) Import(j *journal.Journal, path string, opts Options) (Result, error) {
	var res Result
	raw, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("importer: timing: %w", err)
	}
	var activities []timingActivity
	if err := json.Unmarshal(raw, &activities); err != nil {
		return res, fmt.Errorf("importer: timing: %w", err)
	}

	section := opts.Section
	if section == "" {
		section = timingSection
	}

	var candidates []*item.Item
	for _, act := range activities {
		start, err := parseTimingDate(act.StartDate)
		if err != nil {
			res.Skipped++
			continue
		}
		title := opts.title(act.ActivityTitle)
		if title == "" {
			res.Skipped++
			continue
		}
		for _, name := range projectTags(act.Project) {
			title = tag.Add(title, name, "")
		}
		if end, err := parseTimingDate(act.EndDate); err == nil {
			title = tag.Set(title, "done", tag.SetOptions{
				Value: end.Format(item.TimeFormat),
				Force: true,
			})
		}
		candidates = append(candidates, item.New(section, title, start))
	}

	return merge(j, candidates, opts, res)
}

func parseTimingDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("importer: not a timestamp: %q", s)
}

// projectTags flattens a Timing project path like "Work ▸ Reviews" into
// tag names.
func projectTags(project string) []string {
	var names []string
	for _, part := range strings.Split(project, "▸") {
		if name := slug(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
