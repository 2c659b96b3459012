package journal

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"tableflip.dev/trail/pkg/item"
)

// ParseError reports unreadable input. Malformed lines never produce one;
// the parser is lenient and degrades them to leading, trailing, or note
// content.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "journal: parse: " + e.Err.Error()
	}
	return "journal: parse " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	sectionPattern = regexp.MustCompile(`^(\S[\S ]+):\s*(@\S+\s*)*$`)
	entryPattern   = regexp.MustCompile(`^\s*- (\d{4}-\d\d-\d\d \d\d:\d\d) \| (.*)`)
)

// Parse builds a journal from raw file text. Lines are scanned once with a
// current-section cursor: headers open sections, entry lines attach to the
// open section, indented lines continue the previous entry's note, and
// everything else lands in the leading or trailing buffer verbatim.
func Parse(data []byte) (*Journal, error) {
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, &ParseError{Err: errors.New("binary content")}
	}
	if !utf8.Valid(data) {
		return nil, &ParseError{Err: errors.New("not valid UTF-8")}
	}

	j := New()
	var cur *Section
	var last *item.Item

	text := string(data)
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for _, line := range lines {
		if m := sectionPattern.FindStringSubmatch(line); m != nil {
			cur = j.register(&Section{Name: m[1], Original: line})
			continue
		}
		if m := entryPattern.FindStringSubmatch(line); m != nil {
			date, err := time.ParseInLocation(item.TimeFormat, m[1], time.Local)
			if err == nil {
				if cur == nil {
					cur = j.register(&Section{Name: Uncategorized})
				}
				last = j.attach(item.New(cur.Name, m[2], date))
				continue
			}
			// An entry-shaped line with an impossible date falls through to
			// the plain-content rules.
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch {
		case last == nil:
			// Nothing parsed yet, so this is preamble.
			j.leading = append(j.leading, line)
		case !startsWithSpace(line):
			j.trailing = append(j.trailing, line)
		default:
			// Indented continuation of the most recently added entry.
			last.Note = append(last.Note, strings.TrimSpace(line))
		}
	}
	return j, nil
}

// ParseString is Parse for in-memory text.
func ParseString(text string) (*Journal, error) {
	return Parse([]byte(text))
}

func startsWithSpace(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}
