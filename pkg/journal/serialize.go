package journal

import (
	"regexp"
	"strings"
)

// notePrefix indents note lines under their entry on disk.
const notePrefix = "\t"

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Serialize renders the journal back to file text: the leading buffer
// verbatim, each section in insertion order under its original header, and
// the trailing buffer verbatim. For input made of well-formed headers and
// entry lines, Serialize(Parse(x)) == x. Any terminal color escapes that
// leaked into titles or notes are stripped.
func (j *Journal) Serialize() string {
	var b strings.Builder
	for _, line := range j.leading {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, s := range j.sections {
		b.WriteString(s.Header())
		b.WriteByte('\n')
		for _, it := range j.items {
			if !strings.EqualFold(it.Section, s.Name) {
				continue
			}
			b.WriteString(it.Line())
			b.WriteByte('\n')
			for _, note := range it.Note {
				b.WriteString(notePrefix)
				b.WriteString(note)
				b.WriteByte('\n')
			}
		}
	}
	for _, line := range j.trailing {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return ansiPattern.ReplaceAllString(b.String(), "")
}
