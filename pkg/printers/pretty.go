// Package printers renders journal listings for the terminal. Methods
// return strings so callers can route output through the pager, and
// colors collapse to plain text when color is disabled.
package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/tag"
	"tableflip.dev/trail/pkg/timeutil"
)

// Pretty renders entry listings.
type Pretty struct {
	// ShowID prefixes each entry with its ID column.
	ShowID bool
	// Wrap re-flows note lines at this column. Zero leaves notes as-is.
	Wrap int
}

var (
	heading   = color.New(color.Bold, color.Underline)
	faint     = color.New(color.Faint)
	noneStyle = color.New(color.Faint, color.Italic)
	idStyle   = color.New(color.FgHiYellow, color.Italic, color.Faint)
	tagStyle  = color.New(color.FgCyan)
	doneStyle = color.New(color.FgGreen, color.Faint)
)

var idSpacing = strings.Repeat(" ", len("1234  "))

// Title renders a bold underlined heading line.
func (p Pretty) Title(title string) string {
	return heading.Sprint(title) + "\n"
}

// TitleWithCount renders a section heading with a faint entry counter.
func (p Pretty) TitleWithCount(title string, count int) string {
	s := heading.Sprint(title) + faint.Sprintf(" - %d", count)
	switch count {
	case 1:
		return s + faint.Sprint(" entry") + "\n"
	default:
		return s + faint.Sprint(" entries") + "\n"
	}
}

// Items renders entries grouped under their section headings, keeping the
// display order inside each group.
func (p Pretty) Items(items []*item.Item) string {
	if len(items) == 0 {
		return noneStyle.Sprint(" none") + "\n"
	}
	var order []string
	grouped := make(map[string][]*item.Item)
	for _, it := range items {
		if _, ok := grouped[it.Section]; !ok {
			order = append(order, it.Section)
		}
		grouped[it.Section] = append(grouped[it.Section], it)
	}

	var b strings.Builder
	for i, name := range order {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(p.TitleWithCount(name, len(grouped[name])))
		for _, it := range grouped[name] {
			b.WriteString(p.Line(it))
		}
	}
	return b.String()
}

// List renders a flat run of entry lines with no section headings.
func (p Pretty) List(items []*item.Item) string {
	if len(items) == 0 {
		return noneStyle.Sprint(" none") + "\n"
	}
	var b strings.Builder
	for _, it := range items {
		b.WriteString(p.Line(it))
	}
	return b.String()
}

// Line renders one entry with its date, title, interval, and note.
func (p Pretty) Line(it *item.Item) string {
	var b strings.Builder
	if p.ShowID {
		id := fmt.Sprintf("%d", it.ID)
		b.WriteString(idStyle.Sprint(id))
		if pad := len(idSpacing) - len(id); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	b.WriteString(faint.Sprint(it.Date.Format(item.TimeFormat)))
	b.WriteString(" | ")
	b.WriteString(colorTitle(it.Title))
	if d, ok := it.Interval(); ok {
		b.WriteString(faint.Sprintf(" [%s]", timeutil.FormatWindow(d)))
	}
	b.WriteString("\n")
	for _, line := range p.noteLines(it) {
		if p.ShowID {
			b.WriteString(idSpacing)
		}
		b.WriteString("\t")
		b.WriteString(faint.Sprint(line))
		b.WriteString("\n")
	}
	return b.String()
}

// Totals renders the summed intervals of the listed items, nothing when
// no interval is defined.
func (p Pretty) Totals(items []*item.Item) string {
	total := item.Total(items)
	if total <= 0 {
		return ""
	}
	return faint.Sprintf("Total time: %s\n", timeutil.FormatWindow(total))
}

func (p Pretty) noteLines(it *item.Item) []string {
	if !it.HasNote() {
		return nil
	}
	if p.Wrap <= 0 {
		return it.Note
	}
	wrapped := wordwrap.String(strings.Join(it.Note, "\n"), p.Wrap)
	return strings.Split(wrapped, "\n")
}

// colorTitle highlights tags inside a title, @done in its own shade.
func colorTitle(title string) string {
	toks := tag.Tokenize(title)
	parts := make([]string, 0, len(toks))
	for _, tok := range toks {
		switch {
		case tok.Tag == nil:
			parts = append(parts, tok.Text)
		case strings.EqualFold(tok.Tag.Name, "done"):
			parts = append(parts, doneStyle.Sprint(tok.Tag.Raw))
		default:
			parts = append(parts, tagStyle.Sprint(tok.Tag.Raw))
		}
	}
	return strings.Join(parts, " ")
}
