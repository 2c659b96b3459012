// Package tag detects and mutates @name and @name(value) annotations
// embedded in entry titles. Titles are tokenized into plain words and tag
// spans so mutations operate on structure rather than on chained regex
// substitutions.
package tag

import (
	"strings"
)

// Tag is one annotation found in a title. Raw holds the exact text the tag
// was scanned from, including the value parens when present.
type Tag struct {
	Name  string
	Value string
	Raw   string
}

func (t Tag) String() string {
	if t.Value != "" {
		return "@" + t.Name + "(" + t.Value + ")"
	}
	return "@" + t.Name
}

// Token is one unit of a tokenized title: a plain word when Tag is nil, a
// tag span otherwise.
type Token struct {
	Text string
	Tag  *Tag
}

// Tokenize splits a title into plain words and tag spans. A tag starts with
// '@' at the beginning of the title or after whitespace; its name runs to
// the next whitespace or '(' and a parenthesized value may follow the name
// directly. Values may contain spaces, so scanning is byte-wise instead of a
// field split.
func Tokenize(title string) []Token {
	var toks []Token
	var plain strings.Builder
	flush := func() {
		if plain.Len() == 0 {
			return
		}
		for _, f := range strings.Fields(plain.String()) {
			toks = append(toks, Token{Text: f})
		}
		plain.Reset()
	}
	i := 0
	for i < len(title) {
		if title[i] == '@' && (i == 0 || title[i-1] == ' ' || title[i-1] == '\t') {
			if t, width := scanTag(title[i:]); t != nil {
				flush()
				toks = append(toks, Token{Tag: t})
				i += width
				continue
			}
		}
		plain.WriteByte(title[i])
		i++
	}
	flush()
	return toks
}

// scanTag reads one tag from the front of s, which must start with '@'.
// It returns nil when s is a bare '@' with no name.
func scanTag(s string) (*Tag, int) {
	i := 1
	for i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != '(' {
		i++
	}
	if i == 1 {
		return nil, 0
	}
	name := s[1:i]
	if i < len(s) && s[i] == '(' {
		if end := strings.IndexByte(s[i:], ')'); end >= 0 {
			return &Tag{Name: name, Value: s[i+1 : i+end], Raw: s[:i+end+1]}, i + end + 1
		}
	}
	return &Tag{Name: name, Raw: s[:i]}, i
}

// Render joins tokens back into a title with single spaces. Rendering only
// happens after a real mutation, so whitespace normalization here never
// touches a title that was left alone.
func Render(toks []Token) string {
	parts := make([]string, 0, len(toks))
	for _, tok := range toks {
		if tok.Tag != nil {
			parts = append(parts, tok.Tag.String())
		} else {
			parts = append(parts, tok.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Parse returns every tag in the title in order of appearance.
func Parse(title string) []Tag {
	var tags []Tag
	for _, tok := range Tokenize(title) {
		if tok.Tag != nil {
			tags = append(tags, *tok.Tag)
		}
	}
	return tags
}

// Names returns the tag names in the title, case preserved, in order of
// appearance.
func Names(title string) []string {
	var names []string
	for _, t := range Parse(title) {
		names = append(names, t.Name)
	}
	return names
}

// Value returns the value of the first tag matching name, case-insensitive.
// The second return reports whether the tag was present at all.
func Value(title, name string) (string, bool) {
	for _, t := range Parse(title) {
		if strings.EqualFold(t.Name, name) {
			return t.Value, true
		}
	}
	return "", false
}

// Strip returns the title with every tag removed.
func Strip(title string) string {
	toks := Tokenize(title)
	kept := make([]Token, 0, len(toks))
	for _, tok := range toks {
		if tok.Tag == nil {
			kept = append(kept, tok)
		}
	}
	return Render(kept)
}
