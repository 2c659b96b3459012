package filter

import (
	"regexp"
	"strings"
	"unicode"
)

// Case picks how a search compares letters.
type Case string

const (
	// CaseSmart is sensitive only when the query has an uppercase letter.
	CaseSmart Case = "smart"
	// CaseSensitive always compares exactly.
	CaseSensitive Case = "sensitive"
	// CaseIgnore always folds case.
	CaseIgnore Case = "ignore"
)

// ParseCase normalizes a user-supplied case mode. The empty string means
// smart.
func ParseCase(s string) (Case, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "smart", "s":
		return CaseSmart, true
	case "sensitive", "case-sensitive", "c":
		return CaseSensitive, true
	case "ignore", "insensitive", "i":
		return CaseIgnore, true
	}
	return "", false
}

// searchMatch applies one query against the searchable text of an item.
// Wrapping the query in slashes compiles it as a regular expression, a
// leading single quote forces an exact case-sensitive substring, and
// anything else is a plain substring with the configured case rule.
func searchMatch(text, query string, c Case) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}

	if len(query) > 2 && strings.HasPrefix(query, "/") && strings.HasSuffix(query, "/") {
		pattern := query[1 : len(query)-1]
		if !sensitive(c, pattern) {
			pattern = `(?i)` + pattern
		}
		rx, err := regexp.Compile(pattern)
		if err != nil {
			// An unparsable pattern degrades to a literal search.
			return plainMatch(text, query, c)
		}
		return rx.MatchString(text)
	}

	if rest, ok := strings.CutPrefix(query, "'"); ok {
		return strings.Contains(text, rest)
	}

	return plainMatch(text, query, c)
}

func plainMatch(text, query string, c Case) bool {
	if sensitive(c, query) {
		return strings.Contains(text, query)
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}

// sensitive resolves the case rule against the query under smart casing.
func sensitive(c Case, query string) bool {
	switch c {
	case CaseSensitive:
		return true
	case CaseIgnore:
		return false
	default:
		return strings.IndexFunc(query, unicode.IsUpper) >= 0
	}
}
