package tag

import (
	"fmt"
	"regexp"
	"strings"
)

// Bool selects how multiple tag names combine during a match.
type Bool string

const (
	// And keeps a title only when every requested tag is present.
	And Bool = "and"
	// Or keeps a title when any requested tag is present.
	Or Bool = "or"
	// Not keeps a title only when none of the requested tags are present.
	Not Bool = "not"
	// Pattern reinterprets the requested names as a query where a leading
	// '+' requires a tag, a leading '-' or '!' excludes it, and bare names
	// match when any one of them is present.
	Pattern Bool = "pattern"
)

// ParseBool normalizes a user-supplied boolean mode. The empty string means
// And.
func ParseBool(s string) (Bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "and", "all":
		return And, nil
	case "or", "any":
		return Or, nil
	case "not", "none":
		return Not, nil
	case "pattern", "patterns":
		return Pattern, nil
	}
	return "", fmt.Errorf("tag: unknown boolean mode %q", s)
}

// Has reports whether the title's tag set satisfies the boolean combination
// of the requested names. Names match case-insensitively and support the
// glob wildcards '*' and '?'. A leading '@' on a requested name is ignored.
func Has(title string, names []string, mode Bool) bool {
	present := Names(title)
	if mode == Pattern {
		return matchPattern(present, names)
	}
	switch mode {
	case Or:
		for _, name := range names {
			if matchAny(present, strings.TrimPrefix(name, "@")) {
				return true
			}
		}
		return false
	case Not:
		for _, name := range names {
			if matchAny(present, strings.TrimPrefix(name, "@")) {
				return false
			}
		}
		return true
	default:
		for _, name := range names {
			if !matchAny(present, strings.TrimPrefix(name, "@")) {
				return false
			}
		}
		return true
	}
}

func matchPattern(present, tokens []string) bool {
	var required, excluded, anyOf []string
	for _, tok := range tokens {
		tok = strings.TrimPrefix(strings.TrimSpace(tok), "@")
		switch {
		case strings.HasPrefix(tok, "+"):
			required = append(required, tok[1:])
		case strings.HasPrefix(tok, "-"), strings.HasPrefix(tok, "!"):
			excluded = append(excluded, tok[1:])
		case tok != "":
			anyOf = append(anyOf, tok)
		}
	}
	for _, p := range required {
		if !matchAny(present, p) {
			return false
		}
	}
	for _, p := range excluded {
		if matchAny(present, p) {
			return false
		}
	}
	if len(anyOf) == 0 {
		return true
	}
	for _, p := range anyOf {
		if matchAny(present, p) {
			return true
		}
	}
	return false
}

func matchAny(present []string, pattern string) bool {
	rx := globRegexp(pattern)
	for _, name := range present {
		if rx.MatchString(name) {
			return true
		}
	}
	return false
}

// globRegexp converts a tag name pattern into an anchored case-insensitive
// regular expression, with '*' and '?' as wildcards. Everything else is
// quoted, so the result always compiles.
func globRegexp(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`(?i)^`)
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(`.*?`)
		case '?':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`$`)
	return regexp.MustCompile(b.String())
}
