package tag

import (
	"regexp"
	"strings"
)

// SetOptions controls a single Set mutation.
type SetOptions struct {
	// Value is attached to the tag as @name(value). On a rename it replaces
	// the carried value when non-empty.
	Value string
	// Remove strips every tag matching name instead of adding one.
	Remove bool
	// Rename replaces matching tags in place with a tag of this name,
	// carrying the old value unless Value is set.
	Rename string
	// Regex treats name as a regular expression when matching existing tags.
	Regex bool
	// Force removes any existing tag of the same name before appending, so a
	// stale value is refreshed and the tag moves to the end of the title.
	Force bool
}

// Set applies one tag mutation to a title and returns the result. A no-op,
// such as adding a tag that is already present or removing one that is not,
// returns the title unchanged byte for byte. After any real mutation the
// title carries at most one tag per name.
func Set(title, name string, opts SetOptions) string {
	toks := Tokenize(title)
	match := matcherFor(name, opts.Regex)

	switch {
	case opts.Remove:
		out, removed := drop(toks, match)
		if !removed {
			return title
		}
		return Render(dedup(out))

	case opts.Rename != "":
		renamed := false
		for i, tok := range toks {
			if tok.Tag == nil || !match(tok.Tag.Name) {
				continue
			}
			value := opts.Value
			if value == "" {
				value = tok.Tag.Value
			}
			toks[i] = Token{Tag: &Tag{Name: opts.Rename, Value: value}}
			renamed = true
		}
		if !renamed {
			return title
		}
		return Render(dedup(toks))

	case opts.Force:
		out, _ := drop(toks, match)
		out = append(out, Token{Tag: &Tag{Name: name, Value: opts.Value}})
		return Render(dedup(out))

	default:
		for _, tok := range toks {
			if tok.Tag != nil && match(tok.Tag.Name) {
				return title
			}
		}
		toks = append(toks, Token{Tag: &Tag{Name: name, Value: opts.Value}})
		return Render(dedup(toks))
	}
}

// Add appends @name, or @name(value) when value is non-empty, unless a tag
// of that name is already present.
func Add(title, name, value string) string {
	return Set(title, name, SetOptions{Value: value})
}

// Remove strips every tag named name from the title.
func Remove(title, name string) string {
	return Set(title, name, SetOptions{Remove: true})
}

// Rename replaces tags named old with new, carrying their values.
func Rename(title, old, new string) string {
	return Set(title, old, SetOptions{Rename: new})
}

func drop(toks []Token, match func(string) bool) ([]Token, bool) {
	out := make([]Token, 0, len(toks))
	dropped := false
	for _, tok := range toks {
		if tok.Tag != nil && match(tok.Tag.Name) {
			dropped = true
			continue
		}
		out = append(out, tok)
	}
	return out, dropped
}

// dedup keeps the first tag of each name, case-insensitive.
func dedup(toks []Token) []Token {
	seen := make(map[string]bool, len(toks))
	out := make([]Token, 0, len(toks))
	for _, tok := range toks {
		if tok.Tag != nil {
			key := strings.ToLower(tok.Tag.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, tok)
	}
	return out
}

// matcherFor builds a case-insensitive name matcher. With regex set the name
// is compiled as an anchored expression; a name that fails to compile falls
// back to a literal match.
func matcherFor(name string, regex bool) func(string) bool {
	if regex {
		if rx, err := regexp.Compile(`(?i)^(?:` + name + `)$`); err == nil {
			return rx.MatchString
		}
	}
	return func(candidate string) bool {
		return strings.EqualFold(candidate, name)
	}
}
