// Package autotag enriches entry titles with tags driven by configured
// whitelist, synonym, and transform rules.
package autotag

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"tableflip.dev/trail/pkg/tag"
)

// Rules carries the configured rule sets. Whitelist words become tags in
// place, synonyms queue a tag when one of their words appears, and
// transform rules are "regex:replacement" pairs with an optional /r suffix
// that rewrites the matched text instead of appending.
type Rules struct {
	Whitelist []string            `json:"whitelist,omitempty" yaml:"whitelist,omitempty"`
	Synonyms  map[string][]string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
	Transform []string            `json:"transform,omitempty" yaml:"transform,omitempty"`
}

// Empty reports whether no rules are configured.
func (r Rules) Empty() bool {
	return len(r.Whitelist) == 0 && len(r.Synonyms) == 0 && len(r.Transform) == 0
}

// Result reports what one Apply run changed, for the caller's reporting.
type Result struct {
	// Added lists tags appended or converted in place, in application order.
	Added []string
	// Replaced lists tags that rewrote matched text via a /r transform.
	Replaced []string
}

// Changed reports whether the run touched the title at all.
func (r Result) Changed() bool {
	return len(r.Added) > 0 || len(r.Replaced) > 0
}

// Apply runs the whitelist, synonym, and transform passes over a title in
// that order and returns the enriched title. Each keyword converts only its
// first untagged occurrence, and a tag name never appears twice afterward.
// When nothing matches, the title comes back byte for byte unchanged.
func Apply(title string, rules Rules) (string, Result) {
	var res Result
	current := make(map[string]bool)
	for _, name := range tag.Names(title) {
		current[strings.ToLower(name)] = true
	}

	title = whitelistPass(title, rules.Whitelist, current, &res)

	queue := make(map[string]bool)
	synonymPass(title, rules.Synonyms, current, queue)
	title = transformPass(title, rules.Transform, current, queue, &res)

	if len(queue) > 0 {
		specs := make([]string, 0, len(queue))
		for s := range queue {
			specs = append(specs, s)
		}
		sort.Strings(specs)
		for _, s := range specs {
			name, value := splitSpec(s)
			if name == "" || current[strings.ToLower(name)] {
				continue
			}
			title = tag.Set(title, name, tag.SetOptions{Value: value})
			current[strings.ToLower(name)] = true
			res.Added = append(res.Added, s)
		}
	}
	return title, res
}

// whitelistPass converts the first untagged occurrence of each whitelisted
// word into a tag. The original case is kept unless the whitelist entry is
// all-lowercase, in which case the tag is lowercased too.
func whitelistPass(title string, whitelist []string, current map[string]bool, res *Result) string {
	if len(whitelist) == 0 {
		return title
	}
	toks := tag.Tokenize(title)
	converted := false
	for _, word := range whitelist {
		word = strings.TrimSpace(word)
		if word == "" || current[strings.ToLower(word)] {
			continue
		}
		for i, tok := range toks {
			if tok.Tag != nil || !strings.EqualFold(tok.Text, word) {
				continue
			}
			name := tok.Text
			if word == strings.ToLower(word) {
				name = strings.ToLower(name)
			}
			toks[i] = tag.Token{Tag: &tag.Tag{Name: name}}
			current[strings.ToLower(name)] = true
			res.Added = append(res.Added, name)
			converted = true
			break
		}
	}
	if !converted {
		return title
	}
	return tag.Render(toks)
}

func synonymPass(title string, synonyms map[string][]string, current, queue map[string]bool) {
	if len(synonyms) == 0 {
		return
	}
	words := plainWords(title)
	for name, syns := range synonyms {
		name = strings.TrimSpace(name)
		if name == "" || current[strings.ToLower(name)] {
			continue
		}
		for _, w := range syns {
			if words[strings.ToLower(strings.TrimSpace(w))] {
				queue[name] = true
				break
			}
		}
	}
}

// transformPass applies each "regex:replacement[/r]" rule against the first
// space-bounded match in the title. A /r rule rewrites the matched text with
// the computed tags; otherwise the computed tags are queued for appending
// and the title is left alone. Rules that do not parse or compile are
// skipped.
func transformPass(title string, transform []string, current, queue map[string]bool, res *Result) string {
	for _, rule := range transform {
		src, repl, replace, ok := splitTransform(rule)
		if !ok {
			continue
		}
		rx, err := regexp.Compile(src)
		if err != nil {
			continue
		}
		loc, subs := boundedMatch(rx, title)
		if loc == nil {
			continue
		}
		computed := expand(repl, subs)
		specs := strings.Fields(computed)
		if len(specs) == 0 {
			continue
		}
		if replace {
			rendered := make([]string, 0, len(specs))
			for _, s := range specs {
				rendered = append(rendered, "@"+strings.TrimPrefix(s, "@"))
				if name, _ := splitSpec(s); name != "" {
					current[strings.ToLower(name)] = true
				}
			}
			title = title[:loc[0]] + strings.Join(rendered, " ") + title[loc[1]:]
			res.Replaced = append(res.Replaced, specs...)
			continue
		}
		for _, s := range specs {
			queue[s] = true
		}
	}
	return title
}

// splitTransform splits a rule at its first unescaped colon and strips the
// trailing /r flag from the replacement.
func splitTransform(rule string) (src, repl string, replace, ok bool) {
	idx := -1
	for i := 0; i < len(rule); i++ {
		if rule[i] == ':' && (i == 0 || rule[i-1] != '\\') {
			idx = i
			break
		}
	}
	if idx <= 0 || idx == len(rule)-1 {
		return "", "", false, false
	}
	src = strings.ReplaceAll(rule[:idx], `\:`, ":")
	repl = rule[idx+1:]
	if strings.HasSuffix(repl, "/r") {
		replace = true
		repl = strings.TrimSuffix(repl, "/r")
	}
	return src, repl, replace, true
}

// boundedMatch finds the first match that starts and ends on a space
// boundary of s, returning the match span and its submatch texts.
func boundedMatch(rx *regexp.Regexp, s string) ([]int, []string) {
	for _, m := range rx.FindAllStringSubmatchIndex(s, -1) {
		start, end := m[0], m[1]
		if start > 0 && s[start-1] != ' ' {
			continue
		}
		if end < len(s) && s[end] != ' ' {
			continue
		}
		subs := make([]string, 0, len(m)/2)
		for i := 0; i < len(m); i += 2 {
			if m[i] < 0 {
				subs = append(subs, "")
			} else {
				subs = append(subs, s[m[i]:m[i+1]])
			}
		}
		return []int{start, end}, subs
	}
	return nil, nil
}

var backref = regexp.MustCompile(`\\(\d+)`)

// expand substitutes \1, \2, ... in the replacement with submatch texts.
func expand(repl string, subs []string) string {
	return backref.ReplaceAllStringFunc(repl, func(m string) string {
		n, err := strconv.Atoi(m[1:])
		if err != nil || n >= len(subs) {
			return ""
		}
		return subs[n]
	})
}

// splitSpec breaks a queued "name(value)" spec into its parts.
func splitSpec(spec string) (name, value string) {
	spec = strings.TrimPrefix(strings.TrimSpace(spec), "@")
	open := strings.IndexByte(spec, '(')
	if open < 0 {
		return spec, ""
	}
	end := strings.LastIndexByte(spec, ')')
	if end < open {
		return spec, ""
	}
	return spec[:open], spec[open+1 : end]
}

func plainWords(title string) map[string]bool {
	words := make(map[string]bool)
	for _, tok := range tag.Tokenize(title) {
		if tok.Tag == nil {
			words[strings.ToLower(tok.Text)] = true
		}
	}
	return words
}
