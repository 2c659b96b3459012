package filter

import "testing"

func TestSearchMatchPlain(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		c     Case
		want  bool
	}{
		{"substring hit", "Fix the login flow", "login", CaseSmart, true},
		{"substring miss", "Fix the login flow", "logout", CaseSmart, false},
		{"smart lowercase folds", "Fix the Login flow", "login", CaseSmart, true},
		{"smart uppercase is sensitive", "fix the login flow", "Login", CaseSmart, false},
		{"sensitive miss", "Fix the Login flow", "login", CaseSensitive, false},
		{"ignore folds", "Fix the LOGIN flow", "login", CaseIgnore, true},
		{"phrase is one substring", "alpha beta gamma", "beta gamma", CaseSmart, true},
		{"phrase out of order misses", "alpha beta gamma", "gamma beta", CaseSmart, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := searchMatch(tc.text, tc.query, tc.c); got != tc.want {
				t.Fatalf("searchMatch(%q, %q, %q) = %v, want %v", tc.text, tc.query, tc.c, got, tc.want)
			}
		})
	}
}

func TestSearchMatchRegex(t *testing.T) {
	if !searchMatch("fix bug 42 now", `/bug \d+/`, CaseSmart) {
		t.Fatalf("regex should match")
	}
	if searchMatch("fix bug now", `/bug \d+/`, CaseSmart) {
		t.Fatalf("regex should not match")
	}
	if !searchMatch("Fix BUG 42", `/bug \d+/`, CaseSmart) {
		t.Fatalf("lowercase pattern should fold case under smart rule")
	}
	if searchMatch("Fix BUG 42", `/BUG \d+/`, CaseIgnore) != true {
		t.Fatalf("ignore rule should fold regex case")
	}
}

func TestSearchMatchExact(t *testing.T) {
	if !searchMatch("Ship the Thing", "'Ship the", CaseIgnore) {
		t.Fatalf("exact prefix quote should match literally")
	}
	if searchMatch("ship the thing", "'Ship", CaseIgnore) {
		t.Fatalf("exact mode is always case-sensitive")
	}
}

func TestSearchMatchBadRegexFallsBack(t *testing.T) {
	// The unbalanced pattern cannot compile, so the query matches only as
	// a literal substring.
	if searchMatch("plain text", `/([/`, CaseSmart) {
		t.Fatalf("bad regex should not match unrelated text")
	}
	if !searchMatch("see /([/ marker", `/([/`, CaseSmart) {
		t.Fatalf("bad regex should fall back to literal matching")
	}
}

func TestParseCase(t *testing.T) {
	tests := []struct {
		in   string
		want Case
		ok   bool
	}{
		{"", CaseSmart, true},
		{"smart", CaseSmart, true},
		{"SENSITIVE", CaseSensitive, true},
		{"c", CaseSensitive, true},
		{"ignore", CaseIgnore, true},
		{"i", CaseIgnore, true},
		{"loud", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseCase(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseCase(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
