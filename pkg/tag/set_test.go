package tag

import "testing"

func TestSetAdd(t *testing.T) {
	tests := []struct {
		name  string
		title string
		tag   string
		opts  SetOptions
		want  string
	}{
		{
			name:  "append bare tag",
			title: "write report",
			tag:   "work",
			want:  "write report @work",
		},
		{
			name:  "append with value",
			title: "write report",
			tag:   "due",
			opts:  SetOptions{Value: "2024-02-01"},
			want:  "write report @due(2024-02-01)",
		},
		{
			name:  "already present is untouched",
			title: "write  report @work",
			tag:   "work",
			want:  "write  report @work",
		},
		{
			name:  "case-insensitive presence check",
			title: "write report @Work",
			tag:   "work",
			want:  "write report @Work",
		},
		{
			name:  "force refreshes value and moves to end",
			title: "standup @from(Inbox) notes",
			tag:   "from",
			opts:  SetOptions{Value: "Work", Force: true},
			want:  "standup notes @from(Work)",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Set(tc.title, tc.tag, tc.opts); got != tc.want {
				t.Fatalf("Set(%q, %q) = %q, want %q", tc.title, tc.tag, got, tc.want)
			}
		})
	}
}

func TestSetRemove(t *testing.T) {
	tests := []struct {
		name  string
		title string
		tag   string
		opts  SetOptions
		want  string
	}{
		{
			name:  "remove bare tag",
			title: "write report @work @home",
			tag:   "work",
			opts:  SetOptions{Remove: true},
			want:  "write report @home",
		},
		{
			name:  "remove tag with value",
			title: "ship it @done(2024-01-10 12:00)",
			tag:   "done",
			opts:  SetOptions{Remove: true},
			want:  "ship it",
		},
		{
			name:  "absent tag is a no-op",
			title: "write  report",
			tag:   "work",
			opts:  SetOptions{Remove: true},
			want:  "write  report",
		},
		{
			name:  "regex removes matching names",
			title: "triage @bug1 @bug2 @urgent",
			tag:   `bug\d`,
			opts:  SetOptions{Remove: true, Regex: true},
			want:  "triage @urgent",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Set(tc.title, tc.tag, tc.opts); got != tc.want {
				t.Fatalf("Set(%q, %q) = %q, want %q", tc.title, tc.tag, got, tc.want)
			}
		})
	}
}

func TestSetRemoveIdempotent(t *testing.T) {
	title := "ship it @done(2024-01-10 12:00)"
	once := Set(title, "done", SetOptions{Remove: true})
	twice := Set(once, "done", SetOptions{Remove: true})
	if once != twice {
		t.Fatalf("second remove changed the title: %q vs %q", once, twice)
	}
}

func TestSetAddIdempotent(t *testing.T) {
	title := "write report"
	once := Set(title, "work", SetOptions{})
	twice := Set(once, "work", SetOptions{})
	if twice != once {
		t.Fatalf("second add changed the title: %q vs %q", once, twice)
	}
	if n := len(Parse(twice)); n != 1 {
		t.Fatalf("expected exactly one tag, got %d in %q", n, twice)
	}
}

func TestSetRename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		tag   string
		opts  SetOptions
		want  string
	}{
		{
			name:  "rename keeps position and value",
			title: "ship it @finished(2024-01-10 12:00) later",
			tag:   "finished",
			opts:  SetOptions{Rename: "done"},
			want:  "ship it @done(2024-01-10 12:00) later",
		},
		{
			name:  "rename with replacement value",
			title: "ship it @due(2024-02-01)",
			tag:   "due",
			opts:  SetOptions{Rename: "deadline", Value: "2024-03-01"},
			want:  "ship it @deadline(2024-03-01)",
		},
		{
			name:  "rename collision dedups to first",
			title: "ship it @old @done",
			tag:   "old",
			opts:  SetOptions{Rename: "done"},
			want:  "ship it @done",
		},
		{
			name:  "rename of absent tag is a no-op",
			title: "ship it",
			tag:   "old",
			opts:  SetOptions{Rename: "done"},
			want:  "ship it",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Set(tc.title, tc.tag, tc.opts); got != tc.want {
				t.Fatalf("Set(%q, %q) = %q, want %q", tc.title, tc.tag, got, tc.want)
			}
		})
	}
}

func TestSetDedup(t *testing.T) {
	title := "double @work trouble @work(late)"
	got := Set(title, "home", SetOptions{})
	want := "double @work trouble @home"
	if got != want {
		t.Fatalf("Set = %q, want %q", got, want)
	}
}
