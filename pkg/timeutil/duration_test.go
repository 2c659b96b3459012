package timeutil

import (
	"testing"
	"time"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"45m", 45 * time.Minute},
		{"3d", 3 * 24 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
		{"90s", 90 * time.Second},
		{"2 hours", 2 * time.Hour},
		{"1w2d6h30m", (7*24+2*24+6)*time.Hour + 30*time.Minute},
		{" 1 Day 2H ", 26 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWindow(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, input := range []string{"", "noop", "3x", "h", "-1h", "0m"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseWindow(input); err == nil {
				t.Fatalf("expected error for %q", input)
			}
		})
	}
}

func TestFormatWindow(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Minute, "45m"},
		{26 * time.Hour, "1d2h"},
		{(7*24+2*24+6)*time.Hour + 30*time.Minute, "1w2d6h30m"},
		{0, "0s"},
		{500 * time.Millisecond, "0s"},
	}
	for _, tt := range tests {
		if got := FormatWindow(tt.d); got != tt.want {
			t.Fatalf("FormatWindow(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
