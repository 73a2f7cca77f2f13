package render

import (
	"strings"
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{
			name:     "no truncation needed",
			input:    "hello",
			maxWidth: 10,
			want:     "hello",
		},
		{
			name:     "exact fit",
			input:    "hello",
			maxWidth: 5,
			want:     "hello",
		},
		{
			name:     "truncated with ellipsis",
			input:    "hello world",
			maxWidth: 8,
			want:     "hello w…",
		},
		{
			name:     "empty string",
			input:    "",
			maxWidth: 10,
			want:     "",
		},
		{
			name:     "wide characters",
			input:    "日本語のタイトル",
			maxWidth: 7,
			want:     "日本語…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "clean ascii passes through",
			input: "Plain Title",
			want:  "Plain Title",
		},
		{
			name:  "control characters removed",
			input: "bad\x00title\x1b[31m",
			want:  "badtitle[31m",
		},
		{
			name:  "tab preserved",
			input: "a\tb",
			want:  "a\tb",
		},
		{
			name:  "invalid utf8 dropped",
			input: "tr\xffack",
			want:  "track",
		},
		{
			name:  "nbsp becomes space",
			input: "a b",
			want:  "a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFit(t *testing.T) {
	got := Fit("hi", 5)
	if got != "hi   " {
		t.Errorf("Fit(%q, 5) = %q, want %q", "hi", got, "hi   ")
	}
	if got := Fit("hello world", 5); len(got) == 0 || !strings.HasSuffix(got, "…") {
		t.Errorf("Fit long string = %q, want ellipsis suffix", got)
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 20)
	if len(got) != 20 {
		t.Errorf("Row width = %d, want 20", len(got))
	}
	if !strings.HasPrefix(got, "left") || !strings.HasSuffix(got, "right") {
		t.Errorf("Row = %q, want left/right aligned content", got)
	}

	// Overflowing content still gets a single space gap.
	got = Row("aaaaaaaaaa", "bbbbbbbbbb", 5)
	if got != "aaaaaaaaaa bbbbbbbbbb" {
		t.Errorf("Row overflow = %q", got)
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{3*time.Minute + 7*time.Second, "3:07"},
		{61 * time.Minute, "1:01:00"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "2:03:04"},
	}
	for _, tt := range tests {
		if got := Clock(tt.d); got != tt.want {
			t.Errorf("Clock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
