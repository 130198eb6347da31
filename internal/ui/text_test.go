package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello w…"},
		{"日本語テキスト", 6, "日本…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestWrapLines(t *testing.T) {
	got := WrapLines("Milk, eggs and bread\nbutter", 10, 0)
	want := []string{"Milk, eggs", "and bread", "butter"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("WrapLines() = %q, want %q", got, want)
	}

	limited := WrapLines("one two three four five six", 9, 2)
	if len(limited) != 2 || !strings.HasSuffix(limited[1], "…") {
		t.Errorf("limited = %q", limited)
	}
	for _, line := range limited {
		if runewidth.StringWidth(line) > 9 {
			t.Errorf("line %q exceeds width", line)
		}
	}

	long := WrapLines("abcdefghijkl", 5, 0)
	if strings.Join(long, "|") != "abcde|fghij|kl" {
		t.Errorf("hard break = %q", long)
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight() = %q", got)
	}
	if got := runewidth.StringWidth(PadRight("日本語", 5)); got != 5 {
		t.Errorf("PadRight wide width = %d", got)
	}
}
