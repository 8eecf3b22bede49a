package txtshot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewLogicalLines(t *testing.T) {
	raw := []string{"ls -la", "cd /tmp", "whoami", "root", ""}
	got := NewLogicalLines(raw, DefaultPrompt, 0)
	want := []LogicalLine{
		{Index: 0, Text: "ls -la", Prompt: true, Display: "$ ls -la"},
		{Index: 1, Text: "cd /tmp", Prompt: true, Display: "$ cd /tmp"},
		{Index: 2, Text: "whoami", Prompt: true, Display: "$ whoami"},
		{Index: 3, Text: "root", Prompt: false, Display: "root"},
		{Index: 4, Text: "", Prompt: false, Display: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewLogicalLines() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewLogicalLinesEmpty(t *testing.T) {
	if got := NewLogicalLines(nil, DefaultPrompt, 0); len(got) != 0 {
		t.Errorf("got %d lines, want 0", len(got))
	}
}

func TestRemainder(t *testing.T) {
	tests := []struct {
		name string
		line LogicalLine
		want string
	}{
		{"prompt line", LogicalLine{Prompt: true, Display: "$ ls"}, "ls"},
		{"prompt line with empty command", LogicalLine{Prompt: true, Display: "$ "}, ""},
		{"output line starting like a prompt", LogicalLine{Prompt: false, Display: "$ not a command"}, "$ not a command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.Remainder(DefaultPrompt); got != tt.want {
				t.Errorf("Remainder() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		in       string
		tabWidth int
		want     string
	}{
		{"no tabs", 8, "no tabs"},
		{"\tx", 8, "        x"},
		{"ab\tc", 4, "ab  c"},
		{"abcd\te", 4, "abcd    e"},
		{"日本\tx", 8, "日本    x"},
		{"a\tb\tc", 2, "a b c"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := expandTabs(tt.in, tt.tabWidth); got != tt.want {
				t.Errorf("expandTabs(%q, %d) = %q, want %q", tt.in, tt.tabWidth, got, tt.want)
			}
		})
	}
}

func TestNewLogicalLinesExpandsTabsBeforePrompt(t *testing.T) {
	got := NewLogicalLines([]string{"\tls", "a\tb", "x", "\ty"}, DefaultPrompt, 4)
	want := []string{"$     ls", "$ a   b", "$ x", "    y"}
	for i, l := range got {
		if l.Display != want[i] {
			t.Errorf("line %d: got %q, want %q", i, l.Display, want[i])
		}
	}
}
