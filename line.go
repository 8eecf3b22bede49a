package txtshot

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// CommandLines is the number of leading transcript lines treated as shell commands.
const CommandLines = 3

// DefaultPrompt is prepended to command lines.
const DefaultPrompt = "$ "

// LogicalLine is a single input line and the text that is actually drawn for it.
type LogicalLine struct {
	Index   int    `json:"index"`
	Text    string `json:"text"`
	Prompt  bool   `json:"prompt"`
	Display string `json:"display"`
}

// MeasuredLine is a LogicalLine with the pixel box of its displayed text.
type MeasuredLine struct {
	LogicalLine
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Remainder returns the displayed text that follows the prompt.
// For non-prompt lines it is the whole displayed text.
func (l LogicalLine) Remainder(prompt string) string {
	if !l.Prompt {
		return l.Display
	}
	return strings.TrimPrefix(l.Display, prompt)
}

// NewLogicalLines builds the logical lines for raw, prefixing the first CommandLines with prompt.
// When tabWidth is positive, tabs are expanded to spaces first.
func NewLogicalLines(raw []string, prompt string, tabWidth int) []LogicalLine {
	lines := make([]LogicalLine, 0, len(raw))
	for i, text := range raw {
		if tabWidth > 0 {
			text = expandTabs(text, tabWidth)
		}
		l := LogicalLine{
			Index:   i,
			Text:    text,
			Prompt:  i < CommandLines,
			Display: text,
		}
		if l.Prompt {
			l.Display = prompt + text
		}
		lines = append(lines, l)
	}
	return lines
}

// expandTabs replaces tabs with spaces up to the next tab stop.
// Wide characters occupy two columns.
func expandTabs(s string, tabWidth int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}
