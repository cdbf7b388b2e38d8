// Package textwrap provides visual-width-aware line wrapping for terminal
// output. Characters above the Latin-1 range are counted as double width,
// which approximates East-Asian wide glyphs well enough for review text.
// It is not a full Unicode East-Asian-width implementation.
package textwrap

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const fallbackColumns = 80

// RuneWidth returns the visual width of a single rune: 2 for anything
// above the Latin-1 range, 1 otherwise.
func RuneWidth(r rune) int {
	if r > 0xFF {
		return 2
	}
	return 1
}

// StringWidth returns the total visual width of s.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

// DefaultLimit returns the wrap limit derived from the terminal size:
// min(80, columns-12), or 80 when the terminal size is unknown.
func DefaultLimit() int {
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 {
		return fallbackColumns
	}
	if cols-12 < fallbackColumns {
		return cols - 12
	}
	return fallbackColumns
}

// Wrap wraps text at the given visual-width limit. Paragraph breaks are
// preserved: each newline-separated segment is wrapped independently and the
// segments are rejoined with newlines. The wrap is greedy and has no
// word-boundary awareness, so long words may be split mid-word.
func Wrap(text string, limit int) string {
	if limit <= 0 {
		limit = DefaultLimit()
	}

	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		out = append(out, wrapParagraph(p, limit))
	}
	return strings.Join(out, "\n")
}

func wrapParagraph(p string, limit int) string {
	var lines []string
	var line strings.Builder
	width := 0

	for _, r := range p {
		rw := RuneWidth(r)
		if width+rw > limit && width > 0 {
			lines = append(lines, line.String())
			line.Reset()
			width = 0
		}
		line.WriteRune(r)
		width += rw
	}
	lines = append(lines, line.String())

	return strings.Join(lines, "\n")
}
