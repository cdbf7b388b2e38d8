// Package renders turns review output into terminal-friendly text.
package renders

import (
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"

	"github.com/revu-cli/revu/internal/textwrap"
)

// RenderMarkdown renders markdown source for the current terminal width.
func RenderMarkdown(source string) string {
	return renderMarkdownBlock(source, textwrap.DefaultLimit(), 0)
}

// renderMarkdownBlock renders markdown source at the given width and left
// padding, ensuring a single trailing newline so callers can stack blocks.
func renderMarkdownBlock(source string, width, leftPad int) string {
	if source == "" {
		return ""
	}
	out := strings.TrimRight(string(markdown.Render(source, width, leftPad)), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}
