package textwrap

import "strings"

// Box renders body inside a titled rectangular frame. The frame is sized to
// the widest wrapped line or the title, whichever is larger. Output is purely
// decorative; nothing parses it back.
func Box(title, body string, limit int) string {
	wrapped := Wrap(body, limit)
	lines := strings.Split(wrapped, "\n")

	inner := StringWidth(title) + 2
	for _, l := range lines {
		if w := StringWidth(l); w > inner {
			inner = w
		}
	}

	var b strings.Builder
	b.WriteString("┌─ " + title + " " + strings.Repeat("─", inner-StringWidth(title)-1) + "┐\n")
	for _, l := range lines {
		pad := inner - StringWidth(l)
		b.WriteString("│ " + l + strings.Repeat(" ", pad) + " │\n")
	}
	b.WriteString("└" + strings.Repeat("─", inner+2) + "┘")
	return b.String()
}
