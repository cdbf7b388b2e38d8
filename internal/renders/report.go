package renders

import (
	"fmt"
	"strings"

	"github.com/revu-cli/revu/internal/core"
	"github.com/revu-cli/revu/internal/locale"
	"github.com/revu-cli/revu/internal/textwrap"
)

// RenderReport formats the full review for the terminal: the proposed commit
// message in a box, then the two finding lists. Read-only; acting on the
// findings is the session loop's job.
func RenderReport(result *core.ReviewResult, lang locale.Lang) string {
	limit := textwrap.DefaultLimit()

	var b strings.Builder
	b.WriteString(textwrap.Box(locale.T(lang, "commit_message"), result.CommitMessage, limit))
	b.WriteString("\n")

	if len(result.Critical) == 0 && len(result.Suggestions) == 0 {
		b.WriteString("\n" + locale.T(lang, "no_findings") + "\n")
		return b.String()
	}

	if len(result.Critical) > 0 {
		b.WriteString("\n" + locale.T(lang, "critical_title") + "\n")
		b.WriteString(renderFindings(result.Critical, limit))
	}
	if len(result.Suggestions) > 0 {
		b.WriteString("\n" + locale.T(lang, "suggestions_title") + "\n")
		b.WriteString(renderFindings(result.Suggestions, limit))
	}
	return b.String()
}

// renderFindings lists each finding under its location label. Messages come
// from the model and often carry inline markdown (backticked identifiers,
// emphasis), so the body goes through the markdown renderer.
func renderFindings(findings []core.Finding, limit int) string {
	var b strings.Builder
	for _, f := range findings {
		b.WriteString(fmt.Sprintf("  - %s\n", FindingLabel(f)))
		b.WriteString(renderMarkdownBlock(f.Message, limit-4, 4))
	}
	return b.String()
}

// FindingLabel is the one-line location label used in lists and menus.
func FindingLabel(f core.Finding) string {
	if f.LineNumber != "" {
		return fmt.Sprintf("%s:%s", f.FilePath, f.LineNumber)
	}
	return f.FilePath
}
