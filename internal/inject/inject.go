// Package inject inserts review suggestions into source files as inline
// TODO comments. Placement is a heuristic: an exact context-line match wins,
// a 1-based line number is the fallback, and anything else is a skip. Files
// are only rewritten when a placement succeeded.
package inject

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/revu-cli/revu/internal/core"
)

type commentStyle int

const (
	styleLine commentStyle = iota // //
	styleHash                     // #
	styleBlock                    // /* */
	styleMarkup                   // <!-- -->
)

// Extension lookup, not language detection. Extensions absent from the table
// fall through to line style.
var hashExts = map[string]bool{
	".py": true, ".sh": true, ".bash": true, ".zsh": true,
	".rb": true, ".pl": true, ".yml": true, ".yaml": true,
	".toml": true, ".ini": true, ".conf": true, ".env": true,
	".dockerfile": true, ".makefile": true, ".mk": true, ".cmake": true,
	".r": true, ".jl": true, ".ex": true, ".exs": true,
}

var blockExts = map[string]bool{
	".css": true, ".scss": true, ".sass": true, ".less": true,
}

var markupExts = map[string]bool{
	".md": true, ".markdown": true, ".html": true, ".htm": true,
	".xml": true, ".svg": true, ".vue": true,
}

func styleFor(path string) commentStyle {
	base := strings.ToLower(filepath.Base(path))
	if base == "dockerfile" || base == "makefile" {
		return styleHash
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case hashExts[ext]:
		return styleHash
	case blockExts[ext]:
		return styleBlock
	case markupExts[ext]:
		return styleMarkup
	default:
		return styleLine
	}
}

// CommentLine renders message as a TODO comment appropriate for path.
func CommentLine(path, message string) string {
	msg := "TODO: " + strings.TrimSpace(message)
	switch styleFor(path) {
	case styleHash:
		return "# " + msg
	case styleBlock:
		return "/* " + msg + " */"
	case styleMarkup:
		return "<!-- " + msg + " -->"
	default:
		return "// " + msg
	}
}

// Apply inserts the finding's message as a comment into contents and returns
// the new contents plus whether a placement was found.
//
// Placement order:
//  1. ContextLine: first line whose text contains the trimmed context string.
//     The comment goes immediately before it, copying its leading whitespace.
//  2. LineNumber: parsed as a positive 1-based integer within the file. The
//     comment goes immediately before that line, with no indentation.
//  3. Neither matches: applied is false and contents come back unchanged.
func Apply(finding core.Finding, contents string) (string, bool) {
	lines := strings.Split(contents, "\n")

	if ctx := strings.TrimSpace(finding.ContextLine); ctx != "" {
		for i, line := range lines {
			if strings.Contains(line, ctx) {
				indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
				comment := indent + CommentLine(finding.FilePath, finding.Message)
				return insertBefore(lines, i, comment), true
			}
		}
	}

	if n, ok := parseLineNumber(finding.LineNumber); ok && n <= len(lines) {
		comment := CommentLine(finding.FilePath, finding.Message)
		return insertBefore(lines, n-1, comment), true
	}

	return contents, false
}

// ApplyToFile reads path, applies the finding, and rewrites the file in
// place only when a placement succeeded.
func ApplyToFile(finding core.Finding, root string) (bool, error) {
	path := finding.FilePath
	if root != "" {
		path = filepath.Join(root, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("could not read %s: %w", finding.FilePath, err)
	}

	updated, applied := Apply(finding, string(raw))
	if !applied {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("could not write %s: %w", finding.FilePath, err)
	}
	return true, nil
}

func insertBefore(lines []string, idx int, comment string) string {
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:idx]...)
	out = append(out, comment)
	out = append(out, lines[idx:]...)
	return strings.Join(out, "\n")
}

func parseLineNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if n <= 0 {
		return 0, false
	}
	return n, true
}
