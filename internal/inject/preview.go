package inject

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Preview renders a compact +/- view of what an annotation changed in a
// file, for debug output. Unchanged regions are elided.
func Preview(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var changes []string
	for _, d := range diffs {
		text := strings.TrimRight(d.Text, "\n")
		if text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			for _, l := range strings.Split(text, "\n") {
				changes = append(changes, "+ "+l)
			}
		case diffmatchpatch.DiffDelete:
			for _, l := range strings.Split(text, "\n") {
				changes = append(changes, "- "+l)
			}
		}
	}
	return strings.Join(changes, "\n")
}
