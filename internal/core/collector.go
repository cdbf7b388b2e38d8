package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Skip reasons recorded on a FileChange that contributed nothing to the
// payload.
const (
	SkipIgnored      = "ignored"
	SkipBinary       = "binary"
	SkipTooLarge     = "too large"
	SkipDiffTooLarge = "diff too large"
	SkipTotalLimit   = "total limit"
	SkipReadError    = "error reading"
)

// ErrNothingToReview is returned when every staged file was filtered out.
// It is distinct from "no staged files at all", which is a session-level
// precondition.
var ErrNothingToReview = errors.New("no reviewable content in staged changes")

// FileChange is one staged file's contribution to the review payload.
// SkipReason is empty for files whose diff was included.
type FileChange struct {
	Path       string
	Diff       string
	Size       int
	SkipReason string
}

// Included reports whether this file's diff made it into the payload.
func (f FileChange) Included() bool {
	return f.SkipReason == ""
}

// ChangeSet is the filtered, size-bounded collection of per-file diffs.
// It is built once per run and not mutated afterwards.
type ChangeSet struct {
	Files     []FileChange
	TotalSize int
}

// Payload concatenates the included diffs in staged-file order.
func (c *ChangeSet) Payload() string {
	var parts []string
	for _, f := range c.Files {
		if f.Included() {
			parts = append(parts, f.Diff)
		}
	}
	return strings.Join(parts, "\n")
}

// Skipped returns the files that were filtered out, with their reasons.
func (c *ChangeSet) Skipped() []FileChange {
	var out []FileChange
	for _, f := range c.Files {
		if !f.Included() {
			out = append(out, f)
		}
	}
	return out
}

// CollectorConfig bounds what the collector will include.
type CollectorConfig struct {
	// RepoPath is the repository root; staged paths are resolved against it.
	RepoPath string

	// IgnorePatterns are path substrings that exclude a file outright.
	IgnorePatterns []string

	// BinaryExtensions are file extensions (with dot) excluded as binary.
	BinaryExtensions []string

	// MaxFileBytes caps a single file's on-disk size and its diff text.
	MaxFileBytes int

	// MaxTotalBytes caps the sum of all included diff lengths.
	MaxTotalBytes int
}

// DefaultCollectorConfig mirrors the caps the prompt ceiling was tuned for.
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		IgnorePatterns: []string{
			"node_modules", "package-lock.json", "yarn.lock", "pnpm-lock.yaml",
			"go.sum", "vendor/", "dist/", "build/", ".min.",
		},
		BinaryExtensions: []string{
			".png", ".jpg", ".jpeg", ".gif", ".webp", ".ico", ".pdf",
			".zip", ".gz", ".tar", ".jar", ".exe", ".so", ".dylib",
			".woff", ".woff2", ".ttf", ".eot", ".mp3", ".mp4",
		},
		MaxFileBytes:  30_000,
		MaxTotalBytes: 100_000,
	}
}

// Collector builds a ChangeSet from the staged file listing. It never writes
// anything; a per-file failure degrades to a skip, never an abort.
type Collector struct {
	git  Git
	conf CollectorConfig
}

// NewCollector returns a Collector reading diffs through git.
func NewCollector(git Git, conf CollectorConfig) *Collector {
	return &Collector{git: git, conf: conf}
}

// Collect filters and accumulates the staged diffs for files, preserving the
// listing order. Once the running total would exceed MaxTotalBytes every
// remaining file is skipped with SkipTotalLimit regardless of its own size,
// so listing order decides which files win the budget. Returns
// ErrNothingToReview when nothing survived the filters.
func (c *Collector) Collect(files []string) (*ChangeSet, error) {
	cs := &ChangeSet{}
	budgetExhausted := false

	for _, path := range files {
		fc := FileChange{Path: path}

		switch {
		case budgetExhausted:
			fc.SkipReason = SkipTotalLimit
		case c.ignored(path):
			fc.SkipReason = SkipIgnored
		case c.binary(path):
			fc.SkipReason = SkipBinary
		case c.oversized(path):
			fc.SkipReason = SkipTooLarge
		default:
			diff, err := c.git.StagedDiff(path)
			if err != nil {
				fc.SkipReason = SkipReadError
			} else if len(diff) > c.conf.MaxFileBytes {
				fc.SkipReason = SkipDiffTooLarge
			} else if cs.TotalSize+len(diff) > c.conf.MaxTotalBytes {
				fc.SkipReason = SkipTotalLimit
				budgetExhausted = true
			} else {
				fc.Diff = diff
				fc.Size = len(diff)
				cs.TotalSize += len(diff)
			}
		}

		cs.Files = append(cs.Files, fc)
	}

	if cs.TotalSize == 0 {
		return cs, ErrNothingToReview
	}
	return cs, nil
}

func (c *Collector) ignored(path string) bool {
	for _, pat := range c.conf.IgnorePatterns {
		if pat != "" && strings.Contains(path, pat) {
			return true
		}
	}
	return false
}

func (c *Collector) binary(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, b := range c.conf.BinaryExtensions {
		if ext == b {
			return true
		}
	}
	return false
}

// oversized checks the on-disk size. A stat failure is not a skip by itself:
// the file may be staged as deleted, in which case the diff fetch still works.
func (c *Collector) oversized(path string) bool {
	if c.conf.RepoPath != "" {
		path = filepath.Join(c.conf.RepoPath, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Size() > int64(c.conf.MaxFileBytes)
}
