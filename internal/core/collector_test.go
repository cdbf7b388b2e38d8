package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGit serves canned diffs keyed by path.
type fakeGit struct {
	diffs     map[string]string
	failPaths map[string]bool
	staged    []string
	commits   []string
	stageAll  int
}

func (f *fakeGit) StagedFiles() ([]string, error) { return f.staged, nil }

func (f *fakeGit) StagedDiff(path string) (string, error) {
	if f.failPaths[path] {
		return "", errors.New("bad diff")
	}
	return f.diffs[path], nil
}

func (f *fakeGit) StageAll() error { f.stageAll++; return nil }

func (f *fakeGit) Commit(message string) error {
	f.commits = append(f.commits, message)
	return nil
}

func testConfig() CollectorConfig {
	return CollectorConfig{
		IgnorePatterns:   []string{"node_modules", ".lock"},
		BinaryExtensions: []string{".png", ".zip"},
		MaxFileBytes:     100,
		MaxTotalBytes:    250,
	}
}

func TestCollect_FilterOrder(t *testing.T) {
	git := &fakeGit{diffs: map[string]string{
		"main.go": "diff for main",
	}}
	c := NewCollector(git, testConfig())

	cs, err := c.Collect([]string{
		"node_modules/x.js",
		"logo.png",
		"main.go",
	})
	require.NoError(t, err)
	require.Len(t, cs.Files, 3)

	assert.Equal(t, SkipIgnored, cs.Files[0].SkipReason)
	assert.Equal(t, SkipBinary, cs.Files[1].SkipReason)
	assert.True(t, cs.Files[2].Included())
	assert.Equal(t, "diff for main", cs.Files[2].Diff)
}

func TestCollect_DiffTooLarge(t *testing.T) {
	git := &fakeGit{diffs: map[string]string{
		"big.go":   strings.Repeat("x", 150),
		"small.go": "ok",
	}}
	c := NewCollector(git, testConfig())

	cs, err := c.Collect([]string{"big.go", "small.go"})
	require.NoError(t, err)

	assert.Equal(t, SkipDiffTooLarge, cs.Files[0].SkipReason)
	assert.True(t, cs.Files[1].Included())
}

func TestCollect_TotalLimitNeverExceeded(t *testing.T) {
	// Three 90-byte diffs against a 250-byte budget: the third file tips the
	// total over, and everything after it is skipped too, even a tiny file.
	git := &fakeGit{diffs: map[string]string{
		"a.go":    strings.Repeat("a", 90),
		"b.go":    strings.Repeat("b", 90),
		"c.go":    strings.Repeat("c", 90),
		"tiny.go": "t",
	}}
	c := NewCollector(git, testConfig())

	cs, err := c.Collect([]string{"a.go", "b.go", "c.go", "tiny.go"})
	require.NoError(t, err)

	assert.True(t, cs.Files[0].Included())
	assert.True(t, cs.Files[1].Included())
	assert.Equal(t, SkipTotalLimit, cs.Files[2].SkipReason)
	assert.Equal(t, SkipTotalLimit, cs.Files[3].SkipReason)
	assert.LessOrEqual(t, cs.TotalSize, 250)
	assert.Equal(t, 180, cs.TotalSize)
}

func TestCollect_ReadErrorSkipsFileOnly(t *testing.T) {
	git := &fakeGit{
		diffs:     map[string]string{"good.go": "fine"},
		failPaths: map[string]bool{"gone.go": true},
	}
	c := NewCollector(git, testConfig())

	cs, err := c.Collect([]string{"gone.go", "good.go"})
	require.NoError(t, err)

	assert.Equal(t, SkipReadError, cs.Files[0].SkipReason)
	assert.True(t, cs.Files[1].Included())
}

func TestCollect_NothingToReview(t *testing.T) {
	git := &fakeGit{diffs: map[string]string{}}
	c := NewCollector(git, testConfig())

	cs, err := c.Collect([]string{"assets.zip", "deps.lock"})
	assert.ErrorIs(t, err, ErrNothingToReview)
	assert.Equal(t, 0, cs.TotalSize)
}

func TestCollect_Deterministic(t *testing.T) {
	git := &fakeGit{diffs: map[string]string{
		"a.go": "alpha",
		"b.go": "beta",
	}}
	c := NewCollector(git, testConfig())
	files := []string{"a.go", "b.go"}

	first, err := c.Collect(files)
	require.NoError(t, err)
	second, err := c.Collect(files)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "alpha\nbeta", first.Payload())
}

func TestChangeSet_Skipped(t *testing.T) {
	cs := &ChangeSet{Files: []FileChange{
		{Path: "a.go", Diff: "x", Size: 1},
		{Path: "b.png", SkipReason: SkipBinary},
	}}
	skipped := cs.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, "b.png", skipped[0].Path)
}

func TestCollect_PreservesListingOrder(t *testing.T) {
	git := &fakeGit{diffs: map[string]string{}}
	var files []string
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("f%d.go", i)
		files = append(files, name)
		git.diffs[name] = fmt.Sprintf("diff %d", i)
	}
	c := NewCollector(git, testConfig())

	cs, err := c.Collect(files)
	require.NoError(t, err)
	for i, fc := range cs.Files {
		assert.Equal(t, files[i], fc.Path)
	}
}
