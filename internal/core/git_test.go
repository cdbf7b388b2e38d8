package core

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupGitRepo creates a temporary git repo with one committed file and one
// staged modification.
func setupGitRepo(t *testing.T) (repoPath string) {
	t.Helper()

	dir, err := os.MkdirTemp("", "revu-git-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=Test",
			"GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=Test",
			"GIT_COMMITTER_EMAIL=test@test.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v failed: %s", args, string(out))
	}

	run("init", "-b", "main")
	run("config", "user.name", "Test")
	run("config", "user.email", "test@test.com")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.go"), []byte("package main\n\nfunc hello() {}\n"), 0644))
	run("add", "hello.go")
	run("commit", "-m", "initial commit")

	// Stage a modification
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.go"), []byte("package main\n\nfunc hello() { println(\"hi\") }\n"), 0644))
	run("add", "hello.go")

	return dir
}

func TestStagedFiles(t *testing.T) {
	repoPath := setupGitRepo(t)
	g := NewCLIGit(repoPath)

	files, err := g.StagedFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"hello.go"}, files)
}

func TestStagedFiles_EmptyIndex(t *testing.T) {
	repoPath := setupGitRepo(t)
	g := NewCLIGit(repoPath)
	require.NoError(t, g.Commit("flush the index"))

	files, err := g.StagedFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestStagedDiff(t *testing.T) {
	repoPath := setupGitRepo(t)
	g := NewCLIGit(repoPath)

	diff, err := g.StagedDiff("hello.go")
	require.NoError(t, err)
	assert.Contains(t, diff, "diff --git")
	assert.Contains(t, diff, `+func hello() { println("hi") }`)
}

func TestStageAllAndCommit(t *testing.T) {
	repoPath := setupGitRepo(t)
	g := NewCLIGit(repoPath)

	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "extra.go"), []byte("package main\n"), 0644))
	require.NoError(t, g.StageAll())

	files, err := g.StagedFiles()
	require.NoError(t, err)
	assert.Contains(t, files, "extra.go")

	require.NoError(t, g.Commit("add extra file"))

	files, err = g.StagedFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCommit_FailsOnEmptyIndex(t *testing.T) {
	repoPath := setupGitRepo(t)
	g := NewCLIGit(repoPath)
	require.NoError(t, g.Commit("flush"))

	err := g.Commit("nothing to commit")
	assert.Error(t, err)
}

func TestInspectRepo(t *testing.T) {
	repoPath := setupGitRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "notes.txt"), []byte("scratch\n"), 0644))

	state, err := InspectRepo(repoPath)
	require.NoError(t, err)
	assert.False(t, state.Clean)
	assert.Contains(t, state.Unstaged, "notes.txt")
	// The staged hello.go modification is not listed as stageable.
	assert.NotContains(t, state.Unstaged, "hello.go")
}

func TestInspectRepo_CleanTree(t *testing.T) {
	repoPath := setupGitRepo(t)
	g := NewCLIGit(repoPath)
	require.NoError(t, g.Commit("flush the index"))

	state, err := InspectRepo(repoPath)
	require.NoError(t, err)
	assert.True(t, state.Clean)
	assert.Empty(t, state.Unstaged)
}

func TestInspectRepo_NotARepo(t *testing.T) {
	dir := t.TempDir()
	_, err := InspectRepo(dir)
	assert.Error(t, err)
}
