package core

import (
	"fmt"
	"os/exec"
	"strings"
)

// Git is the version-control surface the commit flow depends on. It is an
// interface so the session loop and the collector can run against a fake
// without a real repository.
type Git interface {
	// StagedFiles returns the paths of all files staged in the index.
	StagedFiles() ([]string, error)

	// StagedDiff returns the staged diff text for a single path.
	StagedDiff(path string) (string, error)

	// StageAll stages every change in the working tree.
	StageAll() error

	// Commit creates a commit from the literal message.
	Commit(message string) error
}

// CLIGit runs the git binary against a repository path.
type CLIGit struct {
	RepoPath string
}

// NewCLIGit returns a CLIGit rooted at repoPath ("." for the cwd).
func NewCLIGit(repoPath string) *CLIGit {
	if repoPath == "" {
		repoPath = "."
	}
	return &CLIGit{RepoPath: repoPath}
}

func (g *CLIGit) StagedFiles() ([]string, error) {
	out, err := g.run("diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

func (g *CLIGit) StagedDiff(path string) (string, error) {
	return g.run("diff", "--cached", "--", path)
}

func (g *CLIGit) StageAll() error {
	_, err := g.run("add", "-A")
	return err
}

func (g *CLIGit) Commit(message string) error {
	_, err := g.run("commit", "-m", message)
	return err
}

func (g *CLIGit) run(args ...string) (string, error) {
	fullArgs := append([]string{"-C", g.RepoPath}, args...)
	cmd := exec.Command("git", fullArgs...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git command failed: %s", string(exitErr.Stderr))
		}
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
