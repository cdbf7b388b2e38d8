package core

import (
	"sort"

	git "gopkg.in/src-d/go-git.v4"
)

// RepoState summarizes the working tree as seen through go-git: whether
// anything at all changed, and which paths could still be staged. The session
// loop uses Clean as its precondition and Unstaged for the stage-all prompt;
// the diffs themselves still come from the git CLI (see CLIGit), which
// produces the exact text the index holds.
type RepoState struct {
	Clean    bool
	Unstaged []string
}

// InspectRepo opens the repository at path and reports its state. A missing
// or corrupt repository surfaces as an error, not an empty state.
func InspectRepo(path string) (*RepoState, error) {
	if path == "" {
		path = "."
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, err
	}

	state := &RepoState{Clean: status.IsClean()}
	for file, fs := range status {
		if fs.Staging == git.Unmodified || fs.Staging == git.Untracked {
			state.Unstaged = append(state.Unstaged, file)
		}
	}
	sort.Strings(state.Unstaged)
	return state, nil
}
