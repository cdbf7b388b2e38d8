// Package session drives the interactive resolution loop: stage, collect the
// diff, request a review, report it, then let the user commit, edit the
// message, annotate the code, or cancel, in any order, until a commit is made
// or the run is abandoned. The loop is an explicit state machine so every
// reachable path is enumerable by tests.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/revu-cli/revu/internal/common"
	"github.com/revu-cli/revu/internal/config"
	"github.com/revu-cli/revu/internal/core"
	"github.com/revu-cli/revu/internal/inject"
	"github.com/revu-cli/revu/internal/locale"
	"github.com/revu-cli/revu/internal/printers"
	"github.com/revu-cli/revu/internal/provider"
	"github.com/revu-cli/revu/internal/renders"
)

// State names one step of the resolution loop.
type State int

const (
	StateInit State = iota
	StateStaging
	StateCollecting
	StateRequesting
	StateReporting
	StateActing
	StateFinalizing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateStaging:
		return "staging"
	case StateCollecting:
		return "collecting"
	case StateRequesting:
		return "requesting"
	case StateReporting:
		return "reporting"
	case StateActing:
		return "acting"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Outcome is how a run ended. Cancelled covers every user-initiated no-op
// exit (declined staging, cancel action, aborted prompt) and maps to exit
// code 0; Failed maps to exit code 1.
type Outcome int

const (
	OutcomeCommitted Outcome = iota
	OutcomeCancelled
	OutcomeFailed
)

// action indices are derived from the menu each iteration, since the
// annotate entry disappears once no suggestions remain.
type action int

const (
	actionCommit action = iota
	actionEdit
	actionAnnotate
	actionCopy
	actionCancel
)

// Session owns all mutable state of one run: the current commit message, the
// suggestions not yet applied, and the applied counter. It is strictly
// sequential: one git subprocess, one network call, or one prompt at a time.
type Session struct {
	conf      config.Config
	git       core.Git
	provider  provider.AIProvider
	printers  printers.IPrinters
	collector *core.Collector
	out       io.Writer
	errw      io.Writer

	// inspectRepo is swappable for tests; defaults to core.InspectRepo.
	inspectRepo func(path string) (*core.RepoState, error)

	// editMessage is swappable for tests; defaults to EditInEditor.
	editMessage func(string) (string, error)

	// copyToClipboard is swappable for tests.
	copyToClipboard func(string) error

	state        State
	stagedFiles  []string
	changeSet    *core.ChangeSet
	result       *core.ReviewResult
	message      string
	pending      []core.Finding
	appliedCount int

	outcome Outcome
	failure error
}

// New builds a Session from its collaborators.
func New(conf config.Config, git core.Git, p provider.AIProvider) *Session {
	collConf := core.DefaultCollectorConfig()
	collConf.RepoPath = conf.RepoPath

	out := conf.OutWriter
	if out == nil {
		out = os.Stdout
	}
	errw := conf.ErrWriter
	if errw == nil {
		errw = os.Stderr
	}

	return &Session{
		conf:            conf,
		git:             git,
		provider:        p,
		printers:        conf.Printers,
		collector:       core.NewCollector(git, collConf),
		out:             out,
		errw:            errw,
		inspectRepo:     core.InspectRepo,
		editMessage:     EditInEditor,
		copyToClipboard: common.SetClipboardValue,
		state:           StateInit,
	}
}

// Run executes the loop to completion. On OutcomeFailed the returned error
// describes the failure; otherwise it is nil.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	for s.state != StateDone {
		common.LogDebug(s.conf.Debug, "state: %s", s.state)
		s.state = s.step(ctx)
	}
	return s.outcome, s.failure
}

// step runs the work of the current state and returns the next one.
func (s *Session) step(ctx context.Context) State {
	switch s.state {
	case StateInit:
		return StateStaging
	case StateStaging:
		return s.stepStaging()
	case StateCollecting:
		return s.stepCollecting()
	case StateRequesting:
		return s.stepRequesting(ctx)
	case StateReporting:
		return s.stepReporting()
	case StateActing:
		return s.stepActing()
	case StateFinalizing:
		return s.stepFinalizing()
	default:
		return StateDone
	}
}

func (s *Session) t(key string) string {
	return locale.T(s.conf.Lang, key)
}

func (s *Session) fail(err error) State {
	s.outcome = OutcomeFailed
	s.failure = err
	return StateDone
}

func (s *Session) cancel() State {
	fmt.Fprintln(s.out, s.t("cancelled"))
	s.outcome = OutcomeCancelled
	return StateDone
}

// quiet exit for "nothing to do": no cancellation notice, still exit 0.
func (s *Session) nothingToDo(key string) State {
	fmt.Fprintln(s.out, s.t(key))
	s.outcome = OutcomeCancelled
	return StateDone
}

func (s *Session) stepStaging() State {
	files, err := s.git.StagedFiles()
	if err != nil {
		return s.fail(err)
	}

	if len(files) == 0 {
		state, err := s.inspectRepo(s.conf.RepoPath)
		if err != nil {
			return s.fail(err)
		}
		if state.Clean {
			return s.nothingToDo("no_changes")
		}

		if !s.conf.AutoStage {
			fmt.Fprintln(s.out, s.t("no_staged"))
			if len(state.Unstaged) > 0 {
				fmt.Fprintf(s.out, s.t("unstaged_files")+"\n",
					len(state.Unstaged), strings.Join(state.Unstaged, ", "))
			}
			resp := s.printers.Confirm(s.t("stage_all_confirm"))
			if resp.Cancelled {
				return s.cancel()
			}
			if !resp.Value {
				return s.nothingToDo("cancelled")
			}
		}
		if err := s.git.StageAll(); err != nil {
			return s.fail(err)
		}
		files, err = s.git.StagedFiles()
		if err != nil {
			return s.fail(err)
		}
		if len(files) == 0 {
			return s.nothingToDo("no_changes")
		}
	}

	s.stagedFiles = files
	return StateCollecting
}

func (s *Session) stepCollecting() State {
	cs, err := s.collector.Collect(s.stagedFiles)
	if err != nil {
		if errors.Is(err, core.ErrNothingToReview) {
			return s.fail(errors.New(s.t("nothing_to_review")))
		}
		return s.fail(fmt.Errorf(s.t("collect_failed"), err))
	}

	if skipped := cs.Skipped(); len(skipped) > 0 {
		var names []string
		for _, f := range skipped {
			names = append(names, fmt.Sprintf("%s (%s)", f.Path, f.SkipReason))
		}
		fmt.Fprintf(s.errw, s.t("skipped_files")+"\n", len(names), strings.Join(names, ", "))
	}

	s.changeSet = cs
	return StateRequesting
}

func (s *Session) stepRequesting(ctx context.Context) State {
	system, user := core.BuildReviewPrompt(s.changeSet, s.conf.Lang)

	stop := s.printers.Spinner(s.t("requesting"))
	resp, err := s.provider.Complete(ctx, provider.CompletionRequest{
		Model: s.conf.Model,
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: system},
			{Role: provider.RoleUser, Content: user},
		},
		JSONOnly: true,
	})
	stop()

	if err != nil {
		return s.fail(fmt.Errorf(s.t("review_failed"), cleanProviderError(err)))
	}

	result, err := core.ParseReview(resp.Content)
	if err != nil {
		return s.fail(fmt.Errorf(s.t("review_failed"), err))
	}

	s.result = result
	s.message = result.CommitMessage
	s.pending = append([]core.Finding(nil), result.Suggestions...)
	return StateReporting
}

func (s *Session) stepReporting() State {
	fmt.Fprintln(s.out, renders.RenderReport(s.result, s.conf.Lang))
	return StateActing
}

// stepActing shows the re-entrant action menu. Edit, annotate and copy all
// return here; only commit and cancel leave it.
func (s *Session) stepActing() State {
	actions := []action{actionCommit, actionEdit}
	if len(s.pending) > 0 {
		actions = append(actions, actionAnnotate)
	}
	actions = append(actions, actionCopy, actionCancel)

	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = s.actionLabel(a)
	}

	resp := s.printers.Select(s.t("action_prompt"), labels)
	if resp.Cancelled {
		return s.cancel()
	}

	switch actions[resp.Value] {
	case actionCommit:
		return StateFinalizing
	case actionEdit:
		return s.doEdit()
	case actionAnnotate:
		return s.doAnnotate()
	case actionCopy:
		return s.doCopy()
	default:
		return s.cancel()
	}
}

func (s *Session) actionLabel(a action) string {
	switch a {
	case actionCommit:
		return s.t("action_commit")
	case actionEdit:
		return s.t("action_edit")
	case actionAnnotate:
		return fmt.Sprintf("%s (%d)", s.t("action_annotate"), len(s.pending))
	case actionCopy:
		return s.t("action_copy")
	default:
		return s.t("action_cancel")
	}
}

func (s *Session) doEdit() State {
	edited, err := s.editMessage(s.message)
	if err != nil {
		// An editor failure keeps the old message and returns to the menu.
		fmt.Fprintln(s.errw, err.Error())
		return StateActing
	}
	if edited != "" {
		s.message = edited
	}
	return StateActing
}

func (s *Session) doAnnotate() State {
	labels := make([]string, len(s.pending))
	for i, f := range s.pending {
		labels[i] = fmt.Sprintf("%s — %s", renders.FindingLabel(f), truncate(f.Message, 60))
	}

	resp := s.printers.MultiSelect(s.t("annotate_prompt"), labels)
	if resp.Cancelled {
		return s.cancel()
	}

	applied := make(map[int]bool)
	skipped := 0
	for _, idx := range resp.Value {
		f := s.pending[idx]
		ok, err := s.applyFinding(f)
		if err != nil {
			fmt.Fprintln(s.errw, err.Error())
			skipped++
			continue
		}
		if !ok {
			skipped++
			continue
		}
		applied[idx] = true
		s.appliedCount++
	}

	// Drop the consumed findings so a later annotate round cannot insert the
	// same comment twice.
	if len(applied) > 0 {
		remaining := s.pending[:0]
		for i, f := range s.pending {
			if !applied[i] {
				remaining = append(remaining, f)
			}
		}
		s.pending = remaining

		if err := s.git.StageAll(); err != nil {
			return s.fail(err)
		}
	}

	fmt.Fprintf(s.out, s.t("annotate_applied")+"\n", len(applied), skipped)
	return StateActing
}

func (s *Session) applyFinding(f core.Finding) (bool, error) {
	var before string
	if s.conf.Debug {
		raw, err := os.ReadFile(filepath.Join(s.conf.RepoPath, f.FilePath))
		if err == nil {
			before = string(raw)
		}
	}

	ok, err := inject.ApplyToFile(f, s.conf.RepoPath)
	if err != nil || !ok {
		return ok, err
	}

	if s.conf.Debug && before != "" {
		raw, err := os.ReadFile(filepath.Join(s.conf.RepoPath, f.FilePath))
		if err == nil {
			common.LogDebug(true, "annotated %s:\n%s", f.FilePath, inject.Preview(before, string(raw)))
		}
	}
	return true, nil
}

func (s *Session) doCopy() State {
	if err := s.copyToClipboard(s.message); err != nil {
		fmt.Fprintln(s.errw, err.Error())
		return StateActing
	}
	fmt.Fprintln(s.out, s.t("copied"))
	return StateActing
}

func (s *Session) stepFinalizing() State {
	if err := s.git.Commit(s.message); err != nil {
		return s.fail(fmt.Errorf(s.t("commit_failed"), err))
	}
	fmt.Fprintln(s.out, s.t("committed"))
	s.outcome = OutcomeCommitted
	return StateDone
}

// cleanProviderError turns a provider error into the short human message the
// user should see. Rate-limit payloads often trail large structured
// diagnostic arrays; those are cut off.
func cleanProviderError(err error) string {
	var pe *provider.ProviderError
	if errors.As(err, &pe) {
		if pe.Code == provider.ErrCodeRateLimit {
			return core.ExtractRateLimitMessage(pe.Message)
		}
		return pe.Message
	}
	return err.Error()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
