// Package printers wraps the interactive prompt toolkit. Every prompt
// returns a Response whose Cancelled flag is set when the user aborted
// (ctrl-c / esc), so callers never compare against a sentinel value.
package printers

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/manifoldco/promptui"
)

const selectItemsSize = 10

// Response is the result of one interactive prompt: either a value or a
// user cancellation, never both.
type Response[T any] struct {
	Value     T
	Cancelled bool
}

// Confirmed wraps a value in a non-cancelled Response.
func Confirmed[T any](v T) Response[T] {
	return Response[T]{Value: v}
}

// Cancelled returns a cancelled Response.
func Cancelled[T any]() Response[T] {
	return Response[T]{Cancelled: true}
}

// IPrinters is the prompt surface the session loop depends on. The session
// is tested against a scripted fake implementation.
type IPrinters interface {
	Confirm(message string) Response[bool]
	Select(message string, items []string) Response[int]
	MultiSelect(message string, items []string) Response[[]int]
	Spinner(message string) (stop func())
}

// Printers is the promptui/spinner-backed implementation.
type Printers struct{}

// NewPrinters returns the terminal-backed printers.
func NewPrinters() *Printers {
	return &Printers{}
}

func isCancel(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) ||
		errors.Is(err, promptui.ErrEOF)
}

// Confirm prompts a yes/no question. "n" answers false; aborting cancels.
func (p *Printers) Confirm(message string) Response[bool] {
	prompt := promptui.Prompt{
		Label:     message,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	if err != nil {
		// promptui reports a declined IsConfirm prompt as ErrAbort, which is
		// an answer, not a cancellation.
		if errors.Is(err, promptui.ErrAbort) {
			return Confirmed(false)
		}
		if isCancel(err) {
			return Cancelled[bool]()
		}
		return Confirmed(false)
	}
	return Confirmed(true)
}

// Select prompts a single choice over items and returns the chosen index.
func (p *Printers) Select(message string, items []string) Response[int] {
	prompt := promptui.Select{
		Label: message,
		Items: items,
		Size:  selectItemsSize,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		if isCancel(err) {
			return Cancelled[int]()
		}
		return Cancelled[int]()
	}
	return Confirmed(idx)
}

// MultiSelect lets the user toggle any number of items on and off, finishing
// through an explicit "done" entry. promptui has no native multi-select, so
// this loops a Select with checkbox markers.
func (p *Printers) MultiSelect(message string, items []string) Response[[]int] {
	selected := make(map[int]bool)

	for {
		display := make([]string, 0, len(items)+1)
		count := 0
		for i, item := range items {
			mark := "[ ]"
			if selected[i] {
				mark = "[x]"
				count++
			}
			display = append(display, fmt.Sprintf("%s %s", mark, item))
		}
		display = append(display, fmt.Sprintf("Done (%d selected)", count))

		prompt := promptui.Select{
			Label: message,
			Items: display,
			Size:  selectItemsSize,
		}

		idx, _, err := prompt.Run()
		if err != nil {
			if isCancel(err) {
				return Cancelled[[]int]()
			}
			return Cancelled[[]int]()
		}

		if idx == len(items) {
			var out []int
			for i := range items {
				if selected[i] {
					out = append(out, i)
				}
			}
			return Confirmed(out)
		}
		selected[idx] = !selected[idx]
	}
}

// Spinner starts a terminal spinner with the message and returns its stop
// function. Output goes to stderr so piped stdout stays clean.
func (p *Printers) Spinner(message string) func() {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}
