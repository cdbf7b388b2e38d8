package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// parseSnippetLen bounds how much of a malformed response is echoed back in
// a ParseError.
const parseSnippetLen = 200

// ErrEmptyResponse is returned when the generation service produced no text
// at all. It is deliberately distinct from a parse failure.
var ErrEmptyResponse = errors.New("the model returned an empty response")

// ParseError reports a response body that did not satisfy the review
// contract. Snippet carries at most the first 200 characters of the
// offending text so the failure can be diagnosed without dumping the payload.
type ParseError struct {
	Snippet string
	Cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse review response: %v (got: %q)", e.Cause, e.Snippet)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Finding is a single review observation: a message plus a location hint.
// LineNumber is kept as the string the model sent; ContextLine, when present,
// is preferred over it for locating the target (line numbers drift easily
// between diff and working file).
type Finding struct {
	Message     string `json:"message"`
	FilePath    string `json:"filePath"`
	LineNumber  string `json:"lineNumber,omitempty"`
	ContextLine string `json:"contextLine,omitempty"`
}

// ReviewResult is the parsed model output for one review call.
//
// The contract requires a finding to appear in exactly one of Critical and
// Suggestions. That invariant is owned by the producing service and is not
// re-checked here; see DESIGN.md.
type ReviewResult struct {
	CommitMessage string
	Critical      []Finding
	Suggestions   []Finding
}

// reviewWire matches the documented JSON shape on the wire.
type reviewWire struct {
	CommitMessage string `json:"commitMessage"`
	Review        struct {
		Critical    []Finding `json:"critical"`
		Suggestions []Finding `json:"suggestions"`
	} `json:"review"`
}

// MarshalJSON round-trips ReviewResult through the wire shape, mostly for
// tests and debug dumps.
func (r ReviewResult) MarshalJSON() ([]byte, error) {
	var w reviewWire
	w.CommitMessage = r.CommitMessage
	w.Review.Critical = r.Critical
	w.Review.Suggestions = r.Suggestions
	return json.Marshal(w)
}

// ParseReview validates and parses the model's response text into a
// ReviewResult. Markdown code fences around the JSON are tolerated and
// stripped; anything else malformed is rejected with a ParseError rather
// than guessed at. An empty body is ErrEmptyResponse.
func ParseReview(content string) (*ReviewResult, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyResponse
	}

	payload := stripFences(trimmed)

	var w reviewWire
	dec := json.NewDecoder(strings.NewReader(payload))
	if err := dec.Decode(&w); err != nil {
		return nil, &ParseError{Snippet: snippet(trimmed), Cause: err}
	}

	if strings.TrimSpace(w.CommitMessage) == "" {
		return nil, &ParseError{
			Snippet: snippet(trimmed),
			Cause:   errors.New("missing commitMessage field"),
		}
	}
	for _, f := range append(append([]Finding{}, w.Review.Critical...), w.Review.Suggestions...) {
		if strings.TrimSpace(f.Message) == "" || strings.TrimSpace(f.FilePath) == "" {
			return nil, &ParseError{
				Snippet: snippet(trimmed),
				Cause:   errors.New("finding is missing message or filePath"),
			}
		}
	}

	return &ReviewResult{
		CommitMessage: strings.TrimSpace(w.CommitMessage),
		Critical:      w.Review.Critical,
		Suggestions:   w.Review.Suggestions,
	}, nil
}

// stripFences removes a single surrounding markdown code fence, with or
// without a language tag. Content that is not fenced passes through intact.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 3 {
		return s
	}
	last := len(lines) - 1
	if strings.TrimSpace(lines[last]) != "```" {
		return s
	}
	return strings.TrimSpace(strings.Join(lines[1:last], "\n"))
}

func snippet(s string) string {
	if len(s) > parseSnippetLen {
		return s[:parseSnippetLen]
	}
	return s
}

// ExtractRateLimitMessage trims a transport rate-limit payload down to its
// human-readable prefix. Provider 429 bodies often append large structured
// diagnostic arrays after the message, e.g.
//
//	[429 Too Many Requests] Quota exceeded [{"@type": ...}]
//
// Everything from the point where the structured detail begins is discarded.
func ExtractRateLimitMessage(msg string) string {
	if idx := strings.Index(msg, "[{"); idx >= 0 {
		msg = msg[:idx]
	}
	return strings.TrimSpace(msg)
}
