package core

import (
	"fmt"

	"github.com/revu-cli/revu/internal/locale"
)

// MaxPromptChars is the hard ceiling on diff text embedded in the prompt.
// Anything beyond it is cut off, not summarized.
const MaxPromptChars = 5000

const systemInstruction = `You are a senior engineer reviewing a staged git diff before it is committed.
Respond with a single JSON object and nothing else: no markdown fences, no prose.

The JSON shape is exactly:
{
  "commitMessage": "<conventional one-line commit message for the whole diff>",
  "review": {
    "critical": [{"message": "...", "filePath": "...", "lineNumber": "..."}],
    "suggestions": [{"message": "...", "filePath": "...", "lineNumber": "...", "contextLine": "..."}]
  }
}

Rules:
- "critical" is for bugs, security problems and data loss; "suggestions" is for
  style and improvements. A finding belongs to exactly one of the two lists.
- A hardcoded secret, token or password in an ADDED line is always critical,
  never a suggestion.
- Never review deleted lines (lines starting with "-").
- "contextLine" is the verbatim source line the suggestion refers to, copied
  from the diff without the leading "+".
- "lineNumber" is a string holding the line number in the new file.
- Keep each message short and actionable.`

const responseLanguageDirective = `
- Write "commitMessage" in English, but every finding "message" in Korean.`

// BuildReviewPrompt assembles the system instruction and the truncated diff
// payload for one review call.
func BuildReviewPrompt(cs *ChangeSet, lang locale.Lang) (system string, user string) {
	system = systemInstruction
	if lang == locale.LangKO {
		system += responseLanguageDirective
	}

	payload := cs.Payload()
	if len(payload) > MaxPromptChars {
		payload = payload[:MaxPromptChars]
	}

	user = fmt.Sprintf("Review this staged diff:\n\n%s", payload)
	return system, user
}
