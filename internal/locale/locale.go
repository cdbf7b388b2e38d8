// Package locale holds the user-facing string tables. Only two languages are
// shipped: English (default) and Korean.
package locale

// Lang selects a string table.
type Lang string

const (
	LangEN Lang = "en"
	LangKO Lang = "ko"
)

// ParseLang normalizes a --lang flag value. Unknown values fall back to
// English rather than erroring, matching how the flag is documented.
func ParseLang(s string) Lang {
	switch s {
	case "ko", "kr", "korean":
		return LangKO
	default:
		return LangEN
	}
}

var tables = map[Lang]map[string]string{
	LangEN: {
		"no_staged":           "No files are staged for commit.",
		"unstaged_files":      "%d unstaged file(s): %s",
		"stage_all_confirm":   "Stage all changes and continue?",
		"no_changes":          "Working tree is clean, nothing to commit.",
		"nothing_to_review":   "No reviewable content in the staged changes.",
		"requesting":          "Asking the AI for a review...",
		"cancelled":           "Cancelled. No commit was made.",
		"commit_message":      "Commit message",
		"critical_title":      "Critical findings",
		"suggestions_title":   "Suggestions",
		"no_findings":         "No findings. Looks good.",
		"action_prompt":       "What would you like to do?",
		"action_commit":       "Commit with this message",
		"action_edit":         "Edit the message",
		"action_annotate":     "Insert suggestions as TODO comments",
		"action_copy":         "Copy the message to the clipboard",
		"action_cancel":       "Cancel without committing",
		"annotate_prompt":     "Select suggestions to insert",
		"annotate_applied":    "Inserted %d comment(s), skipped %d.",
		"copied":              "Commit message copied to the clipboard.",
		"committed":           "Committed.",
		"commit_failed":       "Commit failed: %s",
		"missing_api_key":     "No API key found. Set %s before running revu.",
		"collect_failed":      "Could not collect the staged diff: %s",
		"review_failed":       "Review request failed: %s",
		"skipped_files":       "Skipped %d file(s): %s",
	},
	LangKO: {
		"no_staged":           "스테이징된 파일이 없습니다.",
		"unstaged_files":      "스테이징되지 않은 파일 %d개: %s",
		"stage_all_confirm":   "모든 변경 사항을 스테이징하고 계속할까요?",
		"no_changes":          "변경 사항이 없어 커밋할 내용이 없습니다.",
		"nothing_to_review":   "스테이징된 변경 사항에 리뷰할 내용이 없습니다.",
		"requesting":          "AI 리뷰를 요청하는 중...",
		"cancelled":           "취소되었습니다. 커밋하지 않았습니다.",
		"commit_message":      "커밋 메시지",
		"critical_title":      "치명적 문제",
		"suggestions_title":   "제안 사항",
		"no_findings":         "발견된 문제가 없습니다.",
		"action_prompt":       "어떻게 할까요?",
		"action_commit":       "이 메시지로 커밋",
		"action_edit":         "메시지 수정",
		"action_annotate":     "제안을 TODO 주석으로 삽입",
		"action_copy":         "메시지를 클립보드에 복사",
		"action_cancel":       "커밋하지 않고 취소",
		"annotate_prompt":     "삽입할 제안을 선택하세요",
		"annotate_applied":    "주석 %d개 삽입, %d개 건너뜀.",
		"copied":              "커밋 메시지를 클립보드에 복사했습니다.",
		"committed":           "커밋했습니다.",
		"commit_failed":       "커밋 실패: %s",
		"missing_api_key":     "API 키가 없습니다. %s 환경 변수를 설정하세요.",
		"collect_failed":      "스테이징된 diff를 수집하지 못했습니다: %s",
		"review_failed":       "리뷰 요청에 실패했습니다: %s",
		"skipped_files":       "파일 %d개 건너뜀: %s",
	},
}

// T looks up a string for the given language, falling back to English when
// the key is missing from the localized table.
func T(lang Lang, key string) string {
	if t, ok := tables[lang]; ok {
		if s, ok := t[key]; ok {
			return s
		}
	}
	return tables[LangEN][key]
}
