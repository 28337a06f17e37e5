package analyzer

import "strings"

const (
	jsonFence  = "```json"
	closeFence = "```"
)

// ExtractJSON returns the interior of the first ```json fenced block in text,
// or the whole text when there is no such block. The result is trimmed.
func ExtractJSON(text string) string {
	start := strings.Index(text, jsonFence)
	if start == -1 {
		return strings.TrimSpace(text)
	}
	body := text[start+len(jsonFence):]

	end := strings.Index(body, closeFence)
	if end == -1 {
		// unterminated fence
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(body[:end])
}
