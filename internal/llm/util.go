package llm

import (
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a potential language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// RepairJSON attempts to fix almost-valid JSON (trailing commas, unquoted
// keys, truncated tails) after code fences are stripped. Returns the input
// unchanged when repair fails; callers still validate the result, so a failed
// repair just leads to the normal corrective-retry path.
func RepairJSON(text string) string {
	cleaned := CleanJSONBlock(text)
	repaired, err := jsonrepair.JSONRepair(cleaned)
	if err != nil {
		return cleaned
	}
	return repaired
}
