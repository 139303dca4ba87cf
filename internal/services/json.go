package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

func parseJSONResponse(response string, target interface{}, open, close string) error {
	jsonStr := extractJSON(response, open, close)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// extractJSON strips markdown code fences and trims anything outside the
// outermost open/close delimiters, which LLMs like to add around JSON.
func extractJSON(text, open, close string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, open)
	end := strings.LastIndex(text, close)
	if start != -1 && end != -1 && end > start {
		return text[start : end+len(close)]
	}

	return text
}
