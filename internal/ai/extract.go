package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when no parsable JSON object can be located in the
// model response.
var ErrNoJSON = errors.New("ai: no JSON object found in model response")

// ExtractJSON parses a JSON object out of free-form model output into v.
// It tries a strict parse first, then the same after stripping markdown code
// fences, and finally the span between the first '{' and the last '}'.
// It never panics; a response without a usable object yields ErrNoJSON.
func ExtractJSON(raw string, v interface{}) error {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ErrNoJSON
	}

	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	stripped := stripFences(text)
	if stripped != text {
		if err := json.Unmarshal([]byte(stripped), v); err == nil {
			return nil
		}
		text = stripped
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ErrNoJSON
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return errors.Join(ErrNoJSON, err)
	}
	return nil
}

func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
