// Package parsing turns untrusted model output into sanitized profile data.
package parsing

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/jobboard/internal/schemas"
)

const snippetLen = 200

// ExtractJSONObject decodes the span from the first '{' to the last '}' of
// raw, ignoring any prose or code fences around it.
func ExtractJSONObject(raw string) (map[string]any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return nil, &ParseError{Message: "no JSON object in model output", Snippet: snippet(raw)}
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return nil, &ParseError{Message: "model output is not valid JSON", Snippet: snippet(raw), Cause: err}
	}
	return obj, nil
}

// ParseProfileResponse extracts and shape-checks a profile extraction response.
func ParseProfileResponse(raw string) (map[string]any, error) {
	return parseWithSchema(raw, schemas.ExtractedProfile)
}

// ParseApplicationResponse extracts and shape-checks an application autofill response.
func ParseApplicationResponse(raw string) (map[string]any, error) {
	return parseWithSchema(raw, schemas.ApplicationAutofill)
}

func parseWithSchema(raw, schema string) (map[string]any, error) {
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}
	if err := schemas.Validate(schema, obj); err != nil {
		return nil, &ParseError{Message: "model output has the wrong shape", Snippet: snippet(raw), Cause: err}
	}
	return obj, nil
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) > snippetLen {
		return string(r[:snippetLen]) + "..."
	}
	return s
}
