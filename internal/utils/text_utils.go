package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TruncateWithEllipsis truncates text to at most maxLen bytes, appending an
// ellipsis when anything was cut. The cut never splits a UTF-8 sequence.
func TruncateWithEllipsis(text string, maxLen int) string {
	if maxLen <= 0 || len(text) <= maxLen {
		return text
	}

	truncated := text[:maxLen]
	for len(truncated) > 0 && !utf8.ValidString(truncated) {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "..."
}

// TruncateText truncates text to at most maxSize bytes for LLM input,
// marking the cut so the model knows content is missing.
func TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]
	for len(truncated) > 0 && !utf8.ValidString(truncated) {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "\n[... Content truncated due to size limits ...]"
}

// ExtractJSONObject returns the outermost JSON object embedded in an LLM
// response, salvaging output wrapped in prose or code fences.
func ExtractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return text[start : end+1], nil
}
