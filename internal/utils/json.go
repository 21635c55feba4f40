package utils

import (
	"strings"
)

// SanitizeJSON cleans raw AI output to extract valid JSON.
// It removes Markdown code fences (```json ... ```) and whitespace.
func SanitizeJSON(input string) string {
	cleaned := strings.TrimSpace(input)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}

	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSuffix(cleaned, "```")
	}

	return strings.TrimSpace(cleaned)
}

// LooksLikeJSON reports whether the sanitized text plausibly starts a JSON
// document. Used as a cheap gate before attempting a structured fast path.
func LooksLikeJSON(input string) bool {
	return strings.HasPrefix(input, "[") || strings.HasPrefix(input, "{")
}
