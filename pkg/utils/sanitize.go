package utils

import (
	"html"
	"strings"
	"unicode"
)

// SanitizeString normalizes raw form input: trim surrounding whitespace,
// strip backslash escapes, then HTML-escape. The result is what gets
// stored and what gets echoed back into the form on validation failure.
func SanitizeString(input string) string {
	trimmed := strings.TrimSpace(input)

	stripped := StripSlashes(trimmed)

	return html.EscapeString(stripped)
}

// StripSlashes removes backslash escapes, turning `\"` into `"` and
// `\\` into `\`. A trailing lone backslash is dropped.
func StripSlashes(input string) string {
	var result strings.Builder
	result.Grow(len(input))

	escaped := false
	for _, r := range input {
		if escaped {
			result.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}

// SanitizeEmail sanitizes email input
func SanitizeEmail(email string) string {
	// Convert to lowercase and trim
	email = strings.ToLower(strings.TrimSpace(email))

	email = StripSlashes(email)

	// Remove any control characters
	email = removeControlChars(email)

	return email
}

// removeControlChars removes control characters from string
func removeControlChars(input string) string {
	var result strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}
