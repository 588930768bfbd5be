package domain

import (
	"strings"
)

// NormalizeLanguage converts a language input to the normalized ISO 639-1
// form used for storage and topic fallback comparison.
// Examples: "DE" -> "de", "  En  " -> "en"
func NormalizeLanguage(input string) string {
	normalized := strings.TrimSpace(input)
	normalized = strings.ToLower(normalized)
	return normalized
}
