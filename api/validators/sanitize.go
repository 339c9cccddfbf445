package validators

import "strings"

// SanitizeString trims input and caps it at maxRunes characters without splitting
// multi-byte runes. A non-positive maxRunes disables the cap.
func SanitizeString(input string, maxRunes int) string {
	trimmed := strings.TrimSpace(input)
	if maxRunes <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) <= maxRunes {
		return trimmed
	}
	return strings.TrimSpace(string(runes[:maxRunes]))
}
