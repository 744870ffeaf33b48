package textutil

import (
	"unicode"
	"unicode/utf8"
)

// IsAllUpper reports whether s has an uppercase letter and no lowercase
// ones, the shape of constants and acronyms such as "OK" or "FPS".
func IsAllUpper(s string) bool {
	hasUpper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

// Truncate shortens a string to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
