package sanitization

import (
	"regexp"
	"strings"
)

var (
	// C0 controls, DEL and C1 controls
	controlChars = regexp.MustCompile(`[\x{0000}-\x{001F}\x{007F}-\x{009F}]`)
	// \s alone is ASCII only
	whitespace = regexp.MustCompile(`[\s\p{Zs}\x{FEFF}\x{2028}\x{2029}]+`)
)

// SanitizeMessage strips control characters, collapses whitespace runs to a
// single space and trims the result. Applying it twice is a no-op.
func SanitizeMessage(input string) string {
	// Tabs and newlines fall in the control range and are removed, not spaced.
	safe := controlChars.ReplaceAllString(input, "")
	safe = whitespace.ReplaceAllString(safe, " ")
	return strings.TrimSpace(safe)
}

// SanitizeEmail lowercases and trims an email address
func SanitizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
