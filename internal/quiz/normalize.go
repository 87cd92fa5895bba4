package quiz

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a free-form answer for comparison: uppercase
// with all whitespace removed. Empty input maps to "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
