package textnorm

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes free text for matching: case-folds, drops every
// rune outside the Unicode letter/number/mark/whitespace classes and trims
// the result. Marks must survive: Burmese vowel signs and the asat are
// combining marks (Mn/Mc), and stripping them would mangle every Burmese
// word. Safe on empty input and idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}
