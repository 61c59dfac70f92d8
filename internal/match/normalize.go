package match

import (
	"strings"
	"unicode"
)

// NormalizeName normalizes a display name or identifier for matching.
// The normalization pipeline:
// 1. Case-fold to lower.
// 2. Strip separators (_, -, ., whitespace).
func NormalizeName(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// SameName reports whether a and b are equal after normalization.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}
