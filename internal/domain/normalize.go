package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Capitalize upper-cases the first letter of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// IsCapitalized reports whether the first character of s is an upper-case letter.
func IsCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// CollapseSpace trims s and compresses every whitespace run into one space.
// Case, diacritics and punctuation are preserved.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
