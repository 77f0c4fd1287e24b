package shot

import (
	"strings"
	"unicode"
)

// Header derives the literal label text that marks a field's section in a
// composed block: the field name title-cased plus a trailing colon. Headers
// are a fixed transform of the field name, recomputed wherever needed and
// never stored.
func Header(field string) string {
	return titleCase(field) + ":"
}

// titleCase upper-cases the first letter of every word and lower-cases the
// rest, treating any non-letter as a word break.
func titleCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		if !unicode.IsLetter(r) {
			sb.WriteRune(r)
			startOfWord = true
			continue
		}
		if startOfWord {
			sb.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		} else {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}
