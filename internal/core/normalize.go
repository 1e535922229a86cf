package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the canonical search form of s: lower-cased, stripped of
// diacritics and trimmed. The query and every searchable field go through the
// same function so matching reduces to a substring test.
//
// Normalize is idempotent. Whitespace-only input yields "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	if !isASCII(s) {
		// transform.Chain holds state, so build one per call.
		stripped, _, err := transform.String(stripMarks(), s)
		if err == nil {
			s = stripped
		}
	}
	return strings.TrimSpace(s)
}

func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Haystack joins the normalized fields with single spaces.
func Haystack(fields []string) string {
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return Normalize(fields[0])
	}

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(Normalize(f))
	}
	return b.String()
}
