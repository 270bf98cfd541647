package classification

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizeText folds text into the form both terms and inputs are matched in:
// diacritics removed, lowercase, every run of non letter/digit runes collapsed
// to a single space, and one space of padding on each side. The padding makes a
// substring search over normalized text equivalent to whole-word matching.
func normalizeText(s string) string {
	// transform.Chain keeps state, so each call builds its own.
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(folder, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(' ')

	boundary := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			boundary = false
			continue
		}
		if !boundary {
			b.WriteByte(' ')
			boundary = true
		}
	}
	if !boundary {
		b.WriteByte(' ')
	}

	return b.String()
}

// normalizeTerm returns the padded form of a trigger term, or "" if nothing
// matchable is left.
func normalizeTerm(term string) string {
	n := normalizeText(term)
	if strings.TrimSpace(n) == "" {
		return ""
	}
	return n
}
