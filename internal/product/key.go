package product

import (
	"strings"
	"unicode"
)

// Key derives the consolidation identity of a record: normalized code when
// present, else normalized reference, else the folded description. Two
// records with the same key are the same product.
func Key(r Record) string {
	if code := strings.ToLower(strings.TrimSpace(r.Code)); code != "" {
		return code
	}
	if ref := strings.ToLower(strings.TrimSpace(r.Reference)); ref != "" {
		return ref
	}
	return foldDescription(r.Description)
}

// foldDescription lowercases, strips punctuation and collapses whitespace so
// "Parafuso M6x20" and "parafuso  m6x20." land on the same key.
func foldDescription(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			// dropped
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}
