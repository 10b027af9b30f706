package items

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// EscapeName folds an item name into the identifier form used to key
// solver handles. Diacritics are removed, spaces become underscores and
// any other punctuation is dropped, so "Zelda's Letter" and "Zeldas Letter"
// share a handle.
func EscapeName(name string) string {
	folding := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folding, strings.TrimSpace(name))
	if err != nil {
		folded = strings.TrimSpace(name)
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
