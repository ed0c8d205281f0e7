// utils/text.go
package utils

import (
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName folds a Pokémon name for matching: lowercase, accents
// stripped, non-alphanumeric runes removed. "Pikachu ♀" and "pikachu"
// compare equal after this.
func NormalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = unidecode.Unidecode(s)
	}
	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ASCIIFold transliterates any remaining non-ASCII runes, used when matching
// model output that may romanize names differently than our catalog.
func ASCIIFold(s string) string {
	return unidecode.Unidecode(s)
}
