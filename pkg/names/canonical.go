// Package names provides canonical-name folding and fuzzy name-to-id
// resolution against the staff index.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, removes combining marks and recomposes.
// This turns "Öztürk" into "Ozturk" and "TRİAJ" into "TRIAJ".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Canonical folds a name for fuzzy cross-source matching: diacritics
// stripped, case folded, whitespace collapsed. Turkish dotless ı has no
// decomposition, so it is mapped by hand before the transform.
func Canonical(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case 'ı':
			return 'i'
		case 'İ':
			return 'I'
		}
		return r
	}, s)

	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Tokens splits a canonical name into its word tokens.
func Tokens(canonical string) []string {
	return strings.Fields(canonical)
}
