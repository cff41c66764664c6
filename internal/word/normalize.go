package word

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize trims surrounding space, upper-cases w and composes it to NFC so
// that stored words, lookups and guesses compare equal regardless of how they
// were typed. A decomposed "E\u0301" becomes the single letter "É".
func Normalize(w string) string {
	return norm.NFC.String(cases.Upper(language.Und).String(strings.TrimSpace(w)))
}

// Len returns the number of letters in w.
func Len(w string) int {
	return utf8.RuneCountInString(w)
}
