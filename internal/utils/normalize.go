package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes free text for matching:
// French case folding, diacritics stripped, non-word runes removed,
// whitespace collapsed to single spaces.
// The result is stable under a second call.
func Normalize(text string) string {
	// Casers carry state and must not be shared between goroutines
	lower := cases.Lower(language.French).String(text)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, lower)
	if err != nil {
		stripped = lower
	}

	cleaned := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, stripped)

	return strings.Join(strings.Fields(cleaned), " ")
}

// Tokenize splits normalized text on whitespace
func Tokenize(normalized string) []string {
	return strings.Fields(normalized)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// DisplayName title-cases a lower-cased station name for replies ("saint-malo" → "Saint-Malo")
func DisplayName(name string) string {
	return cases.Title(language.French).String(name)
}
