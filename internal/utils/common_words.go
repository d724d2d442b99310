package utils

import (
	"github.com/kljensen/snowball/french"
)

// everydayWords are French words within one edit of a station name that
// would otherwise be read as typos of it ("pars" → paris, "ville" → lille)
var everydayWords = map[string]struct{}{
	"pars": {}, "part": {}, "parts": {}, "parti": {}, "partir": {},
	"ville": {}, "villes": {}, "mille": {}, "fille": {}, "filles": {}, "bille": {},
	"lion": {}, "lions": {},
	"niche": {}, "nie": {},
	"tante": {}, "tantes": {},
}

// IsCommonWord reports whether a normalized word is a French stop word or an
// everyday word that must never be taken for a misspelled station
func IsCommonWord(word string) bool {
	if french.IsStopWord(word) {
		return true
	}
	_, ok := everydayWords[word]
	return ok
}
