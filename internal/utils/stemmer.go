package utils

import (
	"github.com/kljensen/snowball"
)

// Stemmer reduces a token to its root
type Stemmer interface {
	Stem(token string) string
}

// SnowballStemmer stems tokens with the Snowball algorithm of one language
type SnowballStemmer struct {
	language string
}

// NewSnowballStemmer creates a stemmer for a Snowball language ("french", "english", ...)
func NewSnowballStemmer(language string) *SnowballStemmer {
	return &SnowballStemmer{language: language}
}

// Stem returns the stem of token, or token itself when stemming fails
func (s *SnowballStemmer) Stem(token string) string {
	// Stop words are stemmed too so short triggers ("tous") still get a stem
	stem, err := snowball.Stem(token, s.language, true)
	if err != nil || stem == "" {
		return token
	}
	return stem
}
