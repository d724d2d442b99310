package utils

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Scorer rates how closely a query resembles a candidate, in [0, 1]
type Scorer interface {
	Score(query, candidate string) float64
}

// LevenshteinScorer compares a candidate against every window of query
// words of the same length and keeps the best similarity.
// Both inputs are expected to be normalized already.
type LevenshteinScorer struct {
	metric *metrics.Levenshtein
	ignore func(word string) bool
}

// NewLevenshteinScorer creates a scorer based on normalized edit distance
func NewLevenshteinScorer() *LevenshteinScorer {
	return &LevenshteinScorer{metric: metrics.NewLevenshtein()}
}

// IgnoreWords makes the scorer skip windows made only of words for which fn
// returns true. It returns s for chaining.
func (s *LevenshteinScorer) IgnoreWords(fn func(word string) bool) *LevenshteinScorer {
	s.ignore = fn
	return s
}

// Score returns the best similarity between candidate and any query window
func (s *LevenshteinScorer) Score(query, candidate string) float64 {
	_, score := s.BestWindow(query, candidate)
	return score
}

// BestWindow returns the index of the first query word of the best window and its score.
// It returns -1 when either input is empty.
func (s *LevenshteinScorer) BestWindow(query, candidate string) (int, float64) {
	words := strings.Fields(query)
	size := len(strings.Fields(candidate))
	if len(words) == 0 || size == 0 {
		return -1, 0
	}

	// Multi-word names longer than the query are compared to the whole query
	if size > len(words) {
		size = len(words)
	}

	best, bestAt := 0.0, -1
	for i := 0; i+size <= len(words); i++ {
		if s.ignored(words[i : i+size]) {
			continue
		}
		window := strings.Join(words[i:i+size], " ")
		score := strutil.Similarity(window, candidate, s.metric)
		if score > best {
			best, bestAt = score, i
		}
	}

	return bestAt, best
}

func (s *LevenshteinScorer) ignored(window []string) bool {
	if s.ignore == nil {
		return false
	}
	for _, w := range window {
		if !s.ignore(w) {
			return false
		}
	}
	return true
}
