package service

import (
	"sort"
)

// Candidate is a station scored against a query
type Candidate struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	// Position of the station in the catalog, used to break ties
	Index int `json:"index"`
}

// Ranker handles filtering and ranking of fuzzy station candidates
type Ranker struct {
	threshold float64
	limit     int
}

// NewRanker creates a ranker keeping at most limit candidates scoring at least threshold
func NewRanker(threshold float64, limit int) *Ranker {
	return &Ranker{
		threshold: threshold,
		limit:     limit,
	}
}

// RankCandidates drops candidates below the threshold and returns the best ones.
// Equal scores keep catalog order.
func (r *Ranker) RankCandidates(candidates []Candidate) []Candidate {
	results := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score >= r.threshold {
			results = append(results, c)
		}
	}

	// Sort by score descending
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})

	if r.limit > 0 && len(results) > r.limit {
		results = results[:r.limit]
	}
	return results
}
