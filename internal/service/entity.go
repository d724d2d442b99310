package service

import (
	"context"
	"strings"

	"railchat/internal/utils"
)

// StationSource provides the memoized station names
type StationSource interface {
	Stations(ctx context.Context) []string
}

// MaxStationEntities bounds how many stations a query can mention: a departure and an arrival
const MaxStationEntities = 2

// EntityExtractor finds station names mentioned in a query
type EntityExtractor struct {
	stations StationSource
	scorer   utils.Scorer
	ranker   *Ranker
	max      int
}

// NewEntityExtractor creates an extractor returning at most maxEntities stations,
// clamped to [1, MaxStationEntities]. Fuzzy candidates must score at least threshold.
func NewEntityExtractor(stations StationSource, scorer utils.Scorer, threshold float64, maxEntities int) *EntityExtractor {
	if maxEntities < 1 || maxEntities > MaxStationEntities {
		maxEntities = MaxStationEntities
	}
	return &EntityExtractor{
		stations: stations,
		scorer:   scorer,
		ranker:   NewRanker(threshold, maxEntities),
		max:      maxEntities,
	}
}

// ExtractStations returns the stations mentioned in text, exact matches first.
// The fuzzy pass only runs when no station name appears verbatim.
func (e *EntityExtractor) ExtractStations(ctx context.Context, text string) []string {
	query := utils.Normalize(text)
	if query == "" {
		return []string{}
	}

	names := e.stations.Stations(ctx)
	if len(names) == 0 {
		return []string{}
	}

	if exact := e.exactMatches(query, names); len(exact) > 0 {
		return exact
	}
	return e.fuzzyMatches(query, names)
}

func (e *EntityExtractor) exactMatches(query string, names []string) []string {
	matches := []string{}
	for _, name := range names {
		normalized := utils.Normalize(name)
		if normalized == "" || !strings.Contains(query, normalized) {
			continue
		}
		matches = append(matches, name)
		if len(matches) == e.max {
			break
		}
	}
	return matches
}

func (e *EntityExtractor) fuzzyMatches(query string, names []string) []string {
	candidates := make([]Candidate, 0, len(names))
	for i, name := range names {
		candidates = append(candidates, Candidate{
			Name:  name,
			Score: e.scorer.Score(query, utils.Normalize(name)),
			Index: i,
		})
	}

	ranked := e.ranker.RankCandidates(candidates)
	matches := make([]string, 0, len(ranked))
	for _, c := range ranked {
		matches = append(matches, c.Name)
	}
	return matches
}
