package service

import (
	"strings"

	"railchat/internal/config"
	"railchat/internal/model"
)

// Bonus adds fixed points to an intent when a pattern is found in the query.
// Match receives the normalized text and its tokens.
type Bonus struct {
	Name   string
	Points int
	Match  func(normalized string, tokens []string) bool
}

// IntentRule lists the trigger words of one intent. Triggers are normalized.
type IntentRule struct {
	Intent   model.Intent
	Triggers []string
	Bonuses  []Bonus
}

// DefaultIntentTable returns the French rule table in priority order.
// Earlier rules win ties.
func DefaultIntentTable(cfg config.NLUConfig) []IntentRule {
	return []IntentRule{
		{
			Intent:   model.IntentReservation,
			Triggers: []string{"reserver", "reservation", "billet", "acheter", "achat"},
		},
		{
			Intent:   model.IntentSchedule,
			Triggers: []string{"horaire", "heure", "depart", "arrivee", "quand", "partir"},
		},
		{
			Intent:   model.IntentInformation,
			Triggers: []string{"information", "info", "renseignement", "savoir", "gare", "station"},
		},
		{
			Intent:   model.IntentListing,
			Triggers: []string{"liste", "lister", "afficher", "tous", "toutes", "disponible"},
			Bonuses: []Bonus{
				{Name: "all_of", Points: cfg.AllOfBonus, Match: hasAllOf},
			},
		},
		{
			Intent:   model.IntentPrice,
			// "couts" rather than "cout", which hides inside ecouter
			Triggers: []string{"prix", "tarif", "couts", "combien", "payer", "euros"},
			Bonuses: []Bonus{
				{Name: "cost_verb", Points: cfg.CostVerbBonus, Match: hasCostVerb},
			},
		},
		{
			Intent:   model.IntentLines,
			Triggers: []string{"ligne", "trajet", "desserte", "relie", "compagnie", "reseau"},
		},
	}
}

// hasAllOf reports "tous les" or "toutes les" as consecutive words
func hasAllOf(_ string, tokens []string) bool {
	for i := 0; i+1 < len(tokens); i++ {
		if (tokens[i] == "tous" || tokens[i] == "toutes") && tokens[i+1] == "les" {
			return true
		}
	}
	return false
}

// Verb endings after the "cout" stem of coûter, in normalized form.
// The bare noun "cout" and its plural "couts" are not verb forms.
var costVerbEndings = map[string]struct{}{
	"e": {}, "es": {}, "ent": {}, "er": {}, "ons": {}, "ez": {},
	"ait": {}, "ais": {}, "aient": {}, "ant": {}, "a": {},
	"era": {}, "eront": {}, "erait": {}, "eraient": {}, "erai": {},
}

// hasCostVerb reports an inflected form of the verb coûter
func hasCostVerb(_ string, tokens []string) bool {
	for _, tok := range tokens {
		rest, ok := strings.CutPrefix(tok, "cout")
		if !ok {
			continue
		}
		if _, verb := costVerbEndings[rest]; verb {
			return true
		}
	}
	return false
}
