package service

import (
	"strings"

	"railchat/internal/config"
	"railchat/internal/model"
	"railchat/internal/utils"
)

type compiledRule struct {
	IntentRule
	stems []string
}

// IntentClassifier scores a query against an ordered rule table and picks the best intent
type IntentClassifier struct {
	rules   []compiledRule
	stemmer utils.Stemmer

	substringWeight int
	tokenWeight     int
	stemWeight      int
}

// NewIntentClassifier creates a classifier over rules. Trigger stems are computed once.
func NewIntentClassifier(rules []IntentRule, stemmer utils.Stemmer, cfg config.NLUConfig) *IntentClassifier {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		stems := make([]string, len(rule.Triggers))
		for i, trigger := range rule.Triggers {
			stems[i] = stemmer.Stem(trigger)
		}
		compiled = append(compiled, compiledRule{IntentRule: rule, stems: stems})
	}

	return &IntentClassifier{
		rules:           compiled,
		stemmer:         stemmer,
		substringWeight: cfg.SubstringWeight,
		tokenWeight:     cfg.TokenWeight,
		stemWeight:      cfg.StemWeight,
	}
}

// NewDefaultIntentClassifier creates a classifier over the French rule table
func NewDefaultIntentClassifier(cfg config.NLUConfig) *IntentClassifier {
	return NewIntentClassifier(DefaultIntentTable(cfg), utils.NewSnowballStemmer(cfg.Language), cfg)
}

// Classify returns the intent of text, or IntentUnknown when nothing scores
func (c *IntentClassifier) Classify(text string) model.Intent {
	intent, _ := c.Score(text)
	return intent
}

// Score returns the winning intent together with the score of every rule.
// Only a strictly greater score replaces the current best, so earlier rules win ties.
func (c *IntentClassifier) Score(text string) (model.Intent, map[model.Intent]int) {
	normalized := utils.Normalize(text)
	tokens := utils.Tokenize(normalized)
	tokenStems := make([]string, len(tokens))
	for i, tok := range tokens {
		tokenStems[i] = c.stemmer.Stem(tok)
	}

	scores := make(map[model.Intent]int, len(c.rules))
	best, bestScore := model.IntentUnknown, 0
	for _, rule := range c.rules {
		score := c.scoreRule(rule, normalized, tokens, tokenStems)
		scores[rule.Intent] = score
		if score > bestScore {
			best, bestScore = rule.Intent, score
		}
	}

	return best, scores
}

func (c *IntentClassifier) scoreRule(rule compiledRule, normalized string, tokens, tokenStems []string) int {
	score := 0
	for i, trigger := range rule.Triggers {
		if trigger == "" {
			continue
		}
		if strings.Contains(normalized, trigger) {
			score += c.substringWeight
		}
		for j, tok := range tokens {
			if strings.Contains(tok, trigger) {
				score += c.tokenWeight
			}
			if tokenStems[j] == rule.stems[i] {
				score += c.stemWeight
			}
		}
	}

	for _, bonus := range rule.Bonuses {
		if bonus.Match(normalized, tokens) {
			score += bonus.Points
		}
	}
	return score
}
