package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"railchat/internal/config"
	"railchat/internal/model"
	"railchat/internal/utils"
)

// Assistant runs the NLU pipeline on one line and routes it to a reply handler.
// It never returns an error: store failures become degraded replies.
type Assistant struct {
	store      CatalogStore
	stations   *StationCatalog
	extractor  *EntityExtractor
	classifier *IntentClassifier
	timeout    time.Duration
	log        logrus.FieldLogger
}

// NewAssistant creates an assistant over store. timeout bounds every store read.
func NewAssistant(store CatalogStore, cfg config.NLUConfig, timeout time.Duration, log logrus.FieldLogger) *Assistant {
	stations := NewStationCatalog(store, timeout, log)
	return &Assistant{
		store:      store,
		stations:   stations,
		extractor:  NewEntityExtractor(stations, utils.NewLevenshteinScorer().IgnoreWords(utils.IsCommonWord), cfg.FuzzyThreshold, cfg.MaxEntities),
		classifier: NewDefaultIntentClassifier(cfg),
		timeout:    timeout,
		log:        log,
	}
}

// Stations returns the known station names, lower-cased, in catalog order
func (a *Assistant) Stations(ctx context.Context) []string {
	return a.stations.Stations(ctx)
}

// StationsLoaded reports whether the station catalog has been fetched
func (a *Assistant) StationsLoaded() bool {
	return a.stations.Loaded()
}

// Understand extracts the intent and station entities of text
func (a *Assistant) Understand(ctx context.Context, text string) model.IntentResult {
	intent, scores := a.classifier.Score(text)
	entities := a.extractor.ExtractStations(ctx, text)

	a.log.WithFields(logrus.Fields{
		"intent":   intent,
		"entities": entities,
		"scores":   scores,
	}).Debug("query understood")

	return model.IntentResult{
		Intent:   intent,
		Entities: entities,
		Scores:   scores,
	}
}

// Respond answers one line of user input. Help requests bypass the pipeline.
func (a *Assistant) Respond(ctx context.Context, text string) model.ChatResponse {
	start := time.Now()

	if IsHelp(text) {
		return model.ChatResponse{
			Intent:   model.IntentUnknown,
			Entities: []string{},
			Reply:    HelpText,
			Took:     time.Since(start).Milliseconds(),
		}
	}

	result := a.Understand(ctx, text)
	reply := a.Route(ctx, result.Intent, result.Entities)

	return model.ChatResponse{
		Intent:   result.Intent,
		Entities: result.Entities,
		Reply:    reply,
		Took:     time.Since(start).Milliseconds(),
	}
}

// Route dispatches an understood query to its reply handler
func (a *Assistant) Route(ctx context.Context, intent model.Intent, entities []string) string {
	switch intent {
	case model.IntentReservation:
		return a.replyReservation(ctx, entities)
	case model.IntentSchedule:
		return a.replySchedules(ctx, entities)
	case model.IntentInformation:
		return a.replyInformation(ctx, entities)
	case model.IntentListing:
		return a.replyListing(ctx, entities)
	case model.IntentPrice:
		return a.replyPrices(ctx, entities)
	case model.IntentLines:
		return a.replyLines(ctx, entities)
	}

	// Unknown intent: a recognized station is enough to talk about it
	if len(entities) > 0 {
		return a.replyInformation(ctx, entities)
	}
	return msgNotUnderstood
}

// IsHelp reports whether text asks for the help message
func IsHelp(text string) bool {
	switch utils.Normalize(text) {
	case "aide", "help":
		return true
	}
	return false
}

// IsExit reports whether text ends an interactive session
func IsExit(text string) bool {
	switch utils.Normalize(text) {
	case "quitter", "exit":
		return true
	}
	return false
}

func (a *Assistant) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

// degraded logs a store failure and returns the reply shown instead
func (a *Assistant) degraded(err error, intent model.Intent, entities []string) string {
	a.log.WithError(err).WithFields(logrus.Fields{
		"intent":   intent,
		"entities": entities,
	}).Warn("catalog store unavailable")
	return msgUnavailable
}
