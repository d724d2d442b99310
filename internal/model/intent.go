package model

// Intent is the coarse goal classified from a user query
type Intent string

// Closed set of intents, plus the Unknown sentinel
const (
	IntentReservation Intent = "reservation"
	IntentSchedule    Intent = "horaires"
	IntentInformation Intent = "informations"
	IntentListing     Intent = "liste"
	IntentPrice       Intent = "prix"
	IntentLines       Intent = "lignes"
	IntentUnknown     Intent = "inconnu"
)

// IntentResult represents the outcome of running the NLU pipeline on one line
type IntentResult struct {
	Intent   Intent         `json:"intent"`
	Entities []string       `json:"entities"`
	Scores   map[Intent]int `json:"scores,omitempty"`
}
