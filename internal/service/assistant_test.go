package service

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"railchat/internal/config"
	"railchat/internal/logger"
	"railchat/internal/model"
)

func newTestAssistant(store *fakeStore) *Assistant {
	return NewAssistant(store, config.DefaultNLU(), time.Second, logger.Discard())
}

func TestAssistant_Respond(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		failStore    bool
		wantIntent   model.Intent
		wantEntities []string
		wantReply    string
	}{
		{
			name:         "reservation on a known route",
			query:        "Je veux réserver un billet de Paris à Lyon",
			wantIntent:   model.IntentReservation,
			wantEntities: []string{"paris", "lyon"},
			wantReply:    "TGV 6201",
		},
		{
			name:         "schedules between two stations",
			query:        "Quels sont les horaires entre Marseille et Lille ?",
			wantIntent:   model.IntentSchedule,
			wantEntities: []string{"marseille", "lille"},
			wantReply:    "06h10 → 11h35",
		},
		{
			name:         "greeting",
			query:        "Bonjour",
			wantIntent:   model.IntentUnknown,
			wantEntities: []string{},
			wantReply:    msgNotUnderstood,
		},
		{
			name:         "store down while loading stations",
			query:        "Je veux réserver un billet de Paris à Lyon",
			failStore:    true,
			wantIntent:   model.IntentReservation,
			wantEntities: []string{},
			wantReply:    "indiquez une gare de départ",
		},
		{
			name:         "station alone is treated as information",
			query:        "Paris",
			wantIntent:   model.IntentUnknown,
			wantEntities: []string{"paris"},
			wantReply:    "Gare de Paris",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.fail = tt.failStore
			assistant := newTestAssistant(store)

			resp := assistant.Respond(context.Background(), tt.query)
			if resp.Intent != tt.wantIntent {
				t.Errorf("Intent = %s, want %s", resp.Intent, tt.wantIntent)
			}
			if !reflect.DeepEqual(resp.Entities, tt.wantEntities) {
				t.Errorf("Entities = %v, want %v", resp.Entities, tt.wantEntities)
			}
			if !strings.Contains(resp.Reply, tt.wantReply) {
				t.Errorf("Reply = %q, want it to contain %q", resp.Reply, tt.wantReply)
			}
		})
	}
}

func TestAssistant_HelpBypassesPipeline(t *testing.T) {
	for _, query := range []string{"aide", "  Aide ", "HELP", "aide !"} {
		t.Run(query, func(t *testing.T) {
			store := newFakeStore()
			assistant := newTestAssistant(store)

			resp := assistant.Respond(context.Background(), query)
			if resp.Reply != HelpText {
				t.Errorf("Reply = %q, want help text", resp.Reply)
			}
			if n := store.callCount(); n != 0 {
				t.Errorf("store called %d times, want 0", n)
			}
		})
	}
}

func TestAssistant_StationsFetchedOnce(t *testing.T) {
	store := newFakeStore()
	assistant := newTestAssistant(store)

	for _, q := range []string{"de Paris à Lyon", "Marseille", "bonjour"} {
		assistant.Understand(context.Background(), q)
	}
	if n := store.calls["stations"]; n != 1 {
		t.Errorf("stations fetched %d times, want 1", n)
	}
}

func TestAssistant_Route(t *testing.T) {
	tests := []struct {
		name     string
		intent   model.Intent
		entities []string
		want     []string
		notWant  string
	}{
		{"reservation needs two stations", model.IntentReservation, []string{"paris"}, []string{"indiquez une gare de départ"}, ""},
		{"reservation without trains", model.IntentReservation, []string{"lyon", "paris"}, []string{"Aucun train trouvé de Lyon à Paris."}, ""},
		{"schedules need two stations", model.IntentSchedule, []string{}, []string{"horaires de Marseille à Lille"}, ""},
		{"schedules without trains", model.IntentSchedule, []string{"lyon", "paris"}, []string{"Aucun horaire trouvé de Lyon à Paris."}, ""},
		{"schedules of a route", model.IntentSchedule, []string{"paris", "lyon"}, []string{"07h00 → 08h56", "12h30 → 14h26"}, ""},
		{"information needs a station", model.IntentInformation, []string{}, []string{"Sur quelle gare"}, ""},
		{"information on a station", model.IntentInformation, []string{"marseille"}, []string{"Gare de Marseille : 2 train(s) au départ, 0 train(s) à l'arrivée.", "TGV Nord, TGV Sud"}, ""},
		{"information on two stations", model.IntentInformation, []string{"paris", "nice"}, []string{"Gare de Paris", "Gare de Nice : 0 train(s) au départ, 1 train(s) à l'arrivée."}, ""},
		{"listing everything", model.IntentListing, []string{}, []string{"3 train(s) :", "TGV 6835"}, ""},
		{"listing departures", model.IntentListing, []string{"marseille"}, []string{"2 train(s) au départ de Marseille"}, "TGV 6201"},
		{"listing a route", model.IntentListing, []string{"paris", "lyon"}, []string{"1 train(s) de Paris à Lyon", "TGV 6201 (TGV Sud) Paris → Lyon, 350 places"}, ""},
		{"price range", model.IntentPrice, []string{"paris", "lyon"}, []string{"de 35.00 € à 79.00 €"}, ""},
		{"single price", model.IntentPrice, []string{"marseille", "lille"}, []string{"TGV 5301 Marseille → Lille : 89.00 €"}, ""},
		{"no price", model.IntentPrice, []string{"nice"}, []string{"Aucun tarif disponible au départ de Nice."}, ""},
		{"every line", model.IntentLines, []string{}, []string{"TGV Nord (INOUI)", "TGV Sud (OUIGO)"}, ""},
		{"lines of a station", model.IntentLines, []string{"nice"}, []string{"Lignes desservant Nice", "TGV Sud"}, "TGV Nord"},
		{"lines of a route", model.IntentLines, []string{"marseille", "lille"}, []string{"TGV Nord"}, "TGV Sud"},
		{"unknown without station", model.IntentUnknown, []string{}, []string{msgNotUnderstood}, ""},
		{"unknown with station", model.IntentUnknown, []string{"lyon"}, []string{"Gare de Lyon"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assistant := newTestAssistant(newFakeStore())

			reply := assistant.Route(context.Background(), tt.intent, tt.entities)
			for _, want := range tt.want {
				if !strings.Contains(reply, want) {
					t.Errorf("reply %q does not contain %q", reply, want)
				}
			}
			if tt.notWant != "" && strings.Contains(reply, tt.notWant) {
				t.Errorf("reply %q contains %q", reply, tt.notWant)
			}
		})
	}
}

func TestAssistant_Route_StoreDown(t *testing.T) {
	intents := []model.Intent{
		model.IntentReservation, model.IntentSchedule, model.IntentInformation,
		model.IntentListing, model.IntentPrice, model.IntentLines,
	}

	for _, intent := range intents {
		t.Run(string(intent), func(t *testing.T) {
			store := newFakeStore()
			store.fail = true
			assistant := newTestAssistant(store)

			reply := assistant.Route(context.Background(), intent, []string{"paris", "lyon"})
			if reply != msgUnavailable {
				t.Errorf("reply = %q, want degraded reply", reply)
			}
		})
	}
}

func TestReservedLiterals(t *testing.T) {
	tests := []struct {
		input    string
		wantHelp bool
		wantExit bool
	}{
		{"aide", true, false},
		{"Help", true, false},
		{"quitter", false, true},
		{" EXIT ", false, true},
		{"aide-moi à réserver", false, false},
		{"je veux quitter paris", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsHelp(tt.input); got != tt.wantHelp {
				t.Errorf("IsHelp(%q) = %v, want %v", tt.input, got, tt.wantHelp)
			}
			if got := IsExit(tt.input); got != tt.wantExit {
				t.Errorf("IsExit(%q) = %v, want %v", tt.input, got, tt.wantExit)
			}
		})
	}
}

// sharedLinesStore hands out the same backing arrays on every call, like a read cache
type sharedLinesStore struct {
	*fakeStore
	departures []model.Line
	arrivals   []model.Line
}

func (s *sharedLinesStore) ListLines(ctx context.Context, filter model.TrainFilter) ([]model.Line, error) {
	if filter.DepartureLike != "" {
		return s.departures, nil
	}
	return s.arrivals, nil
}

func TestAssistant_StationLines_LeavesSharedSlicesAlone(t *testing.T) {
	departures := make([]model.Line, 1, 4)
	departures[0] = model.Line{ID: 1, Name: "TGV Nord"}
	store := &sharedLinesStore{
		fakeStore:  newFakeStore(),
		departures: departures,
		arrivals:   []model.Line{{ID: 2, Name: "TGV Sud"}, {ID: 1, Name: "TGV Nord"}},
	}
	assistant := NewAssistant(store, config.DefaultNLU(), time.Second, logger.Discard())

	lines, err := assistant.stationLines(context.Background(), "lille")
	if err != nil {
		t.Fatalf("stationLines() error = %v", err)
	}
	if len(lines) != 2 || lines[0].ID != 1 || lines[1].ID != 2 {
		t.Errorf("stationLines() = %+v, want lines 1 and 2", lines)
	}

	if spare := departures[:2][1]; spare != (model.Line{}) {
		t.Errorf("shared departures slice was written past its length: %+v", spare)
	}
}
