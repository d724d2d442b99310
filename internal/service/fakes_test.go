package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"railchat/internal/model"
)

var errStoreDown = errors.New("store down")

// fakeStore is an in-memory CatalogStore over a small fixed network
type fakeStore struct {
	mu    sync.Mutex
	calls map[string]int
	fail  bool

	stations  []model.Station
	lines     []model.Line
	trains    []model.Train
	schedules []model.Schedule
	fares     map[int64][2]float64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		calls: map[string]int{},
		stations: []model.Station{
			{ID: 1, Name: "Paris"}, {ID: 2, Name: "Lyon"}, {ID: 3, Name: "Marseille"},
			{ID: 4, Name: "Bordeaux"}, {ID: 5, Name: "Nice"}, {ID: 6, Name: "Lille"},
		},
		lines: []model.Line{
			{ID: 1, Name: "TGV Nord", Company: "INOUI"},
			{ID: 2, Name: "TGV Sud", Company: "OUIGO"},
		},
		trains: []model.Train{
			{ID: 1, Number: "TGV 6201", Departure: "Paris", Arrival: "Lyon", Seats: 350, LineID: 2, LineName: "TGV Sud"},
			{ID: 2, Number: "TGV 5301", Departure: "Marseille", Arrival: "Lille", Seats: 250, LineID: 1, LineName: "TGV Nord"},
			{ID: 3, Number: "TGV 6835", Departure: "Marseille", Arrival: "Nice", Seats: 200, LineID: 2, LineName: "TGV Sud"},
		},
		schedules: []model.Schedule{
			{ID: 1, TrainID: 1, DepartureTime: 700, ArrivalTime: 856},
			{ID: 2, TrainID: 1, DepartureTime: 1230, ArrivalTime: 1426},
			{ID: 3, TrainID: 2, DepartureTime: 610, ArrivalTime: 1135},
		},
		fares: map[int64][2]float64{
			1: {35, 79},
			2: {89, 89},
		},
	}
}

func (s *fakeStore) record(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[name]++
	if s.fail {
		return errStoreDown
	}
	return nil
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func matches(t model.Train, f model.TrainFilter) bool {
	contains := func(field, like string) bool {
		return like == "" || strings.Contains(strings.ToLower(field), strings.ToLower(like))
	}
	return contains(t.Departure, f.DepartureLike) && contains(t.Arrival, f.ArrivalLike)
}

func (s *fakeStore) ListStations(ctx context.Context) ([]model.Station, error) {
	if err := s.record("stations"); err != nil {
		return nil, err
	}
	return s.stations, nil
}

func (s *fakeStore) ListTrains(ctx context.Context, filter model.TrainFilter) ([]model.Train, error) {
	if err := s.record("trains"); err != nil {
		return nil, err
	}
	out := []model.Train{}
	for _, t := range s.trains {
		if matches(t, filter) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeStore) ListSchedules(ctx context.Context, filter model.ScheduleFilter) ([]model.Schedule, error) {
	if err := s.record("schedules"); err != nil {
		return nil, err
	}
	out := []model.Schedule{}
	for _, sc := range s.schedules {
		if sc.TrainID == filter.TrainID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s *fakeStore) ListLines(ctx context.Context, filter model.TrainFilter) ([]model.Line, error) {
	if err := s.record("lines"); err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return s.lines, nil
	}
	used := map[int64]bool{}
	for _, t := range s.trains {
		if matches(t, filter) {
			used[t.LineID] = true
		}
	}
	out := []model.Line{}
	for _, l := range s.lines {
		if used[l.ID] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeStore) ListFares(ctx context.Context, filter model.TrainFilter) ([]model.Fare, error) {
	if err := s.record("fares"); err != nil {
		return nil, err
	}
	out := []model.Fare{}
	for _, t := range s.trains {
		price, ok := s.fares[t.ID]
		if !ok || !matches(t, filter) {
			continue
		}
		out = append(out, model.Fare{
			TrainID: t.ID, Number: t.Number, Departure: t.Departure, Arrival: t.Arrival,
			MinPrice: price[0], MaxPrice: price[1],
		})
	}
	return out, nil
}

// staticStations is a StationSource over a fixed list
type staticStations []string

func (s staticStations) Stations(ctx context.Context) []string {
	return s
}

// identityStemmer leaves tokens unchanged
type identityStemmer struct{}

func (identityStemmer) Stem(token string) string {
	return token
}
