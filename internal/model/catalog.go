package model

import "fmt"

// Station represents a known railway station
type Station struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Line represents a commercial rail line operated by a company
type Line struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Company string `json:"company" db:"company"`
}

// Train represents a train running between two stations on a line
type Train struct {
	ID        int64  `json:"id" db:"id"`
	Number    string `json:"number" db:"number"`
	Departure string `json:"departure" db:"departure"`
	Arrival   string `json:"arrival" db:"arrival"`
	Seats     int    `json:"seats" db:"seats"`
	LineID    int64  `json:"line_id" db:"line_id"`
	LineName  string `json:"line_name" db:"line_name"`
}

// Schedule is one timetable entry of a train. Times are HHMM integers (830 = 08h30).
type Schedule struct {
	ID            int64 `json:"id" db:"id"`
	TrainID       int64 `json:"train_id" db:"train_id"`
	DepartureTime int   `json:"departure_time" db:"departure_time"`
	ArrivalTime   int   `json:"arrival_time" db:"arrival_time"`
}

// Fare summarizes recorded ticket prices for a train
type Fare struct {
	TrainID   int64   `json:"train_id" db:"train_id"`
	Number    string  `json:"number" db:"number"`
	Departure string  `json:"departure" db:"departure"`
	Arrival   string  `json:"arrival" db:"arrival"`
	MinPrice  float64 `json:"min_price" db:"min_price"`
	MaxPrice  float64 `json:"max_price" db:"max_price"`
}

// TrainFilter restricts train reads by case-insensitive "contains" matching.
// Empty fields are ignored.
type TrainFilter struct {
	DepartureLike string `json:"departure_like,omitempty"`
	ArrivalLike   string `json:"arrival_like,omitempty"`
}

// IsEmpty reports whether the filter matches every train
func (f TrainFilter) IsEmpty() bool {
	return f.DepartureLike == "" && f.ArrivalLike == ""
}

// Key returns a stable cache key for the filter
func (f TrainFilter) Key() string {
	return fmt.Sprintf("%s|%s", f.DepartureLike, f.ArrivalLike)
}

// ScheduleFilter restricts schedule reads to one train
type ScheduleFilter struct {
	TrainID int64 `json:"train_id"`
}

// FormatClock renders an HHMM integer as "08h30"
func FormatClock(hhmm int) string {
	return fmt.Sprintf("%02dh%02d", hhmm/100, hhmm%100)
}
