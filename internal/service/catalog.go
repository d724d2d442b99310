package service

import (
	"context"

	"railchat/internal/model"
)

// CatalogStore is the read contract the assistant needs from persistence.
// Filters match case-insensitively on substrings.
type CatalogStore interface {
	ListStations(ctx context.Context) ([]model.Station, error)
	ListTrains(ctx context.Context, filter model.TrainFilter) ([]model.Train, error)
	ListSchedules(ctx context.Context, filter model.ScheduleFilter) ([]model.Schedule, error)
	ListLines(ctx context.Context, filter model.TrainFilter) ([]model.Line, error)
	ListFares(ctx context.Context, filter model.TrainFilter) ([]model.Fare, error)
}
