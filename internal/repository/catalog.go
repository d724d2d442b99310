package repository

import (
	"context"
	"fmt"
	"strings"

	"railchat/internal/model"
)

// ListStations returns every station in insertion order
func (r *Repository) ListStations(ctx context.Context) ([]model.Station, error) {
	var stations []model.Station
	err := r.db.SelectContext(ctx, &stations, `SELECT id, name FROM stations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	return stations, nil
}

// ListTrains returns trains whose departure and arrival contain the filter values
func (r *Repository) ListTrains(ctx context.Context, filter model.TrainFilter) ([]model.Train, error) {
	where, args := trainWhere(filter)
	query := r.db.Rebind(fmt.Sprintf(`
		SELECT
			t.id, t.number, t.departure, t.arrival, t.seats, COALESCE(t.line_id, 0) AS line_id,
			COALESCE(l.name, '') AS line_name
		FROM trains t
		LEFT JOIN lines l ON l.id = t.line_id
		WHERE %s
		ORDER BY t.id
	`, where))

	var trains []model.Train
	if err := r.db.SelectContext(ctx, &trains, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list trains: %w", err)
	}
	return trains, nil
}

// ListSchedules returns the timetable of one train, earliest departure first
func (r *Repository) ListSchedules(ctx context.Context, filter model.ScheduleFilter) ([]model.Schedule, error) {
	query := r.db.Rebind(`
		SELECT id, train_id, departure_time, arrival_time
		FROM schedules
		WHERE train_id = ?
		ORDER BY departure_time
	`)

	var schedules []model.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, filter.TrainID); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// ListLines returns the lines running at least one train matching the filter.
// An empty filter returns every line.
func (r *Repository) ListLines(ctx context.Context, filter model.TrainFilter) ([]model.Line, error) {
	var (
		query string
		args  []interface{}
	)

	if filter.IsEmpty() {
		query = `SELECT id, name, company FROM lines ORDER BY id`
	} else {
		var where string
		where, args = trainWhere(filter)
		query = r.db.Rebind(fmt.Sprintf(`
			SELECT DISTINCT l.id, l.name, l.company
			FROM lines l
			JOIN trains t ON t.line_id = l.id
			WHERE %s
			ORDER BY l.id
		`, where))
	}

	var lines []model.Line
	if err := r.db.SelectContext(ctx, &lines, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list lines: %w", err)
	}
	return lines, nil
}

// ListFares returns the lowest and highest recorded ticket price per matching train
func (r *Repository) ListFares(ctx context.Context, filter model.TrainFilter) ([]model.Fare, error) {
	where, args := trainWhere(filter)
	query := r.db.Rebind(fmt.Sprintf(`
		SELECT
			t.id AS train_id, t.number, t.departure, t.arrival,
			MIN(k.price) AS min_price, MAX(k.price) AS max_price
		FROM trains t
		JOIN tickets k ON k.train_id = t.id
		WHERE %s
		GROUP BY t.id, t.number, t.departure, t.arrival
		ORDER BY t.id
	`, where))

	var fares []model.Fare
	if err := r.db.SelectContext(ctx, &fares, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list fares: %w", err)
	}
	return fares, nil
}

// trainWhere builds the WHERE clause for a train filter using "?" placeholders
func trainWhere(filter model.TrainFilter) (string, []interface{}) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}

	if filter.DepartureLike != "" {
		whereClauses = append(whereClauses, "LOWER(t.departure) LIKE ?")
		args = append(args, likePattern(filter.DepartureLike))
	}
	if filter.ArrivalLike != "" {
		whereClauses = append(whereClauses, "LOWER(t.arrival) LIKE ?")
		args = append(args, likePattern(filter.ArrivalLike))
	}

	return strings.Join(whereClauses, " AND "), args
}
