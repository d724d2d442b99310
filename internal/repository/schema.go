package repository

import (
	"context"
	"fmt"
)

// Migrate creates the catalog and account tables when they do not exist
func (r *Repository) Migrate(ctx context.Context) error {
	pk, realType := "INTEGER PRIMARY KEY AUTOINCREMENT", "REAL"
	if r.driver == DriverPostgres {
		pk, realType = "SERIAL PRIMARY KEY", "DOUBLE PRECISION"
	}

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
			id %s,
			last_name TEXT NOT NULL,
			first_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS stations (
			id %s,
			name TEXT NOT NULL
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS lines (
			id %s,
			name TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT ''
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS trains (
			id %s,
			number TEXT NOT NULL,
			line_id INTEGER REFERENCES lines(id),
			departure TEXT NOT NULL,
			arrival TEXT NOT NULL,
			seats INTEGER NOT NULL DEFAULT 0
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS schedules (
			id %s,
			train_id INTEGER NOT NULL REFERENCES trains(id),
			departure_time INTEGER NOT NULL,
			arrival_time INTEGER NOT NULL
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS tickets (
			id %s,
			user_id INTEGER REFERENCES users(id),
			train_id INTEGER NOT NULL REFERENCES trains(id),
			seat INTEGER NOT NULL,
			price %s NOT NULL DEFAULT 0
		)`, pk, realType),
		`CREATE UNIQUE INDEX IF NOT EXISTS tickets_train_seat_key ON tickets (train_id, seat)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

type seedTrain struct {
	number    string
	lineID    int64
	departure string
	arrival   string
	seats     int
}

var (
	seedStations = []string{
		"Paris", "Lyon", "Marseille", "Bordeaux", "Toulouse",
		"Nice", "Nantes", "Strasbourg", "Lille", "Montpellier",
	}

	seedLines = [][2]string{
		{"TGV Nord", "INOUI"},
		{"TGV Sud", "OUIGO"},
	}

	seedTrains = []seedTrain{
		{"TGV 6201", 2, "Paris", "Lyon", 350},
		{"TGV 6107", 2, "Lyon", "Marseille", 300},
		{"TGV 7061", 1, "Paris", "Lille", 280},
		{"TGV 8501", 2, "Paris", "Bordeaux", 320},
		{"TGV 5301", 1, "Marseille", "Lille", 250},
		{"TGV 6835", 2, "Marseille", "Nice", 200},
		{"TGV 8711", 2, "Bordeaux", "Toulouse", 210},
		{"TGV 2401", 1, "Paris", "Strasbourg", 300},
	}

	// train index (1-based), departure, arrival
	seedSchedules = [][3]int{
		{1, 700, 856}, {1, 1230, 1426}, {1, 1800, 1956},
		{2, 915, 1058}, {2, 1700, 1843},
		{3, 800, 902}, {3, 1900, 2002},
		{4, 650, 914}, {4, 1400, 1624},
		{5, 610, 1135},
		{6, 1005, 1245},
		{7, 1120, 1330},
		{8, 830, 1018}, {8, 2000, 2148},
	}

	// train index (1-based), seat, price
	seedTickets = [][3]float64{
		{1, 12, 50}, {1, 48, 35}, {1, 101, 79},
		{2, 7, 29}, {2, 64, 45},
		{3, 21, 25}, {3, 22, 55},
		{4, 3, 62},
		{5, 90, 89}, {5, 91, 119},
	}
)

// Seed replaces the catalog with a small deterministic data set.
// Accounts are kept; seeded tickets are not attached to any user.
func (r *Repository) Seed(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"tickets", "schedules", "trains", "lines", "stations"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	insertID := func(query string, args ...interface{}) (int64, error) {
		var id int64
		err := tx.GetContext(ctx, &id, tx.Rebind(query+" RETURNING id"), args...)
		return id, err
	}

	for _, name := range seedStations {
		if _, err := insertID(`INSERT INTO stations (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("failed to seed station %s: %w", name, err)
		}
	}

	lineIDs := make([]int64, len(seedLines))
	for i, l := range seedLines {
		id, err := insertID(`INSERT INTO lines (name, company) VALUES (?, ?)`, l[0], l[1])
		if err != nil {
			return fmt.Errorf("failed to seed line %s: %w", l[0], err)
		}
		lineIDs[i] = id
	}

	trainIDs := make([]int64, len(seedTrains))
	for i, t := range seedTrains {
		id, err := insertID(
			`INSERT INTO trains (number, line_id, departure, arrival, seats) VALUES (?, ?, ?, ?, ?)`,
			t.number, lineIDs[t.lineID-1], t.departure, t.arrival, t.seats,
		)
		if err != nil {
			return fmt.Errorf("failed to seed train %s: %w", t.number, err)
		}
		trainIDs[i] = id
	}

	for _, s := range seedSchedules {
		if _, err := insertID(
			`INSERT INTO schedules (train_id, departure_time, arrival_time) VALUES (?, ?, ?)`,
			trainIDs[s[0]-1], s[1], s[2],
		); err != nil {
			return fmt.Errorf("failed to seed schedule: %w", err)
		}
	}

	for _, k := range seedTickets {
		if _, err := insertID(
			`INSERT INTO tickets (train_id, seat, price) VALUES (?, ?, ?)`,
			trainIDs[int(k[0])-1], int(k[1]), k[2],
		); err != nil {
			return fmt.Errorf("failed to seed ticket: %w", err)
		}
	}

	return tx.Commit()
}
