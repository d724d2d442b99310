package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"railchat/internal/model"
)

// CreateUser inserts a user and returns its ID
func (r *Repository) CreateUser(ctx context.Context, user *model.User) (int64, error) {
	query := r.db.Rebind(`
		INSERT INTO users (last_name, first_name, email, password_hash)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)

	var id int64
	err := r.db.GetContext(ctx, &id, query, user.LastName, user.FirstName, user.Email, user.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("failed to create user: %w", model.ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUserByEmail retrieves a user by email, or nil when none exists
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, `SELECT id, last_name, first_name, email, password_hash FROM users WHERE email = ?`, email)
}

// GetUserByID retrieves a user by ID, or nil when none exists
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getUser(ctx, `SELECT id, last_name, first_name, email, password_hash FROM users WHERE id = ?`, id)
}

func (r *Repository) getUser(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(query), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetTrainByID retrieves a train by ID, or nil when none exists
func (r *Repository) GetTrainByID(ctx context.Context, id int64) (*model.Train, error) {
	query := r.db.Rebind(`
		SELECT
			t.id, t.number, t.departure, t.arrival, t.seats, COALESCE(t.line_id, 0) AS line_id,
			COALESCE(l.name, '') AS line_name
		FROM trains t
		LEFT JOIN lines l ON l.id = t.line_id
		WHERE t.id = ?
	`)

	var train model.Train
	if err := r.db.GetContext(ctx, &train, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get train: %w", err)
	}
	return &train, nil
}

// CreateTicket inserts a ticket and returns its ID
func (r *Repository) CreateTicket(ctx context.Context, ticket *model.Ticket) (int64, error) {
	query := r.db.Rebind(`
		INSERT INTO tickets (user_id, train_id, seat, price)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)

	var id int64
	err := r.db.GetContext(ctx, &id, query, ticket.UserID, ticket.TrainID, ticket.Seat, ticket.Price)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("failed to create ticket: %w", model.ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to create ticket: %w", err)
	}
	return id, nil
}

// SeatTaken reports whether a seat on a train is already booked
func (r *Repository) SeatTaken(ctx context.Context, trainID int64, seat int) (bool, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM tickets WHERE train_id = ? AND seat = ?`)

	var count int
	if err := r.db.GetContext(ctx, &count, query, trainID, seat); err != nil {
		return false, fmt.Errorf("failed to check seat: %w", err)
	}
	return count > 0, nil
}

// ListTicketsByUser returns a user's tickets joined with their trains
func (r *Repository) ListTicketsByUser(ctx context.Context, userID int64) ([]model.TicketView, error) {
	query := r.db.Rebind(`
		SELECT k.id, t.number, t.departure, t.arrival, k.seat, k.price
		FROM tickets k
		JOIN trains t ON t.id = k.train_id
		WHERE k.user_id = ?
		ORDER BY k.id
	`)

	var tickets []model.TicketView
	if err := r.db.SelectContext(ctx, &tickets, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

// isUniqueViolation reports whether err comes from a UNIQUE constraint of either driver
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// Extended result codes disabled
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}
