package model

import (
	"errors"
	"time"
)

// ErrDuplicate is returned by stores when an insert violates a uniqueness constraint
var ErrDuplicate = errors.New("duplicate record")

// User represents a registered traveller
type User struct {
	ID           int64  `json:"id" db:"id"`
	LastName     string `json:"last_name" db:"last_name"`
	FirstName    string `json:"first_name" db:"first_name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// Ticket represents a booked seat on a train
type Ticket struct {
	ID      int64   `json:"id" db:"id"`
	UserID  int64   `json:"user_id" db:"user_id"`
	TrainID int64   `json:"train_id" db:"train_id"`
	Seat    int     `json:"seat" db:"seat"`
	Price   float64 `json:"price" db:"price"`
}

// TicketView is a ticket joined with its train, as shown to the traveller
type TicketView struct {
	ID        int64   `json:"id" db:"id"`
	Number    string  `json:"number" db:"number"`
	Departure string  `json:"departure" db:"departure"`
	Arrival   string  `json:"arrival" db:"arrival"`
	Seat      int     `json:"seat" db:"seat"`
	Price     float64 `json:"price" db:"price"`
}

// Session is the result of a successful login
type Session struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
