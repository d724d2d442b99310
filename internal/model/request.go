package model

// ChatRequest represents one free-form message sent to the assistant
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse represents the assistant's answer to a message
type ChatResponse struct {
	Intent   Intent   `json:"intent"`
	Entities []string `json:"entities"`
	Reply    string   `json:"reply"`
	Took     int64    `json:"took_ms"` // Response time in milliseconds
}

// RegisterRequest represents a new account
type RegisterRequest struct {
	LastName  string `json:"last_name" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TicketRequest represents a seat reservation on a train
type TicketRequest struct {
	TrainID int64   `json:"train_id" binding:"required"`
	Seat    int     `json:"seat" binding:"required,min=1"`
	Price   float64 `json:"price" binding:"min=0"`
}

// StationsResponse lists the stations known to the assistant
type StationsResponse struct {
	Stations []string `json:"stations"`
	Total    int      `json:"total"`
}
