package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"railchat/internal/config"
	"railchat/internal/model"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrTrainNotFound      = errors.New("train not found")
	ErrSeatTaken          = errors.New("seat already reserved")
	ErrInvalidSeat        = errors.New("seat does not exist on this train")
	ErrAuthDisabled       = errors.New("authentication is not configured")
)

// AccountStore is the persistence contract for accounts and tickets.
// CreateUser and CreateTicket return model.ErrDuplicate when the email or
// the (train, seat) pair already exists.
type AccountStore interface {
	CreateUser(ctx context.Context, user *model.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetTrainByID(ctx context.Context, id int64) (*model.Train, error)
	SeatTaken(ctx context.Context, trainID int64, seat int) (bool, error)
	CreateTicket(ctx context.Context, ticket *model.Ticket) (int64, error)
	ListTicketsByUser(ctx context.Context, userID int64) ([]model.TicketView, error)
}

// AuthService handles accounts, bearer tokens and ticket reservations
type AuthService struct {
	store  AccountStore
	secret []byte
	ttl    time.Duration
	cost   int
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewAuthService creates an auth service. An empty secret disables login.
func NewAuthService(store AccountStore, cfg config.AuthConfig, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		store:  store,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		cost:   cfg.BcryptCost,
		log:    log,
		now:    time.Now,
	}
}

// Register creates an account with a bcrypt-hashed password
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		LastName:     strings.TrimSpace(req.LastName),
		FirstName:    strings.TrimSpace(req.FirstName),
		Email:        email,
		PasswordHash: string(hash),
	}
	id, err := s.store.CreateUser(ctx, user)
	if err != nil {
		// A concurrent registration won the race past the lookup above
		if errors.Is(err, model.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id

	s.log.WithField("user_id", id).Info("user registered")
	return user, nil
}

// Login checks credentials and issues a signed HS256 token
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Session, error) {
	if len(s.secret) == 0 {
		return nil, ErrAuthDisabled
	}

	user, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &model.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyToken returns the user id carried by a valid token
func (s *AuthService) VerifyToken(token string) (int64, error) {
	if len(s.secret) == 0 {
		return 0, ErrAuthDisabled
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// Profile returns the account of userID
func (s *AuthService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ReserveTicket books seat on trainID for userID
func (s *AuthService) ReserveTicket(ctx context.Context, userID int64, req model.TicketRequest) (*model.Ticket, error) {
	train, err := s.store.GetTrainByID(ctx, req.TrainID)
	if err != nil {
		return nil, fmt.Errorf("failed to load train: %w", err)
	}
	if train == nil {
		return nil, ErrTrainNotFound
	}
	if train.Seats > 0 && req.Seat > train.Seats {
		return nil, ErrInvalidSeat
	}

	taken, err := s.store.SeatTaken(ctx, req.TrainID, req.Seat)
	if err != nil {
		return nil, fmt.Errorf("failed to check seat: %w", err)
	}
	if taken {
		return nil, ErrSeatTaken
	}

	ticket := &model.Ticket{
		UserID:  userID,
		TrainID: req.TrainID,
		Seat:    req.Seat,
		Price:   req.Price,
	}
	id, err := s.store.CreateTicket(ctx, ticket)
	if err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, ErrSeatTaken
		}
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	ticket.ID = id

	s.log.WithFields(logrus.Fields{
		"user_id":  userID,
		"train_id": req.TrainID,
		"seat":     req.Seat,
	}).Info("ticket reserved")
	return ticket, nil
}

// ListTickets returns the tickets booked by userID
func (s *AuthService) ListTickets(ctx context.Context, userID int64) ([]model.TicketView, error) {
	tickets, err := s.store.ListTicketsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	if tickets == nil {
		tickets = []model.TicketView{}
	}
	return tickets, nil
}
