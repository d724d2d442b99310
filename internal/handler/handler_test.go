package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"railchat/internal/config"
	"railchat/internal/logger"
	"railchat/internal/model"
	"railchat/internal/repository"
	"railchat/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repository.NewRepository(repository.DriverSQLite, ":memory:", 1, 1)
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	ctx := context.Background()
	if err := repo.Migrate(ctx); err != nil {
		t.Fatal(err)
	}
	if err := repo.Seed(ctx); err != nil {
		t.Fatal(err)
	}

	log := logger.Discard()
	authCfg := config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour, BcryptCost: bcrypt.MinCost}

	return NewRouter(RouterConfig{
		Assistant:        service.NewAssistant(repo, config.DefaultNLU(), time.Second, log),
		Auth:             service.NewAuthService(repo, authCfg, log),
		Log:              log,
		AllowedOrigins:   "*",
		MaxMessageLength: 80,
		Build:            BuildInfo{Version: "test"},
	})
}

func doJSON(router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatHandler_Chat(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantIntent model.Intent
		wantReply  string
	}{
		{
			name:       "reservation",
			body:       gin.H{"message": "Je veux réserver un billet de Paris à Lyon"},
			wantStatus: http.StatusOK,
			wantIntent: model.IntentReservation,
			wantReply:  "TGV 6201",
		},
		{
			name:       "prices",
			body:       gin.H{"message": "Combien coûte un trajet de Paris à Lyon ?"},
			wantStatus: http.StatusOK,
			wantIntent: model.IntentPrice,
			wantReply:  "de 35.00 € à 79.00 €",
		},
		{
			name:       "help",
			body:       gin.H{"message": "aide"},
			wantStatus: http.StatusOK,
			wantIntent: model.IntentUnknown,
			wantReply:  "quitter",
		},
		{
			name:       "missing message",
			body:       gin.H{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "message too long",
			body:       gin.H{"message": strings.Repeat("a", 81)},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/v1/chat", tt.body, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp model.ChatResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Intent != tt.wantIntent {
				t.Errorf("intent = %s, want %s", resp.Intent, tt.wantIntent)
			}
			if !strings.Contains(resp.Reply, tt.wantReply) {
				t.Errorf("reply = %q, want it to contain %q", resp.Reply, tt.wantReply)
			}
		})
	}
}

func TestChatHandler_Stations(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/stations", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp model.StationsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 10 || resp.Stations[0] != "paris" {
		t.Errorf("stations = %+v", resp)
	}
}

func TestAuthAndTicketsFlow(t *testing.T) {
	router := newTestRouter(t)

	register := gin.H{"last_name": "Martin", "first_name": "Alice", "email": "alice@example.com", "password": "s3cret!"}
	if w := doJSON(router, http.MethodPost, "/api/v1/auth/register", register, ""); w.Code != http.StatusCreated {
		t.Fatalf("register status = %d (%s)", w.Code, w.Body.String())
	}
	if w := doJSON(router, http.MethodPost, "/api/v1/auth/register", register, ""); w.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", w.Code)
	}

	if w := doJSON(router, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "alice@example.com", "password": "wrong"}, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", w.Code)
	}

	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "alice@example.com", "password": "s3cret!"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d (%s)", w.Code, w.Body.String())
	}
	var session model.Session
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil || session.Token == "" {
		t.Fatalf("session = %+v, %v", session, err)
	}

	if w := doJSON(router, http.MethodGet, "/api/v1/me", nil, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous /me status = %d, want 401", w.Code)
	}
	if w := doJSON(router, http.MethodGet, "/api/v1/me", nil, "garbage"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token /me status = %d, want 401", w.Code)
	}

	w = doJSON(router, http.MethodGet, "/api/v1/me", nil, session.Token)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "alice@example.com") {
		t.Errorf("/me = %d %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("/me leaks the password hash")
	}

	tickets := []struct {
		name       string
		body       gin.H
		wantStatus int
	}{
		{"free seat", gin.H{"train_id": 1, "seat": 5, "price": 42}, http.StatusCreated},
		{"seeded seat", gin.H{"train_id": 1, "seat": 12, "price": 42}, http.StatusConflict},
		{"unknown train", gin.H{"train_id": 999, "seat": 1}, http.StatusNotFound},
		{"seat beyond capacity", gin.H{"train_id": 1, "seat": 1000}, http.StatusBadRequest},
		{"missing seat", gin.H{"train_id": 1}, http.StatusBadRequest},
	}
	for _, tt := range tickets {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/v1/tickets", tt.body, session.Token)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}

	w = doJSON(router, http.MethodGet, "/api/v1/tickets", nil, session.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("list tickets status = %d", w.Code)
	}
	var list struct {
		Tickets []model.TicketView `json:"tickets"`
		Total   int                `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Total != 1 || list.Tickets[0].Number != "TGV 6201" {
		t.Errorf("tickets = %+v", list)
	}
}

func TestRouter_Misc(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/health", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("/health = %d %s", w.Code, w.Body.String())
	}
	if _, err := uuid.Parse(w.Header().Get(requestIDHeader)); err != nil {
		t.Errorf("request id header = %q", w.Header().Get(requestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	id := uuid.NewString()
	req.Header.Set(requestIDHeader, id)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get(requestIDHeader) != id {
		t.Errorf("request id not propagated: %q", rec.Header().Get(requestIDHeader))
	}

	if w := doJSON(router, http.MethodGet, "/api/v1/nowhere", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown API route status = %d, want 404", w.Code)
	}
}
