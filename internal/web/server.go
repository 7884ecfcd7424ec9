// Package web exposes the JSON HTTP API: account signup/signin and
// authenticated vocabulary delivery.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pasquale/wortschatz/internal/auth"
	"github.com/pasquale/wortschatz/internal/domain"
	"github.com/pasquale/wortschatz/internal/storage"
	"github.com/pasquale/wortschatz/internal/vocab"
)

// Reloader re-runs the deck load; satisfied by decks.Loader.
type Reloader interface {
	Load(ctx context.Context) error
}

// Server holds the dependencies for the HTTP API.
type Server struct {
	store     *storage.DB
	vocab     *vocab.Service
	reloader  Reloader
	router    *http.ServeMux
	validate  *validator.Validate
	jwtSecret string
	jwtTTL    time.Duration
}

// NewServer creates and configures a new server.
func NewServer(store *storage.DB, vocabService *vocab.Service, reloader Reloader, jwtSecret string, jwtTTL time.Duration) *Server {
	s := &Server{
		store:     store,
		vocab:     vocabService,
		reloader:  reloader,
		router:    http.NewServeMux(),
		validate:  validator.New(),
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	s.router.HandleFunc("/api/auth/signup", s.handleSignup())
	s.router.HandleFunc("/api/auth/signin", s.handleSignin())
	s.router.HandleFunc("/api/vocabulary/new-words", s.requireUser(s.handleNewWords()))
	s.router.HandleFunc("/api/vocabulary/reload", s.requireUser(s.handleReload()))
}

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type signinRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenResponse struct {
	Token    string `json:"token"`
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// handleSignup registers a new learner.
func (s *Server) handleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(req); err != nil {
			http.Error(w, "Invalid signup request", http.StatusBadRequest)
			return
		}

		if taken, err := s.store.UsernameExists(r.Context(), req.Username); err != nil {
			s.internalError(w, "signup username check", err)
			return
		} else if taken {
			http.Error(w, "Username is already in use", http.StatusBadRequest)
			return
		}
		if taken, err := s.store.EmailExists(r.Context(), req.Email); err != nil {
			s.internalError(w, "signup email check", err)
			return
		} else if taken {
			http.Error(w, "Email is already in use", http.StatusBadRequest)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			s.internalError(w, "password hash", err)
			return
		}
		user, err := s.store.CreateUser(r.Context(), req.Username, req.Email, hash)
		if err != nil {
			s.internalError(w, "create user", err)
			return
		}

		writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Username: user.Username, Email: user.Email})
	}
}

// handleSignin verifies credentials and issues an auth token.
func (s *Server) handleSignin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req signinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(req); err != nil {
			http.Error(w, "Invalid signin request", http.StatusBadRequest)
			return
		}

		user, err := s.store.FindUserByUsername(r.Context(), req.Username)
		if err != nil {
			s.internalError(w, "signin lookup", err)
			return
		}
		if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
			http.Error(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}

		token, err := auth.GenerateToken(user.Username, s.jwtSecret, s.jwtTTL)
		if err != nil {
			s.internalError(w, "token mint", err)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{
			Token:    token,
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
	}
}

// handleNewWords serves the learner a batch of never-before-seen vocabulary.
func (s *Server) handleNewWords() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		user := userFrom(r)
		count := 10
		if v := r.URL.Query().Get("count"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				http.Error(w, "Invalid count", http.StatusBadRequest)
				return
			}
			count = n
		}

		words, err := s.vocab.NewWords(r.Context(), user.ID, count)
		if err != nil {
			slog.Error("Failed to select new words", "user", user.Username, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, words)
	}
}

// handleReload re-runs the deck load. A failed load keeps the previous
// catalog snapshot in place.
func (s *Server) handleReload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := s.reloader.Load(r.Context()); err != nil {
			slog.Error("Deck reload failed", "error", err)
			http.Error(w, "Deck reload failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
	}
}

type contextKey string

const userKey contextKey = "user"

// requireUser authenticates the bearer token and loads the learner before
// calling the wrapped handler.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "User not authenticated", http.StatusUnauthorized)
			return
		}
		username, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			slog.Warn("Rejected auth token", "error", err)
			http.Error(w, "User not authenticated", http.StatusUnauthorized)
			return
		}
		user, err := s.store.FindUserByUsername(r.Context(), username)
		if err != nil {
			s.internalError(w, "auth user lookup", err)
			return
		}
		if user == nil {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

func userFrom(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userKey).(*domain.User)
	return user
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	slog.Error("Request failed", "op", op, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
