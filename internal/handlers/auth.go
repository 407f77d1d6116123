package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/crucial707/newsdesk/internal/auth"
	"github.com/crucial707/newsdesk/internal/metrics"
	"github.com/crucial707/newsdesk/internal/middleware"
	"github.com/crucial707/newsdesk/internal/models"
	"github.com/crucial707/newsdesk/internal/repo"
	"github.com/crucial707/newsdesk/internal/validation"
)

const (
	msgEmailTaken         = "User with this email already exists"
	msgInvalidCredentials = "Invalid email or password"
)

// UserStore is the subset of repo.UserRepo the auth handlers need.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, email, passwordHash string) (int, error)
}

// TokenIssuer signs bearer tokens for a user id.
type TokenIssuer interface {
	Issue(userID int) (string, error)
}

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users  UserStore
	Tokens TokenIssuer
}

// ==========================
// Register
// ==========================

// Register expects a validation.RegisterRequest from middleware.ValidateBody.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	input, ok := middleware.Body[validation.RegisterRequest](r.Context())
	if !ok {
		internalError(w, r, "Failed to register user", errMissingBody)
		return
	}

	_, err := h.Users.GetByEmail(r.Context(), input.Email)
	switch {
	case err == nil:
		metrics.RecordAuth(metrics.ActionRegister, metrics.ResultDuplicate)
		JSONError(w, msgEmailTaken, http.StatusBadRequest)
		return
	case !errors.Is(err, repo.ErrNotFound):
		metrics.RecordAuth(metrics.ActionRegister, metrics.ResultError)
		internalError(w, r, "Failed to register user", err)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		metrics.RecordAuth(metrics.ActionRegister, metrics.ResultError)
		internalError(w, r, "Failed to register user", fmt.Errorf("hash password: %w", err))
		return
	}

	id, err := h.Users.Create(r.Context(), input.Email, hash)
	if err != nil {
		// A concurrent registration can slip past the lookup; the unique
		// constraint on users.email catches it here.
		if errors.Is(err, repo.ErrEmailTaken) {
			metrics.RecordAuth(metrics.ActionRegister, metrics.ResultDuplicate)
			JSONError(w, msgEmailTaken, http.StatusBadRequest)
			return
		}
		metrics.RecordAuth(metrics.ActionRegister, metrics.ResultError)
		internalError(w, r, "Failed to register user", err)
		return
	}

	metrics.RecordAuth(metrics.ActionRegister, metrics.ResultSuccess)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user": models.UserResponse{
			ID:        id,
			Email:     input.Email,
			CreatedAt: time.Now(),
		},
	})
}

// ==========================
// Login
// ==========================

// Login answers unknown emails and wrong passwords with the same 401 body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	input, ok := middleware.Body[validation.LoginRequest](r.Context())
	if !ok {
		internalError(w, r, "Failed to log in", errMissingBody)
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), input.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			metrics.RecordAuth(metrics.ActionLogin, metrics.ResultRejected)
			JSONError(w, msgInvalidCredentials, http.StatusUnauthorized)
			return
		}
		metrics.RecordAuth(metrics.ActionLogin, metrics.ResultError)
		internalError(w, r, "Failed to log in", err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		metrics.RecordAuth(metrics.ActionLogin, metrics.ResultRejected)
		JSONError(w, msgInvalidCredentials, http.StatusUnauthorized)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		metrics.RecordAuth(metrics.ActionLogin, metrics.ResultError)
		internalError(w, r, "Failed to log in", fmt.Errorf("issue token: %w", err))
		return
	}

	metrics.RecordAuth(metrics.ActionLogin, metrics.ResultSuccess)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    user.Response(),
		"token":   token,
	})
}
