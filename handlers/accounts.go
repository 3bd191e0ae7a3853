// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tabletamer/server/auth"
	"github.com/tabletamer/server/middleware"
	"github.com/tabletamer/server/models"
	"github.com/tabletamer/server/store"
)

type AuthHandler struct {
	store *store.Store
	jwt   *auth.Manager
}

func NewAuthHandler(s *store.Store, jwt *auth.Manager) *AuthHandler {
	return &AuthHandler{store: s, jwt: jwt}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.FailResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		middleware.Fail(w, "A valid email is required")
		return
	}
	if req.DisplayName == "" {
		middleware.Fail(w, "displayName is required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrWeakPassword) {
		middleware.Fail(w, "Password must be at least 8 characters")
		return
	}
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	if _, err := h.store.GetAccountByEmail(r.Context(), email); err == nil {
		middleware.Fail(w, "An account with this email already exists")
		return
	}

	account := &models.Account{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  req.DisplayName,
	}
	if err := h.store.CreateAccount(r.Context(), account); err != nil {
		slog.Error("failed to create account", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := h.jwt.Generate(account.ID, account.Email)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	slog.Info("account registered", "user_id", account.ID)
	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		Success: true,
		Token:   token,
		User:    *account,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.FailResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	account, err := h.store.GetAccountByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		middleware.Fail(w, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to query account", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(account.PasswordHash, req.Password); err != nil {
		middleware.Fail(w, "Invalid email or password")
		return
	}

	token, err := h.jwt.Generate(account.ID, account.Email)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "user_id", account.ID)
	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		Success: true,
		Token:   token,
		User:    *account,
	})
}
