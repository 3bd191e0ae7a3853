// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletamer/server/auth"
	"github.com/tabletamer/server/middleware"
	"github.com/tabletamer/server/models"
	"github.com/tabletamer/server/store"
	"github.com/tabletamer/server/testutil"
)

// asUser stamps the authenticated identity onto a request the way
// middleware.RequireAuth would.
func asUser(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
	return r.WithContext(ctx)
}

func TestRegisterAndLogin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	h := NewAuthHandler(store.New(conn), auth.NewManager(cfg.JWTSecret))

	rec := httptest.NewRecorder()
	h.Register(rec, testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
		Email:       "pat@example.com",
		Password:    "hunter2hunter2",
		DisplayName: "Pat Planner",
	}, nil))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var reg models.AuthResponse
	testutil.DecodeJSON(t, rec, &reg)
	require.True(t, reg.Success)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "pat@example.com", reg.User.Email)
	assert.Empty(t, reg.User.PasswordHash)

	rec = httptest.NewRecorder()
	h.Login(rec, testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
		Email:    "pat@example.com",
		Password: "hunter2hunter2",
	}, nil))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var login models.AuthResponse
	testutil.DecodeJSON(t, rec, &login)
	require.True(t, login.Success)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	h := NewAuthHandler(store.New(conn), auth.NewManager(cfg.JWTSecret))

	rec := httptest.NewRecorder()
	h.Register(rec, testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
		Email:       "pat@example.com",
		Password:    "short",
		DisplayName: "Pat",
	}, nil))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp models.ErrorResponse
	testutil.DecodeJSON(t, rec, &resp)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "8 characters")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	h := NewAuthHandler(store.New(conn), auth.NewManager(cfg.JWTSecret))
	testutil.CreateTestUser(t, conn, cfg, "pat@example.com")

	rec := httptest.NewRecorder()
	h.Register(rec, testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
		Email:       "pat@example.com",
		Password:    "hunter2hunter2",
		DisplayName: "Imposter",
	}, nil))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp models.ErrorResponse
	testutil.DecodeJSON(t, rec, &resp)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "already exists")
}

func TestLoginWrongPassword(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	h := NewAuthHandler(store.New(conn), auth.NewManager(cfg.JWTSecret))
	testutil.CreateTestUser(t, conn, cfg, "pat@example.com")

	rec := httptest.NewRecorder()
	h.Login(rec, testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
		Email:    "pat@example.com",
		Password: "not-the-password",
	}, nil))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp models.ErrorResponse
	testutil.DecodeJSON(t, rec, &resp)
	assert.False(t, resp.Success)
	// Unknown email and wrong password are indistinguishable.
	assert.Equal(t, "Invalid email or password", resp.Error)
}
