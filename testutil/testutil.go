// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides shared helpers for handler and router tests:
// a throwaway SQLite database with the full schema, seed helpers for the
// domain objects, and request/response plumbing.
package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/tabletamer/server/auth"
	"github.com/tabletamer/server/cliparse"
	"github.com/tabletamer/server/db"
	"github.com/tabletamer/server/models"
	"github.com/tabletamer/server/store"
)

// SetupTestDB opens a fresh file-backed SQLite database with the full
// schema. A file (not :memory:) because the pool may open more than one
// connection, and each :memory: connection is its own database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "tabletamer_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// TestConfig returns a config suitable for tests. The LLM endpoint points
// at an unroutable host so a test that forgets to stub inference fails
// fast instead of calling out.
func TestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8090,
		DatabaseType: "sqlite",
		JWTSecret:    "test-jwt-secret",
		LLMAPIKey:    "test-llm-key",
		LLMAPIURL:    "http://127.0.0.1:0/v1",
		LLMModel:     "test-model",
	}
}

// CreateTestUser registers an account directly in the store and returns
// its ID plus a valid bearer token.
func CreateTestUser(t *testing.T, conn *sql.DB, cfg cliparse.Config, email string) (userID, token string) {
	t.Helper()

	s := store.New(conn)
	hash, err := auth.HashPassword("test-password")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	account := &models.Account{Email: email, PasswordHash: hash, DisplayName: "Test Planner"}
	if err := s.CreateAccount(context.Background(), account); err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	token, err = auth.NewManager(cfg.JWTSecret).Generate(account.ID, account.Email)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return account.ID, token
}

// CreateTestEvent seeds one event for the given user.
func CreateTestEvent(t *testing.T, conn *sql.DB, userID, name string) *models.Event {
	t.Helper()

	s := store.New(conn)
	event := &models.Event{Name: name, UserID: userID}
	if err := s.CreateEvent(context.Background(), event); err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}
	return event
}

// CreateTestGuest seeds one guest, optionally seated at a table.
func CreateTestGuest(t *testing.T, conn *sql.DB, eventID, userID, name string, tableID *string) *models.Guest {
	t.Helper()

	s := store.New(conn)
	guest := &models.Guest{FullName: name, EventID: eventID, UserID: userID, TableID: tableID}
	if err := s.CreateGuest(context.Background(), guest); err != nil {
		t.Fatalf("Failed to create test guest: %v", err)
	}
	return guest
}

// CreateTestTable seeds one seating table.
func CreateTestTable(t *testing.T, conn *sql.DB, eventID, userID, name string, capacity int) *models.Table {
	t.Helper()

	s := store.New(conn)
	table := &models.Table{Name: name, Capacity: capacity, Color: "#FF6B6B", EventID: eventID, UserID: userID}
	if err := s.CreateTable(context.Background(), table); err != nil {
		t.Fatalf("Failed to create test table: %v", err)
	}
	return table
}

// MakeRequest creates an HTTP test request with an optional JSON body.
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// AuthHeader builds the bearer header map for MakeRequest.
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// DecodeJSON unmarshals a recorded response body, failing the test on error.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
}

// AssertStatus fails the test when the recorded status differs.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("Expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
