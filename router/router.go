// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tabletamer/server/auth"
	"github.com/tabletamer/server/cliparse"
	"github.com/tabletamer/server/handlers"
	"github.com/tabletamer/server/llm"
	"github.com/tabletamer/server/middleware"
	"github.com/tabletamer/server/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	s := store.New(db)
	jwt := auth.NewManager(cfg.JWTSecret)
	llmClient := llm.NewClient(cfg.LLMAPIKey, cfg.LLMAPIURL, cfg.LLMModel)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(s, jwt)
	eventHandler := handlers.NewEventHandler(s)
	guestHandler := handlers.NewGuestHandler(s)
	tableHandler := handlers.NewTableHandler(s)
	assignmentHandler := handlers.NewAssignmentHandler(s)
	importHandler := handlers.NewImportHandler(s, llmClient)
	publicHandler := handlers.NewPublicHandler(s)
	settingsHandler := handlers.NewSettingsHandler(s)

	// Health check and metrics
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// shorthand: logging for public routes, logging+auth for private ones
	public := middleware.WithLogging
	private := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(jwt, h))
	}

	// Authentication
	mux.HandleFunc("POST /auth/register", public(authHandler.Register))
	mux.HandleFunc("POST /auth/login", public(authHandler.Login))

	// Events
	mux.HandleFunc("GET /events", private(eventHandler.ListEvents))
	mux.HandleFunc("POST /events", private(eventHandler.CreateEvent))
	mux.HandleFunc("GET /events/{id}", private(eventHandler.GetEvent))
	mux.HandleFunc("PATCH /events/{id}", private(eventHandler.UpdateEvent))
	mux.HandleFunc("DELETE /events/{id}", private(eventHandler.DeleteEvent))

	// Guests
	mux.HandleFunc("GET /guests", private(guestHandler.ListGuests))
	mux.HandleFunc("POST /guests", private(guestHandler.CreateGuest))
	mux.HandleFunc("DELETE /guests", private(guestHandler.DeleteGuestsByEvent))
	mux.HandleFunc("PATCH /guests/{id}", private(guestHandler.UpdateGuest))
	mux.HandleFunc("DELETE /guests/{id}", private(guestHandler.DeleteGuest))

	// Tables and seating
	mux.HandleFunc("GET /tables", private(tableHandler.GetTables))
	mux.HandleFunc("POST /tables", private(tableHandler.GenerateTables))
	mux.HandleFunc("PATCH /tables", private(tableHandler.AssignGuest))
	mux.HandleFunc("DELETE /tables/{id}", private(tableHandler.DeleteTable))
	mux.HandleFunc("POST /tables/auto-assign", private(tableHandler.AutoAssign))
	mux.HandleFunc("POST /assignments/batch", private(assignmentHandler.BatchAssign))

	// Spreadsheet import
	mux.HandleFunc("POST /import", private(importHandler.Import))
	mux.HandleFunc("POST /import/save", private(importHandler.SaveImport))

	// Settings
	mux.HandleFunc("GET /settings", private(settingsHandler.GetSettings))
	mux.HandleFunc("PUT /settings", private(settingsHandler.UpdateSettings))

	// Guest-facing lookup (no auth)
	mux.HandleFunc("GET /public/events/{id}", public(publicHandler.GetEvent))
	mux.HandleFunc("GET /public/events/{id}/guests", public(publicHandler.LookupGuest))
	mux.HandleFunc("GET /public/events/{id}/guests/suggest", public(publicHandler.SuggestGuests))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("table-tamer API v1"))
	})

	return mux
}
