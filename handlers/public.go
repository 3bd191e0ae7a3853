// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tabletamer/server/middleware"
	"github.com/tabletamer/server/models"
	"github.com/tabletamer/server/store"
)

// suggestLimit caps name suggestions on the public lookup page.
const suggestLimit = 10

// PublicHandler serves the unauthenticated guest-facing lookup endpoints.
// Responses never include owner IDs or guest contact details.
type PublicHandler struct {
	store *store.Store
}

func NewPublicHandler(s *store.Store) *PublicHandler {
	return &PublicHandler{store: s}
}

func (h *PublicHandler) getEvent(w http.ResponseWriter, r *http.Request) *models.Event {
	event, err := h.store.GetEvent(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.Fail(w, "Event not found")
		return nil
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return nil
	}
	return event
}

// GetEvent handles GET /public/events/{id}
func (h *PublicHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event := h.getEvent(w, r)
	if event == nil {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.PublicEventResponse{
		Success: true,
		Event: models.PublicEvent{
			ID:          event.ID,
			Name:        event.Name,
			Description: event.Description,
			Theme:       event.Theme,
		},
	})
}

// LookupGuest handles GET /public/events/{id}/guests?name=: exact,
// case-insensitive lookup of a guest and their table.
func (h *PublicHandler) LookupGuest(w http.ResponseWriter, r *http.Request) {
	event := h.getEvent(w, r)
	if event == nil {
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		middleware.Fail(w, "name is required")
		return
	}

	guest, err := h.store.FindGuestByName(r.Context(), event.ID, name)
	if errors.Is(err, store.ErrNotFound) {
		middleware.Fail(w, "We couldn't find your name on the guest list")
		return
	}
	if err != nil {
		slog.Error("failed to look up guest", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	pub := models.PublicGuest{FullName: guest.FullName}
	if guest.TableID != nil {
		table, err := h.store.GetTable(r.Context(), *guest.TableID)
		if err == nil {
			pub.TableName = &table.Name
			pub.TableColor = &table.Color
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.GuestLookupResponse{Success: true, Guest: pub})
}

// SuggestGuests handles GET /public/events/{id}/guests/suggest?q=:
// substring matches to help guests who misspell their own names.
func (h *PublicHandler) SuggestGuests(w http.ResponseWriter, r *http.Request) {
	event := h.getEvent(w, r)
	if event == nil {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		middleware.JSONResponse(w, http.StatusOK, models.SuggestResponse{Success: true, Suggestions: []string{}})
		return
	}

	names, err := h.store.SuggestGuestNames(r.Context(), event.ID, query, suggestLimit)
	if err != nil {
		slog.Error("failed to suggest guests", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if names == nil {
		names = []string{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.SuggestResponse{Success: true, Suggestions: names})
}
