// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tabletamer/server/middleware"
	"github.com/tabletamer/server/models"
	"github.com/tabletamer/server/store"
)

type EventHandler struct {
	store *store.Store
}

func NewEventHandler(s *store.Store) *EventHandler {
	return &EventHandler{store: s}
}

// getOwnedEvent loads an event and checks the caller owns it. Missing and
// foreign events are indistinguishable to the caller.
func (h *EventHandler) getOwnedEvent(w http.ResponseWriter, r *http.Request, eventID string) *models.Event {
	event, err := h.store.GetEvent(r.Context(), eventID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.Fail(w, "Event not found")
		return nil
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return nil
	}
	if event.UserID != middleware.UserID(r.Context()) {
		middleware.Fail(w, "Event not found")
		return nil
	}
	return event
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.FailResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.Fail(w, "name is required")
		return
	}

	event := &models.Event{
		Name:        req.Name,
		Description: req.Description,
		Theme:       req.Theme,
		UserID:      middleware.UserID(r.Context()),
	}
	if err := h.store.CreateEvent(r.Context(), event); err != nil {
		slog.Error("failed to create event", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	slog.Info("event created", "event_id", event.ID, "user_id", event.UserID)
	middleware.JSONResponse(w, http.StatusOK, models.EventResponse{Success: true, Event: *event})
}

// ListEvents handles GET /events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.ListEvents(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		slog.Error("failed to list events", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.EventsResponse{Success: true, Events: events})
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event := h.getOwnedEvent(w, r, r.PathValue("id"))
	if event == nil {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.EventResponse{Success: true, Event: *event})
}

// UpdateEvent handles PATCH /events/{id}. Omitted fields are untouched;
// explicit empty strings clear.
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	event := h.getOwnedEvent(w, r, r.PathValue("id"))
	if event == nil {
		return
	}

	var req models.UpdateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.FailResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			middleware.Fail(w, "name cannot be empty")
			return
		}
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.Theme != nil {
		event.Theme = req.Theme
	}

	if err := h.store.UpdateEvent(r.Context(), event); err != nil {
		slog.Error("failed to update event", "error", err, "event_id", event.ID)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to update event")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.EventResponse{Success: true, Event: *event})
}

// DeleteEvent handles DELETE /events/{id}. Deleting an event also removes
// its guests and tables, and the response reports how many of each went.
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	event := h.getOwnedEvent(w, r, r.PathValue("id"))
	if event == nil {
		return
	}

	guests, tables, err := h.store.DeleteEventCascade(r.Context(), event.ID)
	if err != nil {
		slog.Error("failed to delete event", "error", err, "event_id", event.ID)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	slog.Info("event deleted", "event_id", event.ID, "guests", guests, "tables", tables)
	middleware.JSONResponse(w, http.StatusOK, models.DeleteEventResponse{
		Success:       true,
		GuestsDeleted: guests,
		TablesDeleted: tables,
	})
}
