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

type GuestHandler struct {
	store *store.Store
	event *EventHandler
}

func NewGuestHandler(s *store.Store) *GuestHandler {
	return &GuestHandler{store: s, event: NewEventHandler(s)}
}

func (h *GuestHandler) getOwnedGuest(w http.ResponseWriter, r *http.Request, guestID string) *models.Guest {
	guest, err := h.store.GetGuest(r.Context(), guestID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.Fail(w, "Guest not found")
		return nil
	}
	if err != nil {
		slog.Error("failed to query guest", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return nil
	}
	if guest.UserID != middleware.UserID(r.Context()) {
		middleware.Fail(w, "Guest not found")
		return nil
	}
	return guest
}

// CreateGuest handles POST /guests
func (h *GuestHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGuestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.FailResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FullName == "" {
		middleware.Fail(w, "fullName is required")
		return
	}

	event := h.event.getOwnedEvent(w, r, req.EventID)
	if event == nil {
		return
	}

	guest := &models.Guest{
		FullName:  req.FullName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Notes:     req.Notes,
		EventID:   event.ID,
		UserID:    middleware.UserID(r.Context()),
	}
	if err := h.store.CreateGuest(r.Context(), guest); err != nil {
		slog.Error("failed to create guest", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to create guest")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.GuestResponse{Success: true, Guest: *guest})
}

// ListGuests handles GET /guests?eventId=
func (h *GuestHandler) ListGuests(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("eventId")
	if eventID == "" {
		middleware.Fail(w, "eventId is required")
		return
	}
	event := h.event.getOwnedEvent(w, r, eventID)
	if event == nil {
		return
	}

	guests, err := h.store.ListGuestsByEvent(r.Context(), event.ID)
	if err != nil {
		slog.Error("failed to list guests", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.GuestsResponse{Success: true, Guests: guests})
}

// UpdateGuest handles PATCH /guests/{id}. Assignment changes go through the
// tables endpoints, not here.
func (h *GuestHandler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	guest := h.getOwnedGuest(w, r, r.PathValue("id"))
	if guest == nil {
		return
	}

	var req models.UpdateGuestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.FailResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.FullName != nil {
		if *req.FullName == "" {
			middleware.Fail(w, "fullName cannot be empty")
			return
		}
		guest.FullName = *req.FullName
	}
	if req.FirstName != nil {
		guest.FirstName = req.FirstName
	}
	if req.LastName != nil {
		guest.LastName = req.LastName
	}
	if req.Phone != nil {
		guest.Phone = req.Phone
	}
	if req.Email != nil {
		guest.Email = req.Email
	}
	if req.Notes != nil {
		guest.Notes = req.Notes
	}

	if err := h.store.UpdateGuest(r.Context(), guest); err != nil {
		slog.Error("failed to update guest", "error", err, "guest_id", guest.ID)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to update guest")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.GuestResponse{Success: true, Guest: *guest})
}

// DeleteGuest handles DELETE /guests/{id}
func (h *GuestHandler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	guest := h.getOwnedGuest(w, r, r.PathValue("id"))
	if guest == nil {
		return
	}

	if err := h.store.DeleteGuest(r.Context(), guest.ID); err != nil {
		slog.Error("failed to delete guest", "error", err, "guest_id", guest.ID)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to delete guest")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.DeleteGuestsResponse{Success: true, Deleted: 1})
}

// DeleteGuestsByEvent handles DELETE /guests?eventId= (bulk)
func (h *GuestHandler) DeleteGuestsByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("eventId")
	if eventID == "" {
		middleware.Fail(w, "eventId is required")
		return
	}
	event := h.event.getOwnedEvent(w, r, eventID)
	if event == nil {
		return
	}

	deleted, err := h.store.DeleteGuestsByEvent(r.Context(), event.ID)
	if err != nil {
		slog.Error("failed to delete guests", "error", err, "event_id", event.ID)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to delete guests")
		return
	}

	slog.Info("guests bulk deleted", "event_id", event.ID, "count", deleted)
	middleware.JSONResponse(w, http.StatusOK, models.DeleteGuestsResponse{Success: true, Deleted: deleted})
}
