// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/tabletamer/server/middleware"
	"github.com/tabletamer/server/models"
	"github.com/tabletamer/server/store"
)

type SettingsHandler struct {
	store *store.Store
}

func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.GetSettings(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.SettingsResponse{Success: true, Settings: *settings})
}

// UpdateSettings handles PUT /settings. Omitted fields keep their current
// value. Changing the phone number resets its verified flag.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.FailResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	userID := middleware.UserID(r.Context())
	settings, err := h.store.GetSettings(r.Context(), userID)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.DisplayName != nil {
		settings.DisplayName = *req.DisplayName
	}
	if req.Email != nil {
		settings.Email = *req.Email
	}
	if req.Phone != nil {
		if settings.Phone == nil || *settings.Phone != *req.Phone {
			settings.PhoneVerified = false
		}
		settings.Phone = req.Phone
	}
	if req.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.Language != nil {
		settings.Language = *req.Language
	}
	if req.TableNaming != nil {
		switch *req.TableNaming {
		case models.NamingNumbers, models.NamingLetters, models.NamingRoman, models.NamingCustom:
			settings.TableNaming = req.TableNaming
		default:
			middleware.Fail(w, "Unknown table naming convention")
			return
		}
	}
	if req.TablePrefix != nil {
		settings.TablePrefix = req.TablePrefix
	}

	if err := h.store.UpsertSettings(r.Context(), settings); err != nil {
		slog.Error("failed to save settings", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.SettingsResponse{Success: true, Settings: *settings})
}
