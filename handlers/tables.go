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

const (
	defaultTableCapacity = 8
	maxTablesPerEvent    = 50
)

type TableHandler struct {
	store *store.Store
	event *EventHandler
}

func NewTableHandler(s *store.Store) *TableHandler {
	return &TableHandler{store: s, event: NewEventHandler(s)}
}

// GetTables handles GET /tables?eventId=. Returns the event's tables with
// their guests nested, plus the unassigned guests as a separate list.
func (h *TableHandler) GetTables(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("eventId")
	if eventID == "" {
		middleware.Fail(w, "eventId is required")
		return
	}
	event := h.event.getOwnedEvent(w, r, eventID)
	if event == nil {
		return
	}

	tables, err := h.store.ListTablesByEvent(r.Context(), event.ID)
	if err != nil {
		slog.Error("failed to list tables", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// One guest query for the whole event, bucketed in memory.
	guests, err := h.store.ListGuestsByEvent(r.Context(), event.ID)
	if err != nil {
		slog.Error("failed to list guests", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	byTable := map[string][]models.Guest{}
	unassigned := []models.Guest{}
	for _, g := range guests {
		if g.TableID == nil {
			unassigned = append(unassigned, g)
			continue
		}
		byTable[*g.TableID] = append(byTable[*g.TableID], g)
	}

	withGuests := make([]models.TableWithGuests, 0, len(tables))
	for _, t := range tables {
		tg := models.TableWithGuests{Table: t, Guests: byTable[t.ID]}
		if tg.Guests == nil {
			tg.Guests = []models.Guest{}
		}
		withGuests = append(withGuests, tg)
	}

	middleware.JSONResponse(w, http.StatusOK, models.TablesResponse{
		Success:          true,
		Tables:           withGuests,
		UnassignedGuests: unassigned,
	})
}

// GenerateTables handles POST /tables. Regeneration is destructive: the
// event's existing tables are replaced and every guest becomes unassigned.
func (h *TableHandler) GenerateTables(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateTablesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.FailResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.NumTables < 1 || req.NumTables > maxTablesPerEvent {
		middleware.Fail(w, "numTables must be between 1 and 50")
		return
	}

	event := h.event.getOwnedEvent(w, r, req.EventID)
	if event == nil {
		return
	}

	convention := req.NamingConvention
	prefix := req.CustomPrefix
	if convention == "" {
		// Fall back to the user's saved preference.
		settings, err := h.store.GetSettings(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			slog.Error("failed to load settings", "error", err)
			middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if settings.TableNaming != nil {
			convention = *settings.TableNaming
		}
		if prefix == "" && settings.TablePrefix != nil {
			prefix = *settings.TablePrefix
		}
	}

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = defaultTableCapacity
	}

	names := TableNames(convention, prefix, req.NumTables)
	specs := make([]store.TableSpec, req.NumTables)
	for i, name := range names {
		specs[i] = store.TableSpec{Name: name, Capacity: capacity, Color: TableColor(i)}
	}

	tables, err := h.store.ReplaceTables(r.Context(), event.ID, middleware.UserID(r.Context()), specs)
	if err != nil {
		slog.Error("failed to regenerate tables", "error", err, "event_id", event.ID)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to generate tables")
		return
	}

	slog.Info("tables regenerated", "event_id", event.ID, "count", len(tables))
	middleware.JSONResponse(w, http.StatusOK, models.GenerateTablesResponse{Success: true, Tables: tables})
}

// AssignGuest handles PATCH /tables: a single guest reassignment. A null
// tableId unassigns. The target table must belong to the same event and
// the same owner as the guest.
func (h *TableHandler) AssignGuest(w http.ResponseWriter, r *http.Request) {
	var req models.AssignGuestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.FailResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.GuestID == "" {
		middleware.Fail(w, "guestId is required")
		return
	}

	guest, err := h.store.GetGuest(r.Context(), req.GuestID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.Fail(w, "Guest not found")
		return
	}
	if err != nil {
		slog.Error("failed to query guest", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if guest.UserID != middleware.UserID(r.Context()) {
		middleware.Fail(w, "Guest not found")
		return
	}

	if req.TableID != nil {
		table, err := h.store.GetTable(r.Context(), *req.TableID)
		if errors.Is(err, store.ErrNotFound) {
			middleware.Fail(w, "Table not found")
			return
		}
		if err != nil {
			slog.Error("failed to query table", "error", err)
			middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if table.EventID != guest.EventID || table.UserID != guest.UserID {
			middleware.Fail(w, "Table belongs to a different event")
			return
		}
	}

	if err := h.store.AssignGuest(r.Context(), guest.ID, req.TableID); err != nil {
		slog.Error("failed to assign guest", "error", err, "guest_id", guest.ID)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to assign guest")
		return
	}

	guest.TableID = req.TableID
	middleware.JSONResponse(w, http.StatusOK, models.AssignResponse{Success: true, Guest: *guest})
}

// DeleteTable handles DELETE /tables/{id}. Guests seated at the table are
// unassigned, never deleted.
func (h *TableHandler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	table, err := h.store.GetTable(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.Fail(w, "Table not found")
		return
	}
	if err != nil {
		slog.Error("failed to query table", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if table.UserID != middleware.UserID(r.Context()) {
		middleware.Fail(w, "Table not found")
		return
	}

	unassigned, err := h.store.DeleteTable(r.Context(), table.ID)
	if err != nil {
		slog.Error("failed to delete table", "error", err, "table_id", table.ID)
		middleware.FailResponse(w, http.StatusInternalServerError, "Failed to delete table")
		return
	}

	slog.Info("table deleted", "table_id", table.ID, "guests_unassigned", unassigned)
	middleware.JSONResponse(w, http.StatusOK, models.DeleteGuestsResponse{Success: true, Deleted: unassigned})
}

// AutoAssign handles POST /tables/auto-assign: round-robin placement of
// every unassigned guest into tables that still have open seats.
func (h *TableHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	var req models.AutoAssignRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.FailResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	event := h.event.getOwnedEvent(w, r, req.EventID)
	if event == nil {
		return
	}

	tables, err := h.store.ListTablesByEvent(r.Context(), event.ID)
	if err != nil {
		slog.Error("failed to list tables", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if len(tables) == 0 {
		middleware.Fail(w, "Event has no tables")
		return
	}

	unassigned, err := h.store.ListUnassignedGuests(r.Context(), event.ID)
	if err != nil {
		slog.Error("failed to list unassigned guests", "error", err)
		middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	seated := map[string]int{}
	for _, t := range tables {
		guests, err := h.store.ListGuestsByTable(r.Context(), t.ID)
		if err != nil {
			slog.Error("failed to list table guests", "error", err)
			middleware.FailResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		seated[t.ID] = len(guests)
	}

	assigned := 0
	ti := 0
	for _, g := range unassigned {
		// Advance to the next table with an open seat.
		tried := 0
		for tried < len(tables) && seated[tables[ti].ID] >= tables[ti].Capacity {
			ti = (ti + 1) % len(tables)
			tried++
		}
		if tried == len(tables) {
			break // every table is full
		}

		t := tables[ti]
		if err := h.store.AssignGuest(r.Context(), g.ID, &t.ID); err != nil {
			slog.Error("failed to auto-assign guest", "error", err, "guest_id", g.ID)
			continue
		}
		seated[t.ID]++
		assigned++
		ti = (ti + 1) % len(tables)
	}

	slog.Info("auto-assign complete", "event_id", event.ID, "assigned", assigned)
	middleware.JSONResponse(w, http.StatusOK, models.AutoAssignResponse{Success: true, Assigned: assigned})
}
