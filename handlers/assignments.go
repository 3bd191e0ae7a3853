// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/tabletamer/server/batch"
	"github.com/tabletamer/server/middleware"
	"github.com/tabletamer/server/models"
	"github.com/tabletamer/server/store"
)

type AssignmentHandler struct {
	store  *store.Store
	writer *batch.Writer
}

func NewAssignmentHandler(s *store.Store) *AssignmentHandler {
	return &AssignmentHandler{
		store:  s,
		writer: batch.NewWriter(s.ApplyOperations, batch.DefaultOptions()),
	}
}

// BatchAssign handles POST /assignments/batch: the save path of the
// assignment editor. Each guest change becomes one update operation; the
// writer chunks them and applies each chunk in its own transaction. Partial
// failure reports success=false with however many operations went through.
func (h *AssignmentHandler) BatchAssign(w http.ResponseWriter, r *http.Request) {
	var req models.BatchAssignRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.FailResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.GuestChanges) == 0 {
		middleware.Fail(w, "guestChanges is empty")
		return
	}

	userID := middleware.UserID(r.Context())
	ops := make([]batch.Operation, 0, len(req.GuestChanges))
	for _, change := range req.GuestChanges {
		guest, err := h.store.GetGuest(r.Context(), change.GuestID)
		if err != nil || guest.UserID != userID {
			middleware.Fail(w, "Guest not found: "+change.GuestID)
			return
		}

		// nil TableID flows through as an explicit NULL (unassign)
		var tableID any
		if change.TableID != nil {
			tableID = *change.TableID
		}
		ops = append(ops, batch.Operation{
			Kind:       batch.KindUpdate,
			Collection: store.CollectionGuests,
			ID:         change.GuestID,
			Data:       map[string]any{"table_id": tableID},
		})
	}

	result := h.writer.Apply(r.Context(), ops)
	if !result.Success {
		slog.Warn("batch assign partially failed",
			"processed", result.ProcessedCount, "errors", len(result.Errors))
		middleware.JSONResponse(w, http.StatusOK, models.BatchAssignResponse{
			Success:        false,
			TotalProcessed: result.ProcessedCount,
			Error:          strings.Join(result.Errors, "; "),
		})
		return
	}

	slog.Info("batch assign complete", "processed", result.ProcessedCount)
	middleware.JSONResponse(w, http.StatusOK, models.BatchAssignResponse{
		Success:        true,
		TotalProcessed: result.ProcessedCount,
	})
}
