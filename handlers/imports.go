// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/tabletamer/server/importer"
	"github.com/tabletamer/server/llm"
	"github.com/tabletamer/server/metrics"
	"github.com/tabletamer/server/middleware"
	"github.com/tabletamer/server/models"
	"github.com/tabletamer/server/store"
)

const (
	// maxImportSize caps uploaded spreadsheets at 10MB.
	maxImportSize = 10 << 20
	// importChunkSize is how many guests are persisted per transaction
	// during an import.
	importChunkSize = 25
	// inferenceSampleRows is how many leading rows go to the model.
	inferenceSampleRows = 5
)

type ImportHandler struct {
	store *store.Store
	llm   *llm.Client
	event *EventHandler
}

func NewImportHandler(s *store.Store, lc *llm.Client) *ImportHandler {
	return &ImportHandler{store: s, llm: lc, event: NewEventHandler(s)}
}

// Import handles POST /import: multipart upload of a guest spreadsheet.
// The flow is parse, infer columns, map rows, persist, detect groups —
// nothing is written if parsing or inference fails.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		middleware.Fail(w, fmt.Sprintf("File too large or malformed (limit %s)", humanize.Bytes(maxImportSize)))
		return
	}

	event := h.event.getOwnedEvent(w, r, r.FormValue("eventId"))
	if event == nil {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.Fail(w, "A spreadsheet file is required")
		return
	}
	defer file.Close()

	rows, err := importer.Parse(header.Filename, file)
	if errors.Is(err, importer.ErrUnsupportedFormat) {
		middleware.Fail(w, "Unsupported file format; upload a .csv or .xlsx file")
		return
	}
	if errors.Is(err, importer.ErrEmptyFile) {
		middleware.Fail(w, "The file contains no rows")
		return
	}
	if err != nil {
		slog.Error("failed to parse spreadsheet", "error", err, "filename", header.Filename)
		middleware.Fail(w, "Could not read the spreadsheet")
		return
	}

	mapping, err := h.llm.InferColumns(r.Context(), importer.SampleRows(rows, inferenceSampleRows))
	if errors.Is(err, llm.ErrNoNameColumn) {
		middleware.Fail(w, "Could not find a name column in the spreadsheet")
		return
	}
	if err != nil {
		slog.Error("column inference failed", "error", err)
		middleware.Fail(w, "Could not analyze the spreadsheet columns")
		return
	}

	imported := importer.MapRows(rows, mapping)
	if len(imported) == 0 {
		middleware.Fail(w, "No guests found in the spreadsheet")
		return
	}
	groups := importer.DetectGroups(rows, mapping, imported)

	saved, failed := h.persistImported(r, event, imported)
	metrics.ImportedGuests.Add(float64(len(saved)))

	message := fmt.Sprintf("Imported %s", humanize.Comma(int64(len(saved))))
	if len(saved) == 1 {
		message += " guest"
	} else {
		message += " guests"
	}
	if failed > 0 {
		message += fmt.Sprintf(" (%d failed)", failed)
	}

	slog.Info("spreadsheet imported",
		"event_id", event.ID, "saved", len(saved), "failed", failed, "groups", len(groups))
	middleware.JSONResponse(w, http.StatusOK, models.ImportResponse{
		Success:        true,
		ImportedGuests: saved,
		Groups:         groups,
		Message:        message,
	})
}

// SaveImport handles POST /import/save: persists a reviewed import, with
// optional table creation per selected group and fuzzy guest placement.
func (h *ImportHandler) SaveImport(w http.ResponseWriter, r *http.Request) {
	var req models.SaveImportRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.FailResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Guests) == 0 {
		middleware.Fail(w, "guests is empty")
		return
	}

	event := h.event.getOwnedEvent(w, r, req.EventID)
	if event == nil {
		return
	}

	saved, failed := h.persistImported(r, event, req.Guests)
	metrics.ImportedGuests.Add(float64(len(saved)))

	tablesCreated, autoAssigned := 0, 0
	if req.AutoTableAssignment && len(req.Groups) > 0 {
		tablesCreated, autoAssigned = h.placeGroups(r, event, req.Guests, saved, req.Groups)
	}

	message := fmt.Sprintf("Saved %s of %s guests",
		humanize.Comma(int64(len(saved))), humanize.Comma(int64(len(req.Guests))))

	slog.Info("import saved", "event_id", event.ID, "saved", len(saved),
		"failed", failed, "tables_created", tablesCreated, "auto_assigned", autoAssigned)
	middleware.JSONResponse(w, http.StatusOK, models.SaveImportResponse{
		Success:       true,
		SavedGuests:   len(saved),
		FailedGuests:  failed,
		TablesCreated: tablesCreated,
		AutoAssigned:  autoAssigned,
		Message:       message,
	})
}

// persistImported writes imported guests in fixed-size chunks, one
// transaction per chunk. A failed chunk falls back to one-at-a-time inserts
// so a single bad row doesn't sink its 24 neighbours.
func (h *ImportHandler) persistImported(r *http.Request, event *models.Event, imported []models.ImportedGuest) ([]models.Guest, int) {
	userID := middleware.UserID(r.Context())

	saved := make([]models.Guest, 0, len(imported))
	failed := 0
	for start := 0; start < len(imported); start += importChunkSize {
		end := start + importChunkSize
		if end > len(imported) {
			end = len(imported)
		}

		chunk := make([]*models.Guest, 0, end-start)
		for _, ig := range imported[start:end] {
			chunk = append(chunk, &models.Guest{
				FullName: ig.FullName,
				Phone:    ig.Phone,
				EventID:  event.ID,
				UserID:   userID,
			})
		}

		if err := h.store.CreateGuests(r.Context(), chunk); err == nil {
			for _, g := range chunk {
				saved = append(saved, *g)
			}
			continue
		}

		// Chunk failed; retry row by row.
		for _, g := range chunk {
			g.ID = "" // discard the ID from the rolled-back attempt
			if err := h.store.CreateGuest(r.Context(), g); err != nil {
				slog.Warn("failed to import guest", "error", err, "name", g.FullName)
				failed++
				continue
			}
			saved = append(saved, *g)
		}
	}
	return saved, failed
}

// placeGroups creates one table per selected group (reusing an existing
// table when its name plausibly matches) and seats the group's guests
// there. Guests whose group matches nothing stay unassigned.
func (h *ImportHandler) placeGroups(r *http.Request, event *models.Event, imported []models.ImportedGuest, saved []models.Guest, groups []string) (created, assigned int) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	tables, err := h.store.ListTablesByEvent(ctx, event.ID)
	if err != nil {
		slog.Error("failed to list tables for group placement", "error", err)
		return 0, 0
	}

	// Group annotation by guest name; saved guests carry no group field.
	groupOf := map[string]string{}
	for _, ig := range imported {
		if ig.Group != nil {
			groupOf[ig.FullName] = *ig.Group
		}
	}

	tableFor := map[string]string{}
	for _, group := range groups {
		matched := ""
		for _, t := range tables {
			if importer.MatchGroupToTable(group, t.Name) {
				matched = t.ID
				break
			}
		}
		if matched == "" {
			t := &models.Table{
				Name:     group,
				Capacity: defaultTableCapacity,
				Color:    TableColor(len(tables) + created),
				EventID:  event.ID,
				UserID:   userID,
			}
			if err := h.store.CreateTable(ctx, t); err != nil {
				slog.Error("failed to create group table", "error", err, "group", group)
				continue
			}
			matched = t.ID
			created++
		}
		tableFor[group] = matched
	}

	for _, g := range saved {
		group, ok := groupOf[g.FullName]
		if !ok {
			continue
		}
		tableID, ok := tableFor[group]
		if !ok {
			continue
		}
		if err := h.store.AssignGuest(ctx, g.ID, &tableID); err != nil {
			slog.Warn("failed to seat imported guest", "error", err, "guest_id", g.ID)
			continue
		}
		assigned++
	}
	return created, assigned
}
