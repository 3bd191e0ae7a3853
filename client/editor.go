// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tabletamer/server/models"
)

// Editor is the in-memory assignment editor: it keeps two snapshots of an
// event's seating (the state as loaded, and the state as edited) and turns
// the difference into a minimal batch write on save. Intended for one
// session at a time; it is not safe for concurrent use.
type Editor struct {
	api     *Client
	eventID string

	originalTables      []models.Table
	originalAssignments map[string]string // guest id -> table id, "" = unassigned

	workingTables      []models.Table
	workingAssignments map[string]string

	guests map[string]models.Guest

	// saveRetries and retryDelay govern the outer retry loop around the
	// batch endpoint; sleep is swapped out in tests.
	saveRetries int
	retryDelay  time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// SaveResult reports what a save accomplished. Partial means some chunks
// failed server-side and the editor re-synced to whatever state the server
// kept; Warning carries the server's description of what went wrong.
type SaveResult struct {
	Partial bool
	Applied int
	Warning string
}

func NewEditor(api *Client, eventID string) *Editor {
	return &Editor{
		api:         api,
		eventID:     eventID,
		saveRetries: 3,
		retryDelay:  2 * time.Second,
		sleep: func(ctx context.Context, d time.Duration) error {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
				return nil
			}
		},
	}
}

// Load fetches the event's canonical seating state and resets both
// snapshots to it.
func (e *Editor) Load(ctx context.Context) error {
	resp, err := e.api.GetTables(ctx, e.eventID)
	if err != nil {
		return fmt.Errorf("load seating state: %w", err)
	}

	e.originalTables = nil
	e.originalAssignments = map[string]string{}
	e.guests = map[string]models.Guest{}

	for _, t := range resp.Tables {
		e.originalTables = append(e.originalTables, t.Table)
		for _, g := range t.Guests {
			e.originalAssignments[g.ID] = t.ID
			e.guests[g.ID] = g
		}
	}
	for _, g := range resp.UnassignedGuests {
		e.originalAssignments[g.ID] = ""
		e.guests[g.ID] = g
	}

	e.resetWorking()
	return nil
}

func (e *Editor) resetWorking() {
	e.workingTables = append([]models.Table(nil), e.originalTables...)
	e.workingAssignments = make(map[string]string, len(e.originalAssignments))
	for g, t := range e.originalAssignments {
		e.workingAssignments[g] = t
	}
}

// Tables returns the working table list in display order.
func (e *Editor) Tables() []models.Table {
	return e.workingTables
}

// GuestsAt lists the guests currently seated at a working table; pass ""
// for the unassigned pool.
func (e *Editor) GuestsAt(tableID string) []models.Guest {
	var out []models.Guest
	for id, t := range e.workingAssignments {
		if t == tableID {
			out = append(out, e.guests[id])
		}
	}
	return out
}

// MoveGuest reseats one guest in the working snapshot. An empty tableID
// moves the guest to the unassigned pool.
func (e *Editor) MoveGuest(guestID, tableID string) error {
	if _, ok := e.guests[guestID]; !ok {
		return fmt.Errorf("unknown guest %q", guestID)
	}
	if tableID != "" && !e.hasWorkingTable(tableID) {
		return fmt.Errorf("unknown table %q", tableID)
	}
	e.workingAssignments[guestID] = tableID
	return nil
}

// MoveGuests reseats a multi-selection in one go.
func (e *Editor) MoveGuests(guestIDs []string, tableID string) error {
	for _, id := range guestIDs {
		if err := e.MoveGuest(id, tableID); err != nil {
			return err
		}
	}
	return nil
}

// AddTable appends a new working table under a temporary ID. The real ID
// is assigned by the server on save.
func (e *Editor) AddTable(name string, capacity int) models.Table {
	t := models.Table{
		ID:       "tmp-" + uuid.New().String(),
		Name:     name,
		Capacity: capacity,
		EventID:  e.eventID,
	}
	e.workingTables = append(e.workingTables, t)
	return t
}

// RemoveTable drops a working table; its guests spill into the unassigned
// pool.
func (e *Editor) RemoveTable(tableID string) {
	kept := e.workingTables[:0]
	for _, t := range e.workingTables {
		if t.ID != tableID {
			kept = append(kept, t)
		}
	}
	e.workingTables = kept

	for g, t := range e.workingAssignments {
		if t == tableID {
			e.workingAssignments[g] = ""
		}
	}
}

func (e *Editor) hasWorkingTable(tableID string) bool {
	for _, t := range e.workingTables {
		if t.ID == tableID {
			return true
		}
	}
	return false
}

func (e *Editor) tableSetChanged() bool {
	if len(e.workingTables) != len(e.originalTables) {
		return true
	}
	for i, t := range e.workingTables {
		if t.ID != e.originalTables[i].ID {
			return true
		}
	}
	return false
}

// HasUnsavedChanges reports whether the working snapshot differs from the
// loaded one.
func (e *Editor) HasUnsavedChanges() bool {
	return e.tableSetChanged() || len(DiffAssignments(e.originalAssignments, e.workingAssignments)) > 0
}

// Discard throws away every pending edit.
func (e *Editor) Discard() {
	e.resetWorking()
}

// Save pushes the pending edits to the server. If the table set changed,
// the tables are recreated first and old positions are remapped to the
// fresh IDs; then the assignment diff goes through the batch endpoint. A
// partial batch failure counts as a qualified success: the editor re-syncs
// and reports it in the result. A full failure leaves the editor dirty.
func (e *Editor) Save(ctx context.Context) (*SaveResult, error) {
	if !e.HasUnsavedChanges() {
		return &SaveResult{}, nil
	}

	baseline := e.originalAssignments
	if e.tableSetChanged() {
		capacity := 8
		if len(e.workingTables) > 0 {
			capacity = e.workingTables[0].Capacity
		}
		fresh, err := e.api.GenerateTables(ctx, models.GenerateTablesRequest{
			EventID:   e.eventID,
			NumTables: len(e.workingTables),
			Capacity:  capacity,
		})
		if err != nil {
			return nil, fmt.Errorf("recreate tables: %w", err)
		}

		// Index remap: the i-th working table becomes the i-th fresh one.
		remap := make(map[string]string, len(e.workingTables))
		for i, t := range e.workingTables {
			if i < len(fresh) {
				remap[t.ID] = fresh[i].ID
			}
		}
		for g, t := range e.workingAssignments {
			if t != "" {
				e.workingAssignments[g] = remap[t]
			}
		}
		e.workingTables = fresh

		// Regeneration unassigned everyone server-side, so the diff
		// baseline is an empty seating chart.
		baseline = make(map[string]string, len(e.originalAssignments))
		for g := range e.originalAssignments {
			baseline[g] = ""
		}
	}

	changes := DiffAssignments(baseline, e.workingAssignments)
	if len(changes) == 0 {
		if err := e.Load(ctx); err != nil {
			return nil, err
		}
		return &SaveResult{}, nil
	}

	resp, err := e.batchWithRetry(ctx, changes)
	if err != nil && (resp == nil || resp.TotalProcessed == 0) {
		return nil, err
	}

	result := &SaveResult{Applied: resp.TotalProcessed}
	if err != nil {
		// Some chunks stuck, some didn't. Re-sync below picks up whatever
		// the server kept.
		result.Partial = true
		result.Warning = resp.Error
	}

	if err := e.Load(ctx); err != nil {
		return result, fmt.Errorf("save applied but refresh failed: %w", err)
	}
	return result, nil
}

// batchWithRetry retries the batch call when the server reports rate
// limiting, scaling the delay linearly per attempt.
func (e *Editor) batchWithRetry(ctx context.Context, changes []models.GuestChange) (*models.BatchAssignResponse, error) {
	var resp *models.BatchAssignResponse
	var err error
	for attempt := 1; ; attempt++ {
		resp, err = e.api.BatchAssign(ctx, changes)
		if err == nil || attempt >= e.saveRetries || !isRateLimited(err) {
			return resp, err
		}
		if serr := e.sleep(ctx, time.Duration(attempt)*e.retryDelay); serr != nil {
			return resp, err
		}
	}
}

func isRateLimited(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "rate limit")
}
