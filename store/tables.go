// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tabletamer/server/models"
)

// TableSpec describes one table to create during regeneration.
type TableSpec struct {
	Name     string
	Capacity int
	Color    string
}

const tableColumns = `id, name, capacity, color, event_id, user_id, created_at, updated_at`

func scanTable(row scanner) (models.Table, error) {
	var t models.Table
	err := row.Scan(&t.ID, &t.Name, &t.Capacity, &t.Color, &t.EventID, &t.UserID,
		&t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// CreateTable persists a new seating table at the end of the event's order.
func (s *Store) CreateTable(ctx context.Context, t *models.Table) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	ts := now()
	t.CreatedAt, t.UpdatedAt = ts, ts

	var position int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seating_table WHERE event_id = $1`, t.EventID).Scan(&position)
	if err != nil {
		return fmt.Errorf("failed to count tables: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO seating_table (id, name, capacity, color, event_id, user_id, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, t.ID, t.Name, t.Capacity, t.Color, t.EventID, t.UserID, position, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert table: %w", err)
	}
	return nil
}

// GetTable retrieves one seating table by ID.
func (s *Store) GetTable(ctx context.Context, id string) (*models.Table, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tableColumns+` FROM seating_table WHERE id = $1`, id)

	t, err := scanTable(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query table: %w", err)
	}
	return &t, nil
}

// ListTablesByEvent returns an event's tables in creation order.
func (s *Store) ListTablesByEvent(ctx context.Context, eventID string) ([]models.Table, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tableColumns+` FROM seating_table WHERE event_id = $1 ORDER BY position, created_at, id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	tables := []models.Table{}
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// DeleteTable removes a table, first clearing the table reference on every
// guest that pointed at it so no stale assignment survives. Returns how
// many guests were unassigned.
func (s *Store) DeleteTable(ctx context.Context, id string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE guest SET table_id = NULL, updated_at = $1 WHERE table_id = $2`,
		now(), id)
	if err != nil {
		return 0, fmt.Errorf("failed to unassign guests: %w", err)
	}
	unassigned, _ := res.RowsAffected()

	res, err = tx.ExecContext(ctx, `DELETE FROM seating_table WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete table: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return 0, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return int(unassigned), nil
}

// ReplaceTables destructively regenerates an event's table set: every guest
// of the event is unassigned first, the old tables are deleted, and the new
// specs are inserted in order. All in one transaction.
func (s *Store) ReplaceTables(ctx context.Context, eventID, userID string, specs []TableSpec) ([]models.Table, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE guest SET table_id = NULL, updated_at = $1 WHERE event_id = $2 AND table_id IS NOT NULL`,
		now(), eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to clear assignments: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM seating_table WHERE event_id = $1`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete tables: %w", err)
	}

	ts := now()
	tables := make([]models.Table, 0, len(specs))
	for i, spec := range specs {
		t := models.Table{
			ID:        uuid.New().String(),
			Name:      spec.Name,
			Capacity:  spec.Capacity,
			Color:     spec.Color,
			EventID:   eventID,
			UserID:    userID,
			CreatedAt: ts,
			UpdatedAt: ts,
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO seating_table (id, name, capacity, color, event_id, user_id, position, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, t.ID, t.Name, t.Capacity, t.Color, t.EventID, t.UserID, i, t.CreatedAt, t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert table %q: %w", spec.Name, err)
		}
		tables = append(tables, t)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return tables, nil
}
