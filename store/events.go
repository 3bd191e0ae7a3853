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

// CreateEvent persists a new event, generating its ID and timestamps.
func (s *Store) CreateEvent(ctx context.Context, e *models.Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	ts := now()
	e.CreatedAt, e.UpdatedAt = ts, ts

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO event (id, name, description, theme, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.Name, e.Description, e.Theme, e.UserID, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// GetEvent retrieves one event by ID.
func (s *Store) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, theme, user_id, created_at, updated_at
		FROM event WHERE id = $1
	`, id)

	var e models.Event
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Theme, &e.UserID, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query event: %w", err)
	}
	return &e, nil
}

// ListEvents returns all events owned by the user, newest first.
func (s *Store) ListEvents(ctx context.Context, userID string) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, theme, user_id, created_at, updated_at
		FROM event WHERE user_id = $1
		ORDER BY created_at DESC, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Theme, &e.UserID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// UpdateEvent updates an event's name, description, and theme.
func (s *Store) UpdateEvent(ctx context.Context, e *models.Event) error {
	e.UpdatedAt = now()
	res, err := s.db.ExecContext(ctx, `
		UPDATE event SET name = $1, description = $2, theme = $3, updated_at = $4
		WHERE id = $5
	`, e.Name, e.Description, e.Theme, e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEventCascade removes an event and every guest and table that
// references it. The fan-out is explicit - there are no database-level
// foreign keys. Returns how many guests and tables were removed.
func (s *Store) DeleteEventCascade(ctx context.Context, eventID string) (guestsDeleted, tablesDeleted int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM guest WHERE event_id = $1`, eventID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to delete guests: %w", err)
	}
	g, _ := res.RowsAffected()

	res, err = tx.ExecContext(ctx, `DELETE FROM seating_table WHERE event_id = $1`, eventID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to delete tables: %w", err)
	}
	t, _ := res.RowsAffected()

	res, err = tx.ExecContext(ctx, `DELETE FROM event WHERE id = $1`, eventID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to delete event: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return 0, 0, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit: %w", err)
	}
	return int(g), int(t), nil
}
