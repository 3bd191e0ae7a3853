// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tabletamer/server/models"
)

const guestColumns = `id, full_name, first_name, last_name, phone, email, notes,
	event_id, user_id, table_id, created_at, updated_at`

func scanGuest(row scanner) (models.Guest, error) {
	var g models.Guest
	err := row.Scan(&g.ID, &g.FullName, &g.FirstName, &g.LastName, &g.Phone, &g.Email,
		&g.Notes, &g.EventID, &g.UserID, &g.TableID, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

// CreateGuest persists a new guest, generating its ID and timestamps.
func (s *Store) CreateGuest(ctx context.Context, g *models.Guest) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	ts := now()
	g.CreatedAt, g.UpdatedAt = ts, ts

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO guest (id, full_name, first_name, last_name, phone, email, notes,
			event_id, user_id, table_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, g.ID, g.FullName, g.FirstName, g.LastName, g.Phone, g.Email, g.Notes,
		g.EventID, g.UserID, g.TableID, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert guest: %w", err)
	}
	return nil
}

// CreateGuests inserts a batch of guests in one transaction: all or none.
// Callers that want per-row fallback catch the error and retry one by one.
func (s *Store) CreateGuests(ctx context.Context, guests []*models.Guest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ts := now()
	for _, g := range guests {
		if g.ID == "" {
			g.ID = uuid.New().String()
		}
		g.CreatedAt, g.UpdatedAt = ts, ts

		_, err := tx.ExecContext(ctx, `
			INSERT INTO guest (id, full_name, first_name, last_name, phone, email, notes,
				event_id, user_id, table_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, g.ID, g.FullName, g.FirstName, g.LastName, g.Phone, g.Email, g.Notes,
			g.EventID, g.UserID, g.TableID, g.CreatedAt, g.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert guest %q: %w", g.FullName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// GetGuest retrieves one guest by ID.
func (s *Store) GetGuest(ctx context.Context, id string) (*models.Guest, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guest WHERE id = $1`, id)

	g, err := scanGuest(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query guest: %w", err)
	}
	return &g, nil
}

// UpdateGuest updates a guest's profile fields (not its table assignment).
func (s *Store) UpdateGuest(ctx context.Context, g *models.Guest) error {
	g.UpdatedAt = now()
	res, err := s.db.ExecContext(ctx, `
		UPDATE guest
		SET full_name = $1, first_name = $2, last_name = $3, phone = $4,
			email = $5, notes = $6, updated_at = $7
		WHERE id = $8
	`, g.FullName, g.FirstName, g.LastName, g.Phone, g.Email, g.Notes, g.UpdatedAt, g.ID)
	if err != nil {
		return fmt.Errorf("failed to update guest: %w", err)
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

// DeleteGuest removes one guest.
func (s *Store) DeleteGuest(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM guest WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
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

// ListGuestsByEvent returns every guest of an event, sorted by name.
func (s *Store) ListGuestsByEvent(ctx context.Context, eventID string) ([]models.Guest, error) {
	return s.queryGuests(ctx,
		`SELECT `+guestColumns+` FROM guest WHERE event_id = $1 ORDER BY full_name, id`, eventID)
}

// ListUnassignedGuests returns the guests of an event with no table.
// "Unassigned" is table_id IS NULL, never an empty-string sentinel.
func (s *Store) ListUnassignedGuests(ctx context.Context, eventID string) ([]models.Guest, error) {
	return s.queryGuests(ctx,
		`SELECT `+guestColumns+` FROM guest WHERE event_id = $1 AND table_id IS NULL ORDER BY full_name, id`, eventID)
}

// ListGuestsByTable returns the guests assigned to one table.
func (s *Store) ListGuestsByTable(ctx context.Context, tableID string) ([]models.Guest, error) {
	return s.queryGuests(ctx,
		`SELECT `+guestColumns+` FROM guest WHERE table_id = $1 ORDER BY full_name, id`, tableID)
}

func (s *Store) queryGuests(ctx context.Context, query string, args ...any) ([]models.Guest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	guests := []models.Guest{}
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

// DeleteGuestsByEvent removes every guest of an event and reports the count.
func (s *Store) DeleteGuestsByEvent(ctx context.Context, eventID string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM guest WHERE event_id = $1`, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete guests: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// AssignGuest sets or clears a guest's table reference. A nil tableID is
// written as an explicit NULL - the store-level equivalent of a
// field-delete, so "unassigned" stays unambiguous.
func (s *Store) AssignGuest(ctx context.Context, guestID string, tableID *string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE guest SET table_id = $1, updated_at = $2 WHERE id = $3`,
		tableID, now(), guestID)
	if err != nil {
		return fmt.Errorf("failed to assign guest: %w", err)
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

// UnassignGuestsOfTable clears the table reference on every guest pointing
// at the table. Returns how many guests were unassigned.
func (s *Store) UnassignGuestsOfTable(ctx context.Context, tableID string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE guest SET table_id = NULL, updated_at = $1 WHERE table_id = $2`,
		now(), tableID)
	if err != nil {
		return 0, fmt.Errorf("failed to unassign guests: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ClearAssignments unassigns every guest of an event.
func (s *Store) ClearAssignments(ctx context.Context, eventID string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE guest SET table_id = NULL, updated_at = $1 WHERE event_id = $2 AND table_id IS NOT NULL`,
		now(), eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear assignments: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// FindGuestByName performs an exact, case-insensitive lookup of a guest by
// full name within an event.
func (s *Store) FindGuestByName(ctx context.Context, eventID, name string) (*models.Guest, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guest
		 WHERE event_id = $1 AND LOWER(full_name) = LOWER($2)
		 ORDER BY id LIMIT 1`, eventID, name)

	g, err := scanGuest(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query guest: %w", err)
	}
	return &g, nil
}

// SuggestGuestNames returns up to limit full names containing the query,
// case-insensitively, for the guest-facing autocomplete.
func (s *Store) SuggestGuestNames(ctx context.Context, eventID, query string, limit int) ([]string, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT full_name FROM guest
		WHERE event_id = $1 AND LOWER(full_name) LIKE $2
		ORDER BY full_name LIMIT $3
	`, eventID, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
