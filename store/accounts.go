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

// CreateAccount persists a new planner account. Emails are stored lowercased.
func (s *Store) CreateAccount(ctx context.Context, a *models.Account) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	a.CreatedAt = now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO account (id, email, password_hash, display_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, a.Email, a.PasswordHash, a.DisplayName, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// GetAccount retrieves one account by ID.
func (s *Store) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.getAccount(ctx, `WHERE id = $1`, id)
}

// GetAccountByEmail retrieves one account by email (case-insensitive).
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.getAccount(ctx, `WHERE email = $1`, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Store) getAccount(ctx context.Context, where string, arg any) (*models.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, display_name, created_at FROM account `+where, arg)

	var a models.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.DisplayName, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return &a, nil
}
