// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tabletamer/server/models"
)

// defaultSettings are returned when a user has never saved a profile.
func defaultSettings(userID string) *models.UserSettings {
	return &models.UserSettings{
		UserID:               userID,
		NotificationsEnabled: true,
		Theme:                "light",
		Language:             "en",
	}
}

// GetSettings retrieves a user's settings, falling back to defaults when no
// row exists yet.
func (s *Store) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, display_name, email, phone, phone_verified,
			notifications_enabled, theme, language, table_naming, table_prefix, updated_at
		FROM user_settings WHERE user_id = $1
	`, userID)

	var (
		us               models.UserSettings
		verified, notify int
	)
	err := row.Scan(&us.UserID, &us.DisplayName, &us.Email, &us.Phone, &verified,
		&notify, &us.Theme, &us.Language, &us.TableNaming, &us.TablePrefix, &us.UpdatedAt)
	if err == sql.ErrNoRows {
		return defaultSettings(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	us.PhoneVerified = verified != 0
	us.NotificationsEnabled = notify != 0
	return &us, nil
}

// UpsertSettings writes a user's full settings row.
func (s *Store) UpsertSettings(ctx context.Context, us *models.UserSettings) error {
	us.UpdatedAt = now()

	// 0/1 integers for driver portability
	verified, notify := 0, 0
	if us.PhoneVerified {
		verified = 1
	}
	if us.NotificationsEnabled {
		notify = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, display_name, email, phone, phone_verified,
			notifications_enabled, theme, language, table_naming, table_prefix, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = excluded.display_name,
			email = excluded.email,
			phone = excluded.phone,
			phone_verified = excluded.phone_verified,
			notifications_enabled = excluded.notifications_enabled,
			theme = excluded.theme,
			language = excluded.language,
			table_naming = excluded.table_naming,
			table_prefix = excluded.table_prefix,
			updated_at = excluded.updated_at
	`, us.UserID, us.DisplayName, us.Email, us.Phone, verified, notify,
		us.Theme, us.Language, us.TableNaming, us.TablePrefix, us.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}
