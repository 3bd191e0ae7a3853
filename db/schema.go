// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The schema is deliberately free of foreign-key constraints: the store has
// document-style semantics, and every cross-record cleanup (event deletion
// fanning out to guests and tables, table deletion unassigning guests) is an
// explicit multi-statement operation in the store layer. Timestamps are unix
// seconds so the same DDL works on both PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Planner accounts
CREATE TABLE IF NOT EXISTS account (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    display_name TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

-- Events
CREATE TABLE IF NOT EXISTS event (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    theme TEXT,
    user_id TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_event_user_id ON event(user_id);

-- Guests. table_id IS NULL means unassigned; user_id is denormalized from
-- the event for ownership filtering.
CREATE TABLE IF NOT EXISTS guest (
    id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    first_name TEXT,
    last_name TEXT,
    phone TEXT,
    email TEXT,
    notes TEXT,
    event_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    table_id TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_guest_event_id ON guest(event_id);
CREATE INDEX IF NOT EXISTS idx_guest_event_table ON guest(event_id, table_id);
CREATE INDEX IF NOT EXISTS idx_guest_user_id ON guest(user_id);

-- Seating tables ("table" is a reserved word in SQL). position preserves
-- creation order, which the assignment editor relies on when it remaps
-- freshly regenerated table ids by index.
CREATE TABLE IF NOT EXISTS seating_table (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    capacity INTEGER NOT NULL,
    color TEXT NOT NULL,
    event_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_seating_table_event_id ON seating_table(event_id);

-- Per-user profile and preferences. Boolean flags are stored as 0/1
-- integers for driver portability.
CREATE TABLE IF NOT EXISTS user_settings (
    user_id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    phone TEXT,
    phone_verified INTEGER NOT NULL DEFAULT 0,
    notifications_enabled INTEGER NOT NULL DEFAULT 1,
    theme TEXT NOT NULL DEFAULT 'light',
    language TEXT NOT NULL DEFAULT 'en',
    table_naming TEXT,
    table_prefix TEXT,
    updated_at INTEGER NOT NULL
);
`
