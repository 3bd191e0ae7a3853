// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store provides typed accessors for the four record collections
// (events, guests, seating tables, user settings) plus planner accounts.
// It is a thin pass-through to the SQL database; there are no enforced
// relational constraints, so every cross-record cleanup is explicit.
type Store struct {
	db *sql.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func now() int64 {
	return time.Now().Unix()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
