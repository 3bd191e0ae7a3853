// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

CreateSchema initializes all required tables and is safe to call multiple
times — every statement uses IF NOT EXISTS.

# Tables

  - account: Planner logins
  - event: Events owned by a planner
  - guest: Guests; guest.table_id is NULL when unassigned
  - seating_table: Tables with capacity, color and display position
  - user_settings: One row per user, upserted

# No Foreign Keys

Relationships are intentionally unenforced, mirroring a document store.
Cleanup is explicit: the store deletes dependents inside transactions, and
code never assumes the database will cascade anything.

# Portability

The DDL sticks to TEXT/INTEGER columns (timestamps as unix seconds,
booleans as 0/1) so the one schema runs on both SQLite and PostgreSQL.
*/
package db
