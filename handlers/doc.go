// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Table Tamer API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - AuthHandler: Registration and login
  - EventHandler: Event CRUD with cascading delete
  - GuestHandler: Guest CRUD and bulk delete
  - TableHandler: Table queries, regeneration, single reassignment,
    deletion, auto-assign
  - AssignmentHandler: Batched assignment writes
  - ImportHandler: Spreadsheet upload and import persistence
  - PublicHandler: Unauthenticated guest lookup
  - SettingsHandler: User profile and preferences

# Response Envelope

Every JSON response carries a success flag:

	{"success": true, ...}
	{"success": false, "error": "Guest not found"}

Domain failures (not found, validation) are reported with HTTP 200 and
success=false; missing or invalid credentials use 401; malformed JSON uses
400; unexpected database errors use 500.

# Ownership

All authenticated routes filter by the caller's user ID. A resource owned
by someone else is reported as "not found" — the API never confirms that a
foreign resource exists.

# Table Naming

Regeneration names tables by convention: numbers ("Table 1"), letters
("Table A" ... "Table Z", "Table AA"), roman numerals ("Table I"), or a
custom prefix ("Mesa 1"). Colors come from a fixed 18-color palette,
cycling.
*/
package handlers
