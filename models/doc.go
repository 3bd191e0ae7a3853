// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Account: planner login (password hash never serialized)
  - Event: a party/wedding/banquet owned by a planner
  - Guest: one attendee; TableID is nil when unassigned
  - Table: a seating table with capacity and display color
  - UserSettings: profile, notification, theme and naming preferences

# Wire Conventions

JSON field names are camelCase. Every response type carries a Success
flag; failures use ErrorResponse. Optional domain fields are pointers
with omitempty.

Update-request fields are pointers so that an omitted field means "leave
unchanged" while an explicit empty value clears.

# Constants

Table naming conventions:

	NamingNumbers = "numbers"
	NamingLetters = "letters"
	NamingRoman   = "roman"
	NamingCustom  = "custom"
*/
package models
