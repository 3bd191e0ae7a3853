// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires HTTP routes to their handlers.

NewRouter builds the full ServeMux using Go 1.22 method patterns. Private
routes are wrapped with logging + auth, public ones with logging only:

	POST /auth/register, /auth/login        authentication
	GET/POST /events, /events/{id}          event CRUD
	GET/POST/DELETE /guests[...]            guest CRUD and bulk delete
	GET/POST/PATCH /tables[...]             seating queries and edits
	POST /assignments/batch                 batched assignment writes
	POST /import, /import/save              spreadsheet import
	GET/PUT /settings                       user preferences
	GET /public/events/{id}[...]            unauthenticated guest lookup
	GET /health, /metrics                   operational endpoints
*/
package router
