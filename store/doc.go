// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides typed accessors over the SQL database.

The data model is document-like: no foreign key constraints, with
referential cleanup done explicitly in transactions. Deleting an event
removes its guests and tables in one transaction; deleting a table clears
the table reference on its guests first.

# Assignment Semantics

A guest's table_id is NULL when unassigned. Clearing an assignment always
writes an explicit NULL:

	store.AssignGuest(ctx, guestID, nil)

# Batch Operations

ApplyOperations executes a heterogeneous list of batch.Operation values in
a single transaction, which is what makes a batch chunk atomic. Updates
are restricted to a per-collection column whitelist; a nil value becomes
an explicit NULL.

# Portability

Queries use $N placeholders and integer unix timestamps so the same code
runs on both PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite).
*/
package store
