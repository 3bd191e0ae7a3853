// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is the Go SDK for the seating editor workflow.

# Authentication

AuthState decouples token arrival from API usage: calls block on an
explicit ready signal rather than polling.

	auth := client.NewAuthState()
	api := client.New("https://api.example.com", auth)
	// later, when login completes:
	auth.SetToken(token)

# The Assignment Editor

Editor keeps two snapshots of an event's seating — as loaded and as
edited — and computes the minimal change set on save:

	ed := client.NewEditor(api, eventID)
	ed.Load(ctx)
	ed.MoveGuest(guestID, tableID)
	result, err := ed.Save(ctx)

Save recreates the table set first when it changed (remapping positions to
the fresh server IDs), diffs the assignments with DiffAssignments, pushes
the diff through the batch endpoint with a retry loop for rate limiting,
and finally re-fetches canonical state. A partial batch failure is a
qualified success (SaveResult.Partial); a full failure leaves the editor
dirty so the user can retry.

The Editor is single-session state and not safe for concurrent use.
*/
package client
