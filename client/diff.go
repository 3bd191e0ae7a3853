// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import "github.com/tabletamer/server/models"

// DiffAssignments compares two guest→table mappings and returns one change
// per guest whose seat differs, in no particular order. The empty string
// means unassigned; a guest moving to "" yields a change with a nil
// TableID, which the server writes as an explicit NULL.
//
// Pure function: save logic is built on it and it is tested in isolation.
func DiffAssignments(original, working map[string]string) []models.GuestChange {
	var changes []models.GuestChange

	for guestID, to := range working {
		if original[guestID] == to {
			continue
		}
		changes = append(changes, change(guestID, to))
	}

	// Guests present only in the original mapping became unassigned.
	for guestID := range original {
		if _, ok := working[guestID]; !ok && original[guestID] != "" {
			changes = append(changes, change(guestID, ""))
		}
	}
	return changes
}

func change(guestID, tableID string) models.GuestChange {
	c := models.GuestChange{GuestID: guestID}
	if tableID != "" {
		c.TableID = &tableID
	}
	return c
}
