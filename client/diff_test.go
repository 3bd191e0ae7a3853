// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletamer/server/models"
)

func changeMap(changes []models.GuestChange) map[string]*string {
	m := map[string]*string{}
	for _, c := range changes {
		m[c.GuestID] = c.TableID
	}
	return m
}

func TestDiffAssignmentsNoChanges(t *testing.T) {
	m := map[string]string{"g1": "t1", "g2": ""}
	assert.Empty(t, DiffAssignments(m, m))
}

func TestDiffAssignmentsBothDirections(t *testing.T) {
	original := map[string]string{
		"g1": "t1", // stays
		"g2": "t1", // becomes unassigned
		"g3": "",   // becomes seated
		"g4": "t2", // moves tables
	}
	working := map[string]string{
		"g1": "t1",
		"g2": "",
		"g3": "t2",
		"g4": "t1",
	}

	changes := DiffAssignments(original, working)
	require.Len(t, changes, 3)
	got := changeMap(changes)

	require.Contains(t, got, "g2")
	assert.Nil(t, got["g2"]) // unassignment is a nil table id

	require.Contains(t, got, "g3")
	require.NotNil(t, got["g3"])
	assert.Equal(t, "t2", *got["g3"])

	require.Contains(t, got, "g4")
	require.NotNil(t, got["g4"])
	assert.Equal(t, "t1", *got["g4"])
}

func TestDiffAssignmentsGuestMissingFromWorking(t *testing.T) {
	original := map[string]string{"g1": "t1", "g2": ""}
	working := map[string]string{}

	changes := DiffAssignments(original, working)
	require.Len(t, changes, 1)
	assert.Equal(t, "g1", changes[0].GuestID)
	assert.Nil(t, changes[0].TableID)
}

func TestDiffAssignmentsNewGuestInWorking(t *testing.T) {
	original := map[string]string{}
	working := map[string]string{"g1": "t1", "g2": ""}

	// g2 maps to "" on both sides (absent == unassigned), so only g1 moves.
	changes := DiffAssignments(original, working)
	require.Len(t, changes, 1)
	assert.Equal(t, "g1", changes[0].GuestID)
}
