// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletamer/server/models"
	"github.com/tabletamer/server/store"
	"github.com/tabletamer/server/testutil"
)

func TestBatchAssignAppliesAllChanges(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	userID, _ := testutil.CreateTestUser(t, conn, cfg, "pat@example.com")
	event := testutil.CreateTestEvent(t, conn, userID, "Summer Gala")
	table := testutil.CreateTestTable(t, conn, event.ID, userID, "Table 1", 8)
	seated := testutil.CreateTestGuest(t, conn, event.ID, userID, "Ada Lovelace", &table.ID)
	standing := testutil.CreateTestGuest(t, conn, event.ID, userID, "Alan Turing", nil)
	h := NewAssignmentHandler(store.New(conn))

	rec := httptest.NewRecorder()
	h.BatchAssign(rec, asUser(testutil.MakeRequest("POST", "/assignments/batch", models.BatchAssignRequest{
		GuestChanges: []models.GuestChange{
			{GuestID: seated.ID, TableID: nil},         // unassign
			{GuestID: standing.ID, TableID: &table.ID}, // seat
		},
	}, nil), userID))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp models.BatchAssignResponse
	testutil.DecodeJSON(t, rec, &resp)
	require.True(t, resp.Success)
	assert.Equal(t, 2, resp.TotalProcessed)

	s := store.New(conn)
	g1, err := s.GetGuest(context.Background(), seated.ID)
	require.NoError(t, err)
	assert.Nil(t, g1.TableID)

	g2, err := s.GetGuest(context.Background(), standing.ID)
	require.NoError(t, err)
	require.NotNil(t, g2.TableID)
	assert.Equal(t, table.ID, *g2.TableID)
}

func TestBatchAssignRejectsForeignGuests(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	ownerID, _ := testutil.CreateTestUser(t, conn, cfg, "owner@example.com")
	otherID, _ := testutil.CreateTestUser(t, conn, cfg, "other@example.com")
	event := testutil.CreateTestEvent(t, conn, ownerID, "Private Party")
	guest := testutil.CreateTestGuest(t, conn, event.ID, ownerID, "Ada Lovelace", nil)
	h := NewAssignmentHandler(store.New(conn))

	rec := httptest.NewRecorder()
	h.BatchAssign(rec, asUser(testutil.MakeRequest("POST", "/assignments/batch", models.BatchAssignRequest{
		GuestChanges: []models.GuestChange{{GuestID: guest.ID, TableID: nil}},
	}, nil), otherID))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp models.ErrorResponse
	testutil.DecodeJSON(t, rec, &resp)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "Guest not found")
}

func TestBatchAssignEmptyList(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	userID, _ := testutil.CreateTestUser(t, conn, cfg, "pat@example.com")
	h := NewAssignmentHandler(store.New(conn))

	rec := httptest.NewRecorder()
	h.BatchAssign(rec, asUser(testutil.MakeRequest("POST", "/assignments/batch", models.BatchAssignRequest{}, nil), userID))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp models.ErrorResponse
	testutil.DecodeJSON(t, rec, &resp)
	assert.False(t, resp.Success)
}
