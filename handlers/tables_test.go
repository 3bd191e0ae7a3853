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

func TestGetTablesNestsGuests(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	userID, _ := testutil.CreateTestUser(t, conn, cfg, "pat@example.com")
	event := testutil.CreateTestEvent(t, conn, userID, "Summer Gala")
	table := testutil.CreateTestTable(t, conn, event.ID, userID, "Table 1", 8)
	testutil.CreateTestGuest(t, conn, event.ID, userID, "Ada Lovelace", &table.ID)
	testutil.CreateTestGuest(t, conn, event.ID, userID, "Alan Turing", nil)
	h := NewTableHandler(store.New(conn))

	rec := httptest.NewRecorder()
	h.GetTables(rec, asUser(testutil.MakeRequest("GET", "/tables?eventId="+event.ID, nil, nil), userID))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp models.TablesResponse
	testutil.DecodeJSON(t, rec, &resp)
	require.True(t, resp.Success)
	require.Len(t, resp.Tables, 1)
	require.Len(t, resp.Tables[0].Guests, 1)
	assert.Equal(t, "Ada Lovelace", resp.Tables[0].Guests[0].FullName)
	require.Len(t, resp.UnassignedGuests, 1)
	assert.Equal(t, "Alan Turing", resp.UnassignedGuests[0].FullName)
}

func TestGenerateTablesReplacesAndUnassigns(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	userID, _ := testutil.CreateTestUser(t, conn, cfg, "pat@example.com")
	event := testutil.CreateTestEvent(t, conn, userID, "Summer Gala")
	old := testutil.CreateTestTable(t, conn, event.ID, userID, "Old Table", 8)
	testutil.CreateTestGuest(t, conn, event.ID, userID, "Ada Lovelace", &old.ID)
	h := NewTableHandler(store.New(conn))

	rec := httptest.NewRecorder()
	h.GenerateTables(rec, asUser(testutil.MakeRequest("POST", "/tables", models.GenerateTablesRequest{
		EventID:          event.ID,
		NumTables:        3,
		NamingConvention: models.NamingLetters,
	}, nil), userID))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp models.GenerateTablesResponse
	testutil.DecodeJSON(t, rec, &resp)
	require.True(t, resp.Success)
	require.Len(t, resp.Tables, 3)
	assert.Equal(t, "Table A", resp.Tables[0].Name)
	assert.Equal(t, "Table C", resp.Tables[2].Name)

	// Every guest lost their seat.
	s := store.New(conn)
	free, err := s.ListUnassignedGuests(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Len(t, free, 1)
}

func TestGenerateTablesUsesSavedPreference(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	userID, _ := testutil.CreateTestUser(t, conn, cfg, "pat@example.com")
	event := testutil.CreateTestEvent(t, conn, userID, "Summer Gala")
	s := store.New(conn)

	naming := models.NamingRoman
	settings, err := s.GetSettings(context.Background(), userID)
	require.NoError(t, err)
	settings.TableNaming = &naming
	require.NoError(t, s.UpsertSettings(context.Background(), settings))

	h := NewTableHandler(s)
	rec := httptest.NewRecorder()
	h.GenerateTables(rec, asUser(testutil.MakeRequest("POST", "/tables", models.GenerateTablesRequest{
		EventID:   event.ID,
		NumTables: 4,
	}, nil), userID))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp models.GenerateTablesResponse
	testutil.DecodeJSON(t, rec, &resp)
	require.True(t, resp.Success)
	assert.Equal(t, "Table IV", resp.Tables[3].Name)
}

func TestGenerateTablesBounds(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	userID, _ := testutil.CreateTestUser(t, conn, cfg, "pat@example.com")
	event := testutil.CreateTestEvent(t, conn, userID, "Summer Gala")
	h := NewTableHandler(store.New(conn))

	for _, n := range []int{0, 51, -3} {
		rec := httptest.NewRecorder()
		h.GenerateTables(rec, asUser(testutil.MakeRequest("POST", "/tables", models.GenerateTablesRequest{
			EventID:   event.ID,
			NumTables: n,
		}, nil), userID))
		testutil.AssertStatus(t, rec, http.StatusOK)

		var resp models.ErrorResponse
		testutil.DecodeJSON(t, rec, &resp)
		assert.False(t, resp.Success, "numTables=%d should be rejected", n)
	}
}

func TestAssignGuestCrossEventRejected(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	userID, _ := testutil.CreateTestUser(t, conn, cfg, "pat@example.com")
	eventA := testutil.CreateTestEvent(t, conn, userID, "Event A")
	eventB := testutil.CreateTestEvent(t, conn, userID, "Event B")
	guest := testutil.CreateTestGuest(t, conn, eventA.ID, userID, "Ada Lovelace", nil)
	foreign := testutil.CreateTestTable(t, conn, eventB.ID, userID, "Table 1", 8)
	h := NewTableHandler(store.New(conn))

	rec := httptest.NewRecorder()
	h.AssignGuest(rec, asUser(testutil.MakeRequest("PATCH", "/tables", models.AssignGuestRequest{
		GuestID: guest.ID,
		TableID: &foreign.ID,
	}, nil), userID))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp models.ErrorResponse
	testutil.DecodeJSON(t, rec, &resp)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "different event")
}

func TestAssignGuestNullUnassigns(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	userID, _ := testutil.CreateTestUser(t, conn, cfg, "pat@example.com")
	event := testutil.CreateTestEvent(t, conn, userID, "Summer Gala")
	table := testutil.CreateTestTable(t, conn, event.ID, userID, "Table 1", 8)
	guest := testutil.CreateTestGuest(t, conn, event.ID, userID, "Ada Lovelace", &table.ID)
	h := NewTableHandler(store.New(conn))

	rec := httptest.NewRecorder()
	h.AssignGuest(rec, asUser(testutil.MakeRequest("PATCH", "/tables", models.AssignGuestRequest{
		GuestID: guest.ID,
		TableID: nil,
	}, nil), userID))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp models.AssignResponse
	testutil.DecodeJSON(t, rec, &resp)
	require.True(t, resp.Success)
	assert.Nil(t, resp.Guest.TableID)
}

func TestDeleteTableUnassignsOccupants(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	userID, _ := testutil.CreateTestUser(t, conn, cfg, "pat@example.com")
	event := testutil.CreateTestEvent(t, conn, userID, "Summer Gala")
	table := testutil.CreateTestTable(t, conn, event.ID, userID, "Table 1", 8)
	guest := testutil.CreateTestGuest(t, conn, event.ID, userID, "Ada Lovelace", &table.ID)
	h := NewTableHandler(store.New(conn))

	req := testutil.MakeRequest("DELETE", "/tables/"+table.ID, nil, nil)
	req.SetPathValue("id", table.ID)
	rec := httptest.NewRecorder()
	h.DeleteTable(rec, asUser(req, userID))
	testutil.AssertStatus(t, rec, http.StatusOK)

	s := store.New(conn)
	got, err := s.GetGuest(context.Background(), guest.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TableID)
}

func TestAutoAssignRoundRobin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	userID, _ := testutil.CreateTestUser(t, conn, cfg, "pat@example.com")
	event := testutil.CreateTestEvent(t, conn, userID, "Summer Gala")
	t1 := testutil.CreateTestTable(t, conn, event.ID, userID, "Table 1", 2)
	t2 := testutil.CreateTestTable(t, conn, event.ID, userID, "Table 2", 2)
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		testutil.CreateTestGuest(t, conn, event.ID, userID, "Guest "+name, nil)
	}
	h := NewTableHandler(store.New(conn))

	rec := httptest.NewRecorder()
	h.AutoAssign(rec, asUser(testutil.MakeRequest("POST", "/tables/auto-assign", models.AutoAssignRequest{
		EventID: event.ID,
	}, nil), userID))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp models.AutoAssignResponse
	testutil.DecodeJSON(t, rec, &resp)
	require.True(t, resp.Success)
	// Four seats total; the fifth guest stays unassigned.
	assert.Equal(t, 4, resp.Assigned)

	s := store.New(conn)
	g1, err := s.ListGuestsByTable(context.Background(), t1.ID)
	require.NoError(t, err)
	g2, err := s.ListGuestsByTable(context.Background(), t2.ID)
	require.NoError(t, err)
	assert.Len(t, g1, 2)
	assert.Len(t, g2, 2)
}
