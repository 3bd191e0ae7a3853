// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/tabletamer/server/batch"
	"github.com/tabletamer/server/db"
	"github.com/tabletamer/server/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.CreateSchema(conn))
	return New(conn)
}

func strptr(s string) *string { return &s }

func seedEvent(t *testing.T, s *Store, userID string) *models.Event {
	t.Helper()
	e := &models.Event{Name: "Summer Gala", UserID: userID}
	require.NoError(t, s.CreateEvent(context.Background(), e))
	return e
}

func seedGuest(t *testing.T, s *Store, eventID, userID, name string, tableID *string) *models.Guest {
	t.Helper()
	g := &models.Guest{FullName: name, EventID: eventID, UserID: userID, TableID: tableID}
	require.NoError(t, s.CreateGuest(context.Background(), g))
	return g
}

func seedTable(t *testing.T, s *Store, eventID, userID, name string) *models.Table {
	t.Helper()
	tb := &models.Table{Name: name, Capacity: 8, Color: "#FF6B6B", EventID: eventID, UserID: userID}
	require.NoError(t, s.CreateTable(context.Background(), tb))
	return tb
}

func TestEventCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := &models.Event{Name: "Reception", Description: strptr("Evening party"), UserID: "u1"}
	require.NoError(t, s.CreateEvent(ctx, e))
	assert.NotEmpty(t, e.ID)
	assert.NotZero(t, e.CreatedAt)

	got, err := s.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reception", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Evening party", *got.Description)
	assert.Nil(t, got.Theme)

	got.Name = "Wedding Reception"
	got.Theme = strptr("rustic")
	require.NoError(t, s.UpdateEvent(ctx, got))

	again, err := s.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wedding Reception", again.Name)
	require.NotNil(t, again.Theme)
	assert.Equal(t, "rustic", *again.Theme)

	_, err = s.GetEvent(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListEventsFiltersByOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedEvent(t, s, "alice")
	seedEvent(t, s, "alice")
	seedEvent(t, s, "bob")

	events, err := s.ListEvents(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = s.ListEvents(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDeleteEventCascade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := seedEvent(t, s, "u1")
	other := seedEvent(t, s, "u1")

	tb := seedTable(t, s, e.ID, "u1", "Table 1")
	seedGuest(t, s, e.ID, "u1", "Ada Lovelace", &tb.ID)
	seedGuest(t, s, e.ID, "u1", "Alan Turing", nil)
	keep := seedGuest(t, s, other.ID, "u1", "Grace Hopper", nil)

	guests, tables, err := s.DeleteEventCascade(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, guests)
	assert.Equal(t, 1, tables)

	// Follow-up list queries against each collection come back empty.
	left, err := s.ListGuestsByEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	tbls, err := s.ListTablesByEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, tbls)

	_, err = s.GetEvent(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The other event is untouched.
	_, err = s.GetGuest(ctx, keep.ID)
	assert.NoError(t, err)
}

func TestAssignGuestExplicitNull(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := seedEvent(t, s, "u1")
	tb := seedTable(t, s, e.ID, "u1", "Table A")
	g := seedGuest(t, s, e.ID, "u1", "Ada Lovelace", nil)

	require.NoError(t, s.AssignGuest(ctx, g.ID, &tb.ID))
	got, err := s.GetGuest(ctx, g.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TableID)
	assert.Equal(t, tb.ID, *got.TableID)

	// Clearing writes an explicit NULL, so the guest shows up unassigned.
	require.NoError(t, s.AssignGuest(ctx, g.ID, nil))
	got, err = s.GetGuest(ctx, g.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TableID)

	unassigned, err := s.ListUnassignedGuests(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, unassigned, 1)
	assert.Equal(t, g.ID, unassigned[0].ID)
}

func TestDeleteTableUnassignsGuests(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := seedEvent(t, s, "u1")
	tb := seedTable(t, s, e.ID, "u1", "Table 1")
	g1 := seedGuest(t, s, e.ID, "u1", "Ada Lovelace", &tb.ID)
	g2 := seedGuest(t, s, e.ID, "u1", "Alan Turing", &tb.ID)
	seedGuest(t, s, e.ID, "u1", "Grace Hopper", nil)

	unassigned, err := s.DeleteTable(ctx, tb.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, unassigned)

	_, err = s.GetTable(ctx, tb.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Both former occupants appear in the unassigned query.
	free, err := s.ListUnassignedGuests(ctx, e.ID)
	require.NoError(t, err)
	ids := []string{free[0].ID, free[1].ID, free[2].ID}
	assert.Contains(t, ids, g1.ID)
	assert.Contains(t, ids, g2.ID)
}

func TestReplaceTablesUnassignsEveryGuest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := seedEvent(t, s, "u1")
	old := seedTable(t, s, e.ID, "u1", "Old Table")
	seedGuest(t, s, e.ID, "u1", "Ada Lovelace", &old.ID)
	seedGuest(t, s, e.ID, "u1", "Alan Turing", &old.ID)

	specs := []TableSpec{
		{Name: "Table 1", Capacity: 8, Color: "#FF6B6B"},
		{Name: "Table 2", Capacity: 8, Color: "#4ECDC4"},
		{Name: "Table 3", Capacity: 8, Color: "#45B7D1"},
	}
	tables, err := s.ReplaceTables(ctx, e.ID, "u1", specs)
	require.NoError(t, err)
	require.Len(t, tables, 3)

	// No guest retains a stale table reference.
	free, err := s.ListUnassignedGuests(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, free, 2)

	// Listing preserves creation order for index-based remapping.
	listed, err := s.ListTablesByEvent(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, tb := range listed {
		assert.Equal(t, specs[i].Name, tb.Name)
	}
}

func TestApplyOperationsAtomicChunk(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := seedEvent(t, s, "u1")
	tb := seedTable(t, s, e.ID, "u1", "Table 1")
	g1 := seedGuest(t, s, e.ID, "u1", "Ada Lovelace", nil)
	g2 := seedGuest(t, s, e.ID, "u1", "Alan Turing", &tb.ID)

	ops := []batch.Operation{
		{Kind: batch.KindUpdate, Collection: CollectionGuests, ID: g1.ID, Data: map[string]any{"table_id": tb.ID}},
		{Kind: batch.KindUpdate, Collection: CollectionGuests, ID: g2.ID, Data: map[string]any{"table_id": nil}},
	}
	require.NoError(t, s.ApplyOperations(ctx, ops))

	got1, err := s.GetGuest(ctx, g1.ID)
	require.NoError(t, err)
	require.NotNil(t, got1.TableID)
	assert.Equal(t, tb.ID, *got1.TableID)

	got2, err := s.GetGuest(ctx, g2.ID)
	require.NoError(t, err)
	assert.Nil(t, got2.TableID)
}

func TestApplyOperationsRollsBackOnFailure(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := seedEvent(t, s, "u1")
	tb := seedTable(t, s, e.ID, "u1", "Table 1")
	g := seedGuest(t, s, e.ID, "u1", "Ada Lovelace", nil)

	ops := []batch.Operation{
		{Kind: batch.KindUpdate, Collection: CollectionGuests, ID: g.ID, Data: map[string]any{"table_id": tb.ID}},
		{Kind: batch.KindUpdate, Collection: CollectionGuests, ID: "no-such-guest", Data: map[string]any{"table_id": tb.ID}},
	}
	err := s.ApplyOperations(ctx, ops)
	require.Error(t, err)

	// The first update must not have leaked out of the transaction.
	got, err := s.GetGuest(ctx, g.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TableID)
}

func TestApplyOperationsRejectsUnknownColumn(t *testing.T) {
	s := newTestStore(t)
	e := seedEvent(t, s, "u1")
	g := seedGuest(t, s, e.ID, "u1", "Ada Lovelace", nil)

	err := s.ApplyOperations(context.Background(), []batch.Operation{
		{Kind: batch.KindUpdate, Collection: CollectionGuests, ID: g.ID, Data: map[string]any{"user_id": "attacker"}},
	})
	assert.Error(t, err)
}

func TestFindGuestByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := seedEvent(t, s, "u1")
	g := seedGuest(t, s, e.ID, "u1", "Ada Lovelace", nil)

	got, err := s.FindGuestByName(ctx, e.ID, "ada lovelace")
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)

	_, err = s.FindGuestByName(ctx, e.ID, "Nobody Here")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSuggestGuestNames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := seedEvent(t, s, "u1")
	seedGuest(t, s, e.ID, "u1", "Ada Lovelace", nil)
	seedGuest(t, s, e.ID, "u1", "Adam West", nil)
	seedGuest(t, s, e.ID, "u1", "Grace Hopper", nil)

	names, err := s.SuggestGuestNames(ctx, e.ID, "ada", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada Lovelace", "Adam West"}, names)

	names, err = s.SuggestGuestNames(ctx, e.ID, "zzz", 10)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Defaults before any save.
	us, err := s.GetSettings(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, us.NotificationsEnabled)
	assert.Equal(t, "light", us.Theme)
	assert.False(t, us.PhoneVerified)

	us.DisplayName = "Pat Planner"
	us.Email = "pat@example.com"
	us.Phone = strptr("+15551234567")
	us.PhoneVerified = true
	us.Theme = "dark"
	us.TableNaming = strptr(models.NamingRoman)
	require.NoError(t, s.UpsertSettings(ctx, us))

	got, err := s.GetSettings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Pat Planner", got.DisplayName)
	assert.True(t, got.PhoneVerified)
	assert.Equal(t, "dark", got.Theme)
	require.NotNil(t, got.TableNaming)
	assert.Equal(t, models.NamingRoman, *got.TableNaming)

	// Upsert again overwrites in place.
	got.Theme = "light"
	require.NoError(t, s.UpsertSettings(ctx, got))
	again, err := s.GetSettings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "light", again.Theme)
}

func TestAccounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &models.Account{Email: "  Pat@Example.com ", PasswordHash: "hash", DisplayName: "Pat"}
	require.NoError(t, s.CreateAccount(ctx, a))
	assert.Equal(t, "pat@example.com", a.Email)

	got, err := s.GetAccountByEmail(ctx, "PAT@example.COM")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = s.GetAccountByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	// Unique email constraint
	dup := &models.Account{Email: "pat@example.com", PasswordHash: "hash2", DisplayName: "Imposter"}
	assert.Error(t, s.CreateAccount(ctx, dup))
}
