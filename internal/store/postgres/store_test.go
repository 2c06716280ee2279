package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calsync/calsync-server/internal/domain"
	"github.com/calsync/calsync-server/internal/store"
)

// newTestStore connects to the database named by CALSYNC_TEST_POSTGRES_DSN
// and empties both tables. Tests skip when it is unset.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("CALSYNC_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CALSYNC_TEST_POSTGRES_DSN not set")
	}

	s, err := Open(dsn, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.db.Exec("TRUNCATE calendar_events, users RESTART IDENTITY CASCADE").Error)
	return s
}

func TestStore_Users(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &domain.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, s.CreateUser(ctx, u))
	assert.NotZero(t, u.ID)

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	err = s.CreateUser(ctx, &domain.User{Name: "Alice 2", Email: "ALICE@example.com"})
	assert.True(t, errors.Is(err, store.ErrAlreadyExists), "got %v", err)

	_, err = s.GetUser(ctx, u.ID+1000)
	assert.True(t, errors.Is(err, store.ErrNotFound), "got %v", err)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestStore_ReplaceUserEvents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &domain.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, s.CreateUser(ctx, u))

	newYear := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.InsertMany(ctx, []domain.NewCalendarEvent{
		{UserID: u.ID, Title: "Old", Date: newYear, SyncID: "sync-old"},
	})
	require.NoError(t, err)

	deleted, inserted, err := s.ReplaceUserEvents(ctx, u.ID, []domain.NewCalendarEvent{
		{UserID: u.ID, Title: "New Year", Date: newYear, CountryCode: "US", SyncID: "sync-new"},
		{UserID: u.ID, Title: "Christmas", Date: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), CountryCode: "US", SyncID: "sync-new"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.Equal(t, 2, inserted)

	events, err := s.ListByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "New Year", events[0].Title)
	assert.Equal(t, newYear, events[0].Date)
	assert.Equal(t, "sync-new", events[1].SyncID)

	_, _, err = s.ReplaceUserEvents(ctx, u.ID+1000, nil)
	assert.True(t, errors.Is(err, store.ErrNotFound), "got %v", err)

	n, err := s.DeleteAllByOwner(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
