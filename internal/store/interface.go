// Package store defines the persistence interface for the calsync server.
package store

import (
	"context"

	"github.com/calsync/calsync-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	UserStore
	CalendarStore

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}

// UserStore persists users.
type UserStore interface {
	// CreateUser inserts a user and fills in its ID and CreatedAt.
	// Returns ErrAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, user *domain.User) error
	// GetUser returns ErrNotFound if no user has the id.
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// CalendarStore persists calendar events. Events are always scoped by owner.
type CalendarStore interface {
	// DeleteAllByOwner removes every event owned by userID and returns how many were removed.
	DeleteAllByOwner(ctx context.Context, userID int64) (int, error)
	// InsertMany inserts events and returns how many were inserted.
	InsertMany(ctx context.Context, events []domain.NewCalendarEvent) (int, error)
	// ListByOwner returns the user's events in insertion order. Never nil.
	ListByOwner(ctx context.Context, userID int64) ([]domain.CalendarEvent, error)
	// ReplaceUserEvents deletes all of the user's events and inserts events in
	// one transaction. On error nothing changes. Returns ErrNotFound if the
	// user does not exist.
	ReplaceUserEvents(ctx context.Context, userID int64, events []domain.NewCalendarEvent) (deleted, inserted int, err error)
}
