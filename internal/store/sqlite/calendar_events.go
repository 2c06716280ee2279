package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/calsync/calsync-server/internal/domain"
	"github.com/calsync/calsync-server/internal/store"
)

const eventColumns = `id, user_id, title, date, country_code, sync_id, created_at`

func scanEvent(scanner interface{ Scan(dest ...any) error }) (domain.CalendarEvent, error) {
	var (
		e         domain.CalendarEvent
		date      string
		createdAt string
	)
	if err := scanner.Scan(&e.ID, &e.UserID, &e.Title, &date, &e.CountryCode, &e.SyncID, &createdAt); err != nil {
		return e, err
	}

	var err error
	e.Date, err = time.Parse(domain.DateLayout, date)
	if err != nil {
		return e, fmt.Errorf("parse event date %q: %w", date, err)
	}
	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return e, err
	}
	return e, nil
}

// DeleteAllByOwner removes every calendar event owned by userID.
func (s *Store) DeleteAllByOwner(ctx context.Context, userID int64) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete calendar_events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

// InsertMany inserts events in a single transaction.
// Returns store.ErrNotFound if an event references a missing user.
func (s *Store) InsertMany(ctx context.Context, events []domain.NewCalendarEvent) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	n, err := insertEvents(ctx, tx, events)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

// ListByOwner returns the user's events in insertion order.
func (s *Store) ListByOwner(ctx context.Context, userID int64) ([]domain.CalendarEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM calendar_events WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query calendar_events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.CalendarEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calendar_event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ReplaceUserEvents swaps the user's whole calendar for events atomically.
func (s *Store) ReplaceUserEvents(ctx context.Context, userID int64, events []domain.NewCalendarEvent) (deleted, inserted int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, userID).Scan(&exists); err != nil {
		return 0, 0, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return 0, 0, store.ErrNotFound
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM calendar_events WHERE user_id = ?`, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("delete calendar_events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, 0, fmt.Errorf("rows affected: %w", err)
	}
	deleted = int(n)

	for i := range events {
		if events[i].UserID != userID {
			return 0, 0, fmt.Errorf("event %d owned by user %d, want %d: %w", i, events[i].UserID, userID, store.ErrInvalidInput)
		}
	}

	inserted, err = insertEvents(ctx, tx, events)
	if err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit: %w", err)
	}

	s.logger.Debug("replaced calendar events",
		"user_id", userID,
		"deleted", deleted,
		"inserted", inserted,
	)

	return deleted, inserted, nil
}

func insertEvents(ctx context.Context, tx *sql.Tx, events []domain.NewCalendarEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO calendar_events (user_id, title, date, country_code, sync_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := formatTime(time.Now())
	for _, e := range events {
		_, err := stmt.ExecContext(ctx,
			e.UserID,
			e.Title,
			e.Date.Format(domain.DateLayout),
			e.CountryCode,
			e.SyncID,
			now,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return 0, store.ErrNotFound.WithCause(err)
			}
			return 0, fmt.Errorf("insert calendar_event: %w", err)
		}
	}
	return len(events), nil
}
