package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/calsync/calsync-server/internal/domain"
	"github.com/calsync/calsync-server/internal/store"
)

const insertBatchSize = 100

func (r *eventRecord) toDomain() domain.CalendarEvent {
	d := r.Date.UTC()
	return domain.CalendarEvent{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Date:        time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		CountryCode: r.CountryCode,
		SyncID:      r.SyncID,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

func toRecords(events []domain.NewCalendarEvent) []eventRecord {
	now := time.Now().UTC()
	recs := make([]eventRecord, 0, len(events))
	for _, e := range events {
		recs = append(recs, eventRecord{
			UserID:      e.UserID,
			Title:       e.Title,
			Date:        e.Date,
			CountryCode: e.CountryCode,
			SyncID:      e.SyncID,
			CreatedAt:   now,
		})
	}
	return recs
}

// DeleteAllByOwner removes every calendar event owned by userID.
func (s *Store) DeleteAllByOwner(ctx context.Context, userID int64) (int, error) {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&eventRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete calendar_events: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

// InsertMany inserts events in a single transaction.
// Returns store.ErrNotFound if an event references a missing user.
func (s *Store) InsertMany(ctx context.Context, events []domain.NewCalendarEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	recs := toRecords(events)
	if err := s.db.WithContext(ctx).CreateInBatches(&recs, insertBatchSize).Error; err != nil {
		return 0, fmt.Errorf("insert calendar_events: %w", translate(err))
	}
	return len(recs), nil
}

// ListByOwner returns the user's events in insertion order.
func (s *Store) ListByOwner(ctx context.Context, userID int64) ([]domain.CalendarEvent, error) {
	var recs []eventRecord
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list calendar_events: %w", err)
	}

	events := make([]domain.CalendarEvent, 0, len(recs))
	for i := range recs {
		events = append(events, recs[i].toDomain())
	}
	return events, nil
}

// ReplaceUserEvents swaps the user's whole calendar for events atomically.
// The owner row is locked FOR UPDATE first, so concurrent replaces for the
// same user run one after another.
func (s *Store) ReplaceUserEvents(ctx context.Context, userID int64, events []domain.NewCalendarEvent) (deleted, inserted int, err error) {
	for i := range events {
		if events[i].UserID != userID {
			return 0, 0, fmt.Errorf("event %d owned by user %d, want %d: %w", i, events[i].UserID, userID, store.ErrInvalidInput)
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner userRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&owner, userID).Error; err != nil {
			return fmt.Errorf("lock user %d: %w", userID, translate(err))
		}

		res := tx.Where("user_id = ?", userID).Delete(&eventRecord{})
		if res.Error != nil {
			return fmt.Errorf("delete calendar_events: %w", res.Error)
		}
		deleted = int(res.RowsAffected)

		if len(events) == 0 {
			inserted = 0
			return nil
		}
		recs := toRecords(events)
		if err := tx.CreateInBatches(&recs, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert calendar_events: %w", translate(err))
		}
		inserted = len(recs)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	s.logger.Debug("replaced calendar events",
		"user_id", userID,
		"deleted", deleted,
		"inserted", inserted,
	)

	return deleted, inserted, nil
}
