package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/calsync/calsync-server/internal/domain"
	domainerrors "github.com/calsync/calsync-server/internal/errors"
	"github.com/calsync/calsync-server/internal/id"
	"github.com/calsync/calsync-server/internal/store"
	"github.com/calsync/calsync-server/internal/validation"
)

// Supported holiday years.
const (
	minYear = 1900
	maxYear = 2199
)

// CalendarStore is the persistence the calendar service needs.
type CalendarStore interface {
	store.UserStore
	store.CalendarStore
}

// CalendarService syncs public holidays into user calendars.
type CalendarService struct {
	store     CalendarStore
	holidays  HolidayProvider
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCalendarService creates a new calendar service.
func NewCalendarService(store CalendarStore, holidays HolidayProvider, validator *validation.Validator, logger *slog.Logger) *CalendarService {
	return &CalendarService{
		store:     store,
		holidays:  holidays,
		validator: validator,
		logger:    logger,
	}
}

// AddHolidaysToCalendar replaces the user's whole calendar with the requested
// holidays of a country and year.
//
// Steps, each aborting on failure:
//  1. Confirm the user exists.
//  2. Validate the request.
//  3. Fetch the country's holidays for the year.
//  4. Keep the holidays whose name was requested, in fetched order.
//  5. Delete all of the user's events and insert the kept holidays in one
//     transaction.
func (s *CalendarService) AddHolidaysToCalendar(ctx context.Context, userID int64, req domain.AddHolidaysRequest) (*domain.AddHolidaysResult, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	req.CountryCode = validation.NormalizeCountryCode(req.CountryCode)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	fetched, err := s.holidays.PublicHolidays(ctx, req.Year, req.CountryCode)
	if err != nil {
		return nil, domainerrors.UpstreamUnavailable(err, "fetch public holidays")
	}

	selected := domain.FilterHolidays(fetched, req.Holidays)

	syncID, err := id.NewSyncID()
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate sync id")
	}

	events := make([]domain.NewCalendarEvent, 0, len(selected))
	for _, h := range selected {
		date, err := h.ParsedDate()
		if err != nil {
			return nil, domainerrors.UpstreamUnavailable(err, fmt.Sprintf("holiday %q has invalid date", h.Name))
		}
		events = append(events, domain.NewCalendarEvent{
			UserID:      userID,
			Title:       h.Name,
			Date:        date,
			CountryCode: req.CountryCode,
			SyncID:      syncID,
		})
	}

	deleted, inserted, err := s.store.ReplaceUserEvents(ctx, userID, events)
	if err != nil {
		// The user can vanish between the lookup and the transaction.
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.UserNotFound(userID)
		}
		return nil, domainerrors.StoreFailure(err, "replace calendar events")
	}

	s.logger.Info("holidays synced to calendar",
		"user_id", userID,
		"country_code", req.CountryCode,
		"year", req.Year,
		"sync_id", syncID,
		"deleted", deleted,
		"inserted", inserted,
	)

	return &domain.AddHolidaysResult{
		Message:  fmt.Sprintf("Successfully added %d holidays to calendar", inserted),
		Count:    inserted,
		Holidays: selected,
	}, nil
}

// GetUserCalendarEvents returns all events owned by the user.
func (s *CalendarService) GetUserCalendarEvents(ctx context.Context, userID int64) ([]domain.CalendarEvent, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	events, err := s.store.ListByOwner(ctx, userID)
	if err != nil {
		return nil, domainerrors.StoreFailure(err, "list calendar events")
	}
	if events == nil {
		events = []domain.CalendarEvent{}
	}
	return events, nil
}

func (s *CalendarService) requireUser(ctx context.Context, userID int64) error {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.UserNotFound(userID)
		}
		return domainerrors.StoreFailure(err, "look up user")
	}
	return nil
}
