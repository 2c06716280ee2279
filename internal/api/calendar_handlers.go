package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/calsync/calsync-server/internal/domain"
)

func (s *Server) registerCalendarRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "addHolidaysToCalendar",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{userId}/calendar/holidays",
		Summary:     "Sync holidays into calendar",
		Description: "Replaces the user's calendar with the named public holidays of a country and year",
		Tags:        []string{"Calendar"},
	}, s.handleAddHolidaysToCalendar)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCalendarEvents",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userId}/calendar/events",
		Summary:     "List calendar events",
		Description: "Returns the events in the user's calendar in insertion order",
		Tags:        []string{"Calendar"},
	}, s.handleListCalendarEvents)
}

// === DTOs ===

// AddHolidaysRequest is the request body for a calendar sync.
type AddHolidaysRequest struct {
	CountryCode string   `json:"countryCode" doc:"ISO 3166-1 alpha-2 country code"`
	Year        int      `json:"year" doc:"Calendar year"`
	Holidays    []string `json:"holidays" doc:"Holiday names to keep; an empty list clears the calendar"`
}

// AddHolidaysInput wraps the sync request for Huma.
type AddHolidaysInput struct {
	UserID int64 `path:"userId" minimum:"1" doc:"User ID"`
	Body   AddHolidaysRequest
}

// AddHolidaysOutput wraps the sync result for Huma.
type AddHolidaysOutput struct {
	Body *domain.AddHolidaysResult
}

// ListCalendarEventsResponse contains a user's calendar events.
type ListCalendarEventsResponse struct {
	Events []domain.CalendarEvent `json:"events" doc:"Calendar events"`
}

// ListCalendarEventsOutput wraps the events response for Huma.
type ListCalendarEventsOutput struct {
	Body ListCalendarEventsResponse
}

// === Handlers ===

func (s *Server) handleAddHolidaysToCalendar(ctx context.Context, input *AddHolidaysInput) (*AddHolidaysOutput, error) {
	result, err := s.services.Calendar.AddHolidaysToCalendar(ctx, input.UserID, domain.AddHolidaysRequest{
		CountryCode: input.Body.CountryCode,
		Year:        input.Body.Year,
		Holidays:    input.Body.Holidays,
	})
	if err != nil {
		return nil, err
	}
	return &AddHolidaysOutput{Body: result}, nil
}

func (s *Server) handleListCalendarEvents(ctx context.Context, input *UserPathInput) (*ListCalendarEventsOutput, error) {
	events, err := s.services.Calendar.GetUserCalendarEvents(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &ListCalendarEventsOutput{Body: ListCalendarEventsResponse{Events: events}}, nil
}
