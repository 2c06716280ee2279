package api

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calsync/calsync-server/internal/domain"
)

func syncPath(userID int64) string {
	return "/api/v1/users/" + strconv.FormatInt(userID, 10) + "/calendar/holidays"
}

func eventsPath(userID int64) string {
	return "/api/v1/users/" + strconv.FormatInt(userID, 10) + "/calendar/events"
}

func TestAddHolidaysToCalendar_Success(t *testing.T) {
	ts := setupTestServer(t)
	userID := ts.createUser(t, "Ada", "ada@example.com")

	resp := ts.api.Post(syncPath(userID), map[string]any{
		"countryCode": "US",
		"year":        2025,
		"holidays":    []string{"New Year"},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	result := decodeData[domain.AddHolidaysResult](t, resp)
	assert.Equal(t, "Successfully added 1 holidays to calendar", result.Message)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, []domain.Holiday{{Name: "New Year", Date: "2025-01-01"}}, result.Holidays)

	resp = ts.api.Get(eventsPath(userID))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	events := decodeData[ListCalendarEventsResponse](t, resp).Events
	require.Len(t, events, 1)
	assert.Equal(t, "New Year", events[0].Title)
	assert.Equal(t, userID, events[0].UserID)
	assert.Equal(t, "US", events[0].CountryCode)
	assert.Equal(t, "2025-01-01", events[0].Date.Format(domain.DateLayout))
	assert.True(t, strings.HasPrefix(events[0].SyncID, "sync-"))
}

func TestAddHolidaysToCalendar_ReplacesPreviousSync(t *testing.T) {
	ts := setupTestServer(t)
	userID := ts.createUser(t, "Ada", "ada@example.com")

	first := ts.api.Post(syncPath(userID), map[string]any{
		"countryCode": "US", "year": 2025, "holidays": []string{"New Year", "Christmas"},
	})
	require.Equal(t, http.StatusOK, first.Code)

	second := ts.api.Post(syncPath(userID), map[string]any{
		"countryCode": "de", "year": 2026, "holidays": []string{"Christmas"},
	})
	require.Equal(t, http.StatusOK, second.Code, second.Body.String())

	events := decodeData[ListCalendarEventsResponse](t, ts.api.Get(eventsPath(userID))).Events
	require.Len(t, events, 1)
	assert.Equal(t, "Christmas", events[0].Title)
	assert.Equal(t, "DE", events[0].CountryCode)
	assert.Equal(t, "2026-12-25", events[0].Date.Format(domain.DateLayout))
}

func TestAddHolidaysToCalendar_EmptySelectionClearsCalendar(t *testing.T) {
	ts := setupTestServer(t)
	userID := ts.createUser(t, "Ada", "ada@example.com")

	resp := ts.api.Post(syncPath(userID), map[string]any{
		"countryCode": "US", "year": 2025, "holidays": []string{"New Year"},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post(syncPath(userID), map[string]any{
		"countryCode": "US", "year": 2025, "holidays": []string{},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	result := decodeData[domain.AddHolidaysResult](t, resp)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Holidays)
	assert.Empty(t, result.Holidays)

	events := decodeData[ListCalendarEventsResponse](t, ts.api.Get(eventsPath(userID))).Events
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestAddHolidaysToCalendar_UnknownUser(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post(syncPath(999), map[string]any{
		"countryCode": "US", "year": 2025, "holidays": []string{"New Year"},
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "USER_NOT_FOUND", env.Code)
	assert.Equal(t, int32(0), ts.upstream.holidayCalls.Load(), "no upstream call for a missing user")
}

func TestAddHolidaysToCalendar_UnknownUserWithInvalidBody(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post(syncPath(999), map[string]any{
		"countryCode": "USA", "year": 1492, "holidays": []string{},
	})

	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())
	assert.Equal(t, "USER_NOT_FOUND", decodeEnvelope(t, resp).Code)
	assert.Equal(t, int32(0), ts.upstream.holidayCalls.Load())
}

func TestAddHolidaysToCalendar_UpstreamFailureKeepsEvents(t *testing.T) {
	ts := setupTestServer(t)
	userID := ts.createUser(t, "Ada", "ada@example.com")

	resp := ts.api.Post(syncPath(userID), map[string]any{
		"countryCode": "US", "year": 2025, "holidays": []string{"New Year"},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	ts.upstream.failHolidays.Store(true)
	resp = ts.api.Post(syncPath(userID), map[string]any{
		"countryCode": "US", "year": 2025, "holidays": []string{"Christmas"},
	})

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", decodeEnvelope(t, resp).Code)

	events := decodeData[ListCalendarEventsResponse](t, ts.api.Get(eventsPath(userID))).Events
	require.Len(t, events, 1)
	assert.Equal(t, "New Year", events[0].Title)
}

func TestAddHolidaysToCalendar_Validation(t *testing.T) {
	ts := setupTestServer(t)
	userID := ts.createUser(t, "Ada", "ada@example.com")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"year too early", map[string]any{"countryCode": "US", "year": 1899, "holidays": []string{}}},
		{"year too late", map[string]any{"countryCode": "US", "year": 2200, "holidays": []string{}}},
		{"unknown country", map[string]any{"countryCode": "XX", "year": 2025, "holidays": []string{}}},
		{"three letter country", map[string]any{"countryCode": "USA", "year": 2025, "holidays": []string{}}},
		{"numeric country", map[string]any{"countryCode": "840", "year": 2025, "holidays": []string{}}},
		{"missing holidays", map[string]any{"countryCode": "US", "year": 2025}},
		{"blank holiday name", map[string]any{"countryCode": "US", "year": 2025, "holidays": []string{""}}},
		{"year as string", map[string]any{"countryCode": "US", "year": "2025", "holidays": []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post(syncPath(userID), tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
			env := decodeEnvelope(t, resp)
			assert.Equal(t, "VALIDATION", env.Code)
			assert.NotEmpty(t, env.Details)
		})
	}

	assert.Equal(t, int32(0), ts.upstream.holidayCalls.Load())
}

func TestListCalendarEvents_UnknownUser(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get(eventsPath(42))

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "USER_NOT_FOUND", decodeEnvelope(t, resp).Code)
}

func TestListCalendarEvents_NonNumericUserID(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/users/abc/calendar/events")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION", decodeEnvelope(t, resp).Code)
}
