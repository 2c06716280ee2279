package domain

import "time"

// CalendarEvent is a holiday stored in a user's calendar.
type CalendarEvent struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	CountryCode string    `json:"countryCode"`
	SyncID      string    `json:"syncId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewCalendarEvent is an event about to be inserted. The store assigns the ID
// and CreatedAt.
type NewCalendarEvent struct {
	UserID      int64
	Title       string
	Date        time.Time
	CountryCode string
	SyncID      string
}

// AddHolidaysRequest asks for the named holidays of a country and year to
// become the user's calendar.
type AddHolidaysRequest struct {
	CountryCode string   `json:"countryCode" validate:"required,iso_country"`
	Year        int      `json:"year" validate:"required,gte=1900,lte=2199"`
	Holidays    []string `json:"holidays" validate:"required,dive,required"`
}

// AddHolidaysResult summarises a completed sync.
type AddHolidaysResult struct {
	Message  string    `json:"message"`
	Count    int       `json:"count"`
	Holidays []Holiday `json:"holidays"`
}
