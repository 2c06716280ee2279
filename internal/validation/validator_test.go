package validation_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/calsync/calsync-server/internal/errors"
	"github.com/calsync/calsync-server/internal/validation"
)

type testRequest struct {
	CountryCode string   `json:"countryCode" validate:"required,iso_country"`
	Year        int      `json:"year" validate:"gte=1900,lte=2199"`
	Holidays    []string `json:"holidays" validate:"required,dive,required"`
	Email       string   `json:"email,omitempty" validate:"omitempty,email"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRequest{
		CountryCode: "US",
		Year:        2025,
		Holidays:    []string{"New Year's Day"},
	})
	assert.NoError(t, err)
}

func TestValidator_EmptyHolidayListIsAllowed(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRequest{CountryCode: "DE", Year: 2025, Holidays: []string{}})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       testRequest
		wantField string
	}{
		{
			name:      "missing country code",
			req:       testRequest{Year: 2025, Holidays: []string{}},
			wantField: "countryCode",
		},
		{
			name:      "lower case country code",
			req:       testRequest{CountryCode: "us", Year: 2025, Holidays: []string{}},
			wantField: "countryCode",
		},
		{
			name:      "three letter country code",
			req:       testRequest{CountryCode: "USA", Year: 2025, Holidays: []string{}},
			wantField: "countryCode",
		},
		{
			name:      "numeric country code",
			req:       testRequest{CountryCode: "840", Year: 2025, Holidays: []string{}},
			wantField: "countryCode",
		},
		{
			name:      "year out of range",
			req:       testRequest{CountryCode: "US", Year: 1492, Holidays: []string{}},
			wantField: "year",
		},
		{
			name:      "nil holidays",
			req:       testRequest{CountryCode: "US", Year: 2025},
			wantField: "holidays",
		},
		{
			name:      "blank holiday name",
			req:       testRequest{CountryCode: "US", Year: 2025, Holidays: []string{""}},
			wantField: "holidays[0]",
		},
		{
			name:      "invalid email",
			req:       testRequest{CountryCode: "US", Year: 2025, Holidays: []string{}, Email: "nope"},
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			assert.Error(t, err)

			var domainErr *domainerrors.Error
			if assert.True(t, errors.As(err, &domainErr)) {
				assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())
				assert.Contains(t, domainErr.Message, tt.wantField)
				details, ok := domainErr.Details.(map[string]string)
				if assert.True(t, ok) {
					assert.Contains(t, details, tt.wantField)
				}
			}
		})
	}
}

func TestValidator_CountryCodeUsesAlpha2Rule(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRequest{CountryCode: "DEU", Year: 2025, Holidays: []string{}})

	var domainErr *domainerrors.Error
	if assert.True(t, errors.As(err, &domainErr)) {
		details, ok := domainErr.Details.(map[string]string)
		if assert.True(t, ok) {
			assert.Equal(t, "must be an ISO 3166-1 alpha-2 country code", details["countryCode"])
		}
	}
}

func TestValidCountryCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"US", true},
		{"DE", true},
		{"GB", true},
		{"", false},
		{"U", false},
		{"us", false},
		{"U1", false},
		{"USA", false},
		{"840", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.ValidCountryCode(tt.code))
		})
	}
}

func TestNormalizeCountryCode(t *testing.T) {
	assert.Equal(t, "US", validation.NormalizeCountryCode(" us "))
	assert.Equal(t, "GB", validation.NormalizeCountryCode("GB"))
}
