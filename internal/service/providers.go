package service

import (
	"context"

	"github.com/calsync/calsync-server/internal/domain"
)

// HolidayProvider fetches public holidays from an external source.
type HolidayProvider interface {
	AvailableCountries(ctx context.Context) ([]domain.AvailableCountry, error)
	PublicHolidays(ctx context.Context, year int, countryCode string) ([]domain.Holiday, error)
}

// CountryInfoProvider resolves a country code to its names and borders.
type CountryInfoProvider interface {
	CountryInfo(ctx context.Context, countryCode string) (*domain.CountryInfo, error)
}

// CountryMediaProvider looks up flag and population data by country name.
type CountryMediaProvider interface {
	FlagURL(ctx context.Context, country string) (string, error)
	PopulationHistory(ctx context.Context, country string) (*domain.PopulationData, error)
}
