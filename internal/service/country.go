package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/calsync/calsync-server/internal/domain"
	domainerrors "github.com/calsync/calsync-server/internal/errors"
	"github.com/calsync/calsync-server/internal/validation"
)

// CountryService serves country and holiday data from the external providers.
// Nothing is cached; every call reaches the providers.
type CountryService struct {
	holidays HolidayProvider
	info     CountryInfoProvider
	media    CountryMediaProvider
	logger   *slog.Logger
}

// NewCountryService creates a new country service.
func NewCountryService(holidays HolidayProvider, info CountryInfoProvider, media CountryMediaProvider, logger *slog.Logger) *CountryService {
	return &CountryService{
		holidays: holidays,
		info:     info,
		media:    media,
		logger:   logger,
	}
}

// ListAvailableCountries returns the countries the holiday provider covers.
func (s *CountryService) ListAvailableCountries(ctx context.Context) ([]domain.AvailableCountry, error) {
	countries, err := s.holidays.AvailableCountries(ctx)
	if err != nil {
		return nil, domainerrors.UpstreamUnavailable(err, "fetch available countries")
	}
	return countries, nil
}

// ListPublicHolidays returns all public holidays of a country in a year.
func (s *CountryService) ListPublicHolidays(ctx context.Context, year int, countryCode string) ([]domain.Holiday, error) {
	code, err := normalizeCountryCode(countryCode)
	if err != nil {
		return nil, err
	}
	if err := validateYear(year); err != nil {
		return nil, err
	}

	holidays, err := s.holidays.PublicHolidays(ctx, year, code)
	if err != nil {
		return nil, domainerrors.UpstreamUnavailable(err, "fetch public holidays")
	}
	return holidays, nil
}

// GetCountryInfo merges country info, population history and flag for a
// country code. The info call resolves the common name; the flag and
// population lookups then run concurrently. Any failure fails the whole call.
func (s *CountryService) GetCountryInfo(ctx context.Context, countryCode string) (*domain.CountryInfoResult, error) {
	code, err := normalizeCountryCode(countryCode)
	if err != nil {
		return nil, err
	}

	info, err := s.info.CountryInfo(ctx, code)
	if err != nil {
		return nil, domainerrors.UpstreamUnavailable(err, "fetch country info")
	}

	var (
		flagURL    string
		population *domain.PopulationData
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		flagURL, err = s.media.FlagURL(gctx, info.CommonName)
		if err != nil {
			return domainerrors.UpstreamUnavailable(err, "fetch flag")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		population, err = s.media.PopulationHistory(gctx, info.CommonName)
		if err != nil {
			return domainerrors.UpstreamUnavailable(err, "fetch population")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("country info aggregated",
		"country_code", code,
		"country", info.CommonName,
		"population_years", len(population.PopulationCounts),
	)

	return &domain.CountryInfoResult{
		CountryInfo:    info,
		PopulationData: population,
		FlagURL:        flagURL,
	}, nil
}

func normalizeCountryCode(code string) (string, error) {
	normalized := validation.NormalizeCountryCode(code)
	if !validation.ValidCountryCode(normalized) {
		return "", domainerrors.ValidationWithDetails("invalid country code",
			map[string]string{"countryCode": "must be an ISO 3166-1 alpha-2 country code"})
	}
	return normalized, nil
}

func validateYear(year int) error {
	if year < minYear || year > maxYear {
		return domainerrors.ValidationWithDetails("invalid year",
			map[string]string{"year": "must be between 1900 and 2199"})
	}
	return nil
}
