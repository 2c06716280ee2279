package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/calsync/calsync-server/internal/domain"
)

func (s *Server) registerCountryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCountries",
		Method:      http.MethodGet,
		Path:        "/api/v1/countries",
		Summary:     "List countries",
		Description: "Returns the countries the holiday provider covers",
		Tags:        []string{"Countries"},
	}, s.handleListCountries)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCountryInfo",
		Method:      http.MethodGet,
		Path:        "/api/v1/countries/{countryCode}",
		Summary:     "Get country info",
		Description: "Returns country details, borders, population history, and flag URL merged from the country data providers",
		Tags:        []string{"Countries"},
	}, s.handleGetCountryInfo)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPublicHolidays",
		Method:      http.MethodGet,
		Path:        "/api/v1/countries/{countryCode}/holidays/{year}",
		Summary:     "List public holidays",
		Description: "Returns the public holidays of a country for a year",
		Tags:        []string{"Countries"},
	}, s.handleListPublicHolidays)
}

// === DTOs ===

// ListCountriesResponse contains the available countries.
type ListCountriesResponse struct {
	Countries []domain.AvailableCountry `json:"countries" doc:"Available countries"`
}

// ListCountriesOutput wraps the list countries response for Huma.
type ListCountriesOutput struct {
	Body ListCountriesResponse
}

// GetCountryInfoInput contains parameters for getting country info.
type GetCountryInfoInput struct {
	CountryCode string `path:"countryCode" doc:"ISO 3166-1 alpha-2 country code"`
}

// CountryInfoOutput wraps the merged country info for Huma.
type CountryInfoOutput struct {
	Body *domain.CountryInfoResult
}

// ListPublicHolidaysInput contains parameters for listing holidays.
type ListPublicHolidaysInput struct {
	CountryCode string `path:"countryCode" doc:"ISO 3166-1 alpha-2 country code"`
	Year        int    `path:"year" doc:"Calendar year"`
}

// ListPublicHolidaysResponse contains the holidays of one country and year.
type ListPublicHolidaysResponse struct {
	Holidays []domain.Holiday `json:"holidays" doc:"Public holidays in provider order"`
}

// ListPublicHolidaysOutput wraps the holidays response for Huma.
type ListPublicHolidaysOutput struct {
	Body ListPublicHolidaysResponse
}

// === Handlers ===

func (s *Server) handleListCountries(ctx context.Context, _ *struct{}) (*ListCountriesOutput, error) {
	countries, err := s.services.Country.ListAvailableCountries(ctx)
	if err != nil {
		return nil, err
	}
	return &ListCountriesOutput{Body: ListCountriesResponse{Countries: countries}}, nil
}

func (s *Server) handleGetCountryInfo(ctx context.Context, input *GetCountryInfoInput) (*CountryInfoOutput, error) {
	info, err := s.services.Country.GetCountryInfo(ctx, input.CountryCode)
	if err != nil {
		return nil, err
	}
	return &CountryInfoOutput{Body: info}, nil
}

func (s *Server) handleListPublicHolidays(ctx context.Context, input *ListPublicHolidaysInput) (*ListPublicHolidaysOutput, error) {
	holidays, err := s.services.Country.ListPublicHolidays(ctx, input.Year, input.CountryCode)
	if err != nil {
		return nil, err
	}
	return &ListPublicHolidaysOutput{Body: ListPublicHolidaysResponse{Holidays: holidays}}, nil
}
