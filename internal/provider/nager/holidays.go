package nager

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/calsync/calsync-server/internal/domain"
)

type rawHoliday struct {
	Date        string   `json:"date"`
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Global      bool     `json:"global"`
	Types       []string `json:"types"`
}

type rawAvailableCountry struct {
	CountryCode string `json:"countryCode"`
	Name        string `json:"name"`
}

// AvailableCountries lists the countries the holiday API covers.
func (c *Client) AvailableCountries(ctx context.Context) ([]domain.AvailableCountry, error) {
	body, err := c.doRequest(ctx, "/AvailableCountries")
	if err != nil {
		return nil, wrapError("availableCountries", "", err)
	}

	var raw []rawAvailableCountry
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, wrapError("availableCountries", "", fmt.Errorf("%w: %v", ErrMalformed, err))
	}

	countries := make([]domain.AvailableCountry, 0, len(raw))
	for i, rc := range raw {
		if rc.CountryCode == "" || rc.Name == "" {
			return nil, wrapError("availableCountries", "", fmt.Errorf("%w: country %d missing code or name", ErrMalformed, i))
		}
		countries = append(countries, domain.AvailableCountry{CountryCode: rc.CountryCode, Name: rc.Name})
	}
	return countries, nil
}

// PublicHolidays returns every public holiday of a country in a year, in the
// order the API reports them.
func (c *Client) PublicHolidays(ctx context.Context, year int, countryCode string) ([]domain.Holiday, error) {
	path := fmt.Sprintf("/PublicHolidays/%s/%s", strconv.Itoa(year), url.PathEscape(countryCode))
	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, wrapError("publicHolidays", countryCode, err)
	}

	var raw []rawHoliday
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, wrapError("publicHolidays", countryCode, fmt.Errorf("%w: %v", ErrMalformed, err))
	}

	holidays := make([]domain.Holiday, 0, len(raw))
	for i, rh := range raw {
		if rh.Name == "" {
			return nil, wrapError("publicHolidays", countryCode, fmt.Errorf("%w: holiday %d has no name", ErrMalformed, i))
		}
		if _, err := time.Parse(domain.DateLayout, rh.Date); err != nil {
			return nil, wrapError("publicHolidays", countryCode, fmt.Errorf("%w: holiday %q has invalid date %q", ErrMalformed, rh.Name, rh.Date))
		}
		holidays = append(holidays, domain.Holiday{Name: rh.Name, Date: rh.Date})
	}
	return holidays, nil
}
