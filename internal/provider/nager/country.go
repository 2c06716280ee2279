package nager

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/calsync/calsync-server/internal/domain"
)

type rawCountryInfo struct {
	CommonName   string           `json:"commonName"`
	OfficialName string           `json:"officialName"`
	CountryCode  string           `json:"countryCode"`
	Region       string           `json:"region"`
	Borders      []rawCountryInfo `json:"borders"`
}

// CountryInfo returns a country's names, region and bordering countries.
func (c *Client) CountryInfo(ctx context.Context, countryCode string) (*domain.CountryInfo, error) {
	body, err := c.doRequest(ctx, "/CountryInfo/"+url.PathEscape(countryCode))
	if err != nil {
		return nil, wrapError("countryInfo", countryCode, err)
	}

	var raw rawCountryInfo
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, wrapError("countryInfo", countryCode, fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	if raw.CommonName == "" {
		return nil, wrapError("countryInfo", countryCode, fmt.Errorf("%w: missing commonName", ErrMalformed))
	}

	info := rawToCountryInfo(raw)
	return &info, nil
}

func rawToCountryInfo(raw rawCountryInfo) domain.CountryInfo {
	borders := make([]domain.CountryInfo, 0, len(raw.Borders))
	for _, b := range raw.Borders {
		borders = append(borders, rawToCountryInfo(b))
	}
	return domain.CountryInfo{
		CommonName:   raw.CommonName,
		OfficialName: raw.OfficialName,
		CountryCode:  raw.CountryCode,
		Region:       raw.Region,
		Borders:      borders,
	}
}
