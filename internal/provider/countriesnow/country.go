package countriesnow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/calsync/calsync-server/internal/domain"
)

type rawFlag struct {
	Name string `json:"name"`
	Flag string `json:"flag"`
	ISO2 string `json:"iso2"`
	ISO3 string `json:"iso3"`
}

type rawPopulation struct {
	Country          string `json:"country"`
	Code             string `json:"code"`
	ISO3             string `json:"iso3"`
	PopulationCounts []struct {
		Year  int   `json:"year"`
		Value int64 `json:"value"`
	} `json:"populationCounts"`
}

// FlagURL returns the URL of the flag image for a country, looked up by its
// common name.
func (c *Client) FlagURL(ctx context.Context, country string) (string, error) {
	data, err := c.post(ctx, "/flag/images", country)
	if err != nil {
		return "", wrapError("flagURL", country, err)
	}

	var raw rawFlag
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", wrapError("flagURL", country, fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	if raw.Flag == "" {
		return "", wrapError("flagURL", country, fmt.Errorf("%w: missing flag", ErrMalformed))
	}
	return raw.Flag, nil
}

// PopulationHistory returns the yearly population counts for a country,
// looked up by its common name.
func (c *Client) PopulationHistory(ctx context.Context, country string) (*domain.PopulationData, error) {
	data, err := c.post(ctx, "/population", country)
	if err != nil {
		return nil, wrapError("populationHistory", country, err)
	}

	var raw rawPopulation
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, wrapError("populationHistory", country, fmt.Errorf("%w: %v", ErrMalformed, err))
	}

	pop := &domain.PopulationData{
		Country:          raw.Country,
		Code:             raw.Code,
		ISO3:             raw.ISO3,
		PopulationCounts: make([]domain.PopulationCount, 0, len(raw.PopulationCounts)),
	}
	for _, pc := range raw.PopulationCounts {
		pop.PopulationCounts = append(pop.PopulationCounts, domain.PopulationCount{Year: pc.Year, Value: pc.Value})
	}
	return pop, nil
}
