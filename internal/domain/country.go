package domain

// AvailableCountry is one entry of the holiday provider's country list.
type AvailableCountry struct {
	CountryCode string `json:"countryCode"`
	Name        string `json:"name"`
}

// CountryInfo describes a country and its neighbours.
type CountryInfo struct {
	CommonName   string        `json:"commonName"`
	OfficialName string        `json:"officialName"`
	CountryCode  string        `json:"countryCode"`
	Region       string        `json:"region"`
	Borders      []CountryInfo `json:"borders"`
}

// PopulationCount is a single year's population figure.
type PopulationCount struct {
	Year  int   `json:"year"`
	Value int64 `json:"value"`
}

// PopulationData is the population history of a country.
type PopulationData struct {
	Country          string            `json:"country"`
	Code             string            `json:"code"`
	ISO3             string            `json:"iso3"`
	PopulationCounts []PopulationCount `json:"populationCounts"`
}

// CountryInfoResult merges country info, population history and flag image
// into one record. It is built per request and never stored.
type CountryInfoResult struct {
	CountryInfo    *CountryInfo    `json:"countryInfo"`
	PopulationData *PopulationData `json:"populationData"`
	FlagURL        string          `json:"flagUrl"`
}
