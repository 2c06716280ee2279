package domain

import "time"

// DateLayout is the ISO 8601 calendar date format used by holiday records.
const DateLayout = "2006-01-02"

// Holiday is a public holiday as reported by the holiday provider.
type Holiday struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// ParsedDate returns the holiday date as a UTC midnight time.
func (h Holiday) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayout, h.Date)
}

// FilterHolidays returns the holidays whose name appears in names, in the
// order they appear in holidays. Requested names that repeat do not repeat
// output, and the result is never nil.
func FilterHolidays(holidays []Holiday, names []string) []Holiday {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	filtered := make([]Holiday, 0, len(names))
	for _, h := range holidays {
		if _, ok := wanted[h.Name]; ok {
			filtered = append(filtered, h)
		}
	}
	return filtered
}
