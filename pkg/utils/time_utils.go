// utils/timeutil.go
package utils

import (
	"strings"
	"time"
)

const tripDateLayout = "2006-01-02"

// NormalizeTripDate accepts a YYYY-MM-DD date (slashes tolerated as
// separators) and returns the canonical dashed form. Anything else is
// ErrInvalidDate.
func NormalizeTripDate(raw string) (string, error) {
	candidate := strings.ReplaceAll(strings.TrimSpace(raw), "/", "-")
	if _, err := time.Parse(tripDateLayout, candidate); err != nil {
		return "", ErrInvalidDate
	}
	return candidate, nil
}

// TripDays returns the inclusive day count between two normalized trip
// dates, floored at 1. An inverted or zero-length range counts as a
// one-day trip rather than an error.
func TripDays(startDate, endDate string) (int, error) {
	start, err := time.Parse(tripDateLayout, startDate)
	if err != nil {
		return 0, ErrInvalidDate
	}
	end, err := time.Parse(tripDateLayout, endDate)
	if err != nil {
		return 0, ErrInvalidDate
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days, nil
}
