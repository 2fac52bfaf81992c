package utils

import (
	"fmt"
	"time"
)

const (
	MonthLayout = "2006-01"
	DateLayout  = "2006-01-02"
)

// ParseMonth parses a "YYYY-MM" string into the first day of that month, UTC.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}

	return t, nil
}

// DaysInMonth returns the number of days of the month starting at first.
// Example: 2024-02 -> 29
func DaysInMonth(first time.Time) int {
	return first.AddDate(0, 1, -first.Day()).Day()
}

// DatesOfMonth returns every calendar date of the month in ascending order.
func DatesOfMonth(first time.Time) []time.Time {
	start := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := DaysInMonth(start)

	dates := make([]time.Time, days)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}

	return dates
}
