package domain

import (
	"fmt"
	"time"
)

// DateLayout is the storage format of metric dates (UTC calendar day)
const DateLayout = "2006-01-02"

// DateFromUnix returns the UTC calendar day of a unix timestamp in seconds
func DateFromUnix(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(DateLayout)
}

// DateOf returns the UTC calendar day of t
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// AddDays shifts a YYYY-MM-DD date by the given number of days
func AddDays(date string, days int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.AddDate(0, 0, days).Format(DateLayout), nil
}
