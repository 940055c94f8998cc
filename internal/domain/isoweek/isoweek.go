// Package isoweek derives the year-week bucket keys used by the weekly
// attendance rollup. Weeks follow the ISO-8601 rule: a week belongs to
// the year containing its Thursday, weeks numbered from 1. A report
// dated 1 January can therefore land in the prior year's last week.
package isoweek

import (
	"fmt"
	"time"
)

// Key returns the bucket key "YYYY-Wnn" for the given date, with the
// week number zero-padded to two digits.
func Key(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// KeyForDate parses a YYYY-MM-DD date string and returns its bucket
// key. Malformed dates return ok=false.
func KeyForDate(dateStr string) (string, bool) {
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return "", false
	}
	return Key(d), true
}

// Range returns the Monday-to-Sunday span containing the given date,
// formatted "YYYY-MM-DD to YYYY-MM-DD" for display alongside the key.
func Range(date time.Time) string {
	offset := int(date.Weekday())
	if offset == 0 {
		offset = 7
	}
	monday := date.AddDate(0, 0, 1-offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format("2006-01-02") + " to " + sunday.Format("2006-01-02")
}

// RangeForDate is Range over a YYYY-MM-DD string; malformed dates
// return an empty range.
func RangeForDate(dateStr string) string {
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return ""
	}
	return Range(d)
}
