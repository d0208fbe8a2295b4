// Package timeutil holds calendar-day and ISO-week helpers.
// Calendar days carry no timezone; they are handled as UTC midnights.
package timeutil

import "time"

// DateLayout is the storage layout of a calendar day.
const DateLayout = "2006-01-02"

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given day (23:59:59.999999999)
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// StartOfWeek returns Monday 00:00:00 of the week containing the given time (ISO standard)
// Handles the Sunday edge case where Go's Weekday() returns 0
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	return StartOfDay(t).AddDate(0, 0, -(weekday - 1))
}

// EndOfWeek returns Sunday 23:59:59.999999999 of the week containing the given time
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// Today returns today's calendar day as a YYYY-MM-DD string.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// IsInRange checks if the given time t falls within the range [start, end] (inclusive)
func IsInRange(t, start, end time.Time) bool {
	return (t.Equal(start) || t.After(start)) && (t.Equal(end) || t.Before(end))
}

// DateInRange reports whether the calendar day date lies within [from, to].
// Empty bounds are open. Unparseable dates never match a bounded range.
func DateInRange(date, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	d, err := ParseDate(date)
	if err != nil {
		return false
	}

	start := time.Time{}
	if from != "" {
		if start, err = ParseDate(from); err != nil {
			return false
		}
	}
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if to != "" {
		if end, err = ParseDate(to); err != nil {
			return false
		}
	}
	return IsInRange(d, start, EndOfDay(end))
}
