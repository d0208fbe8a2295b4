package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var weekLabelRe = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// WeekLabel returns the ISO-8601 week label (YYYY-Www) of t.
// The year is the ISO week-year, which differs from the calendar year
// around January 1st.
func WeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// WeekLabelForDate returns the week label of a YYYY-MM-DD calendar day.
// Unparseable dates yield an empty label.
func WeekLabelForDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	return WeekLabel(t)
}

// ParseWeekLabel returns the Monday of the ISO week named by label.
func ParseWeekLabel(label string) (time.Time, error) {
	m := weekLabelRe.FindStringSubmatch(label)
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid week '%s' (use format YYYY-Www, e.g., 2024-W05)", label)
	}
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	if week < 1 || week > 53 {
		return time.Time{}, fmt.Errorf("invalid week '%s': week number must be 01-53", label)
	}

	// January 4th is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := StartOfWeek(jan4).AddDate(0, 0, (week-1)*7)

	if WeekLabel(monday) != label {
		return time.Time{}, fmt.Errorf("invalid week '%s': %d has no week %d", label, year, week)
	}
	return monday, nil
}

// WeekDates returns the Monday and Sunday (YYYY-MM-DD) of the labelled week.
func WeekDates(label string) (from, to string, err error) {
	monday, err := ParseWeekLabel(label)
	if err != nil {
		return "", "", err
	}
	return monday.Format(DateLayout), monday.AddDate(0, 0, 6).Format(DateLayout), nil
}

// ShiftWeek returns the label n weeks after label (n may be negative).
func ShiftWeek(label string, n int) (string, error) {
	monday, err := ParseWeekLabel(label)
	if err != nil {
		return "", err
	}
	return WeekLabel(monday.AddDate(0, 0, 7*n)), nil
}
