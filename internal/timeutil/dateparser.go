package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

var (
	isoPartialRe    = regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	yearOnlyRe      = regexp.MustCompile(`^\d{4}$`)
	isoPartialDayRe = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)
	euroPartialRe   = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)
	tooManyPartsRe  = regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/]`)
)

// ParseDate parses a calendar day in YYYY-MM-DD or DD/MM/YYYY format.
// The result is midnight UTC of that day.
//
// Valid inputs:
//   - "2024-01-15" (ISO format)
//   - "15/01/2024" (European format)
func ParseDate(input string) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)")
	}

	if t, err := time.ParseInLocation(DateLayout, input, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("02/01/2006", input, time.UTC); err == nil {
		return t, nil
	}

	return time.Time{}, buildDateParseError(input)
}

// NormalizeDate parses input and returns it in YYYY-MM-DD form.
func NormalizeDate(input string) (string, error) {
	t, err := ParseDate(input)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// buildDateParseError creates a helpful error message based on the input pattern
func buildDateParseError(input string) error {
	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case isoPartialDayRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-%s)", input, input)
	case euroPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format DD/MM/YYYY, e.g., %s/2024)", input, input)
	case tooManyPartsRe.MatchString(input):
		return fmt.Errorf("invalid date '%s': too many date parts (use format YYYY-MM-DD or DD/MM/YYYY)", input)
	default:
		return fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)", input)
	}
}
