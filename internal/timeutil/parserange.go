package timeutil

import (
	"fmt"
	"time"
)

// ParseDateRangeFlags turns --from/--to/--last flag values into an inclusive
// pair of YYYY-MM-DD bounds. Empty strings mean an open bound.
// If lastDays > 0 the range ends on the day of now.
func ParseDateRangeFlags(fromStr, toStr string, lastDays int, now time.Time) (from, to string, err error) {
	if lastDays > 0 && (fromStr != "" || toStr != "") {
		return "", "", fmt.Errorf("cannot use --last with --from or --to")
	}

	if lastDays > 0 {
		end := StartOfDay(now)
		return end.AddDate(0, 0, -(lastDays - 1)).Format(DateLayout), end.Format(DateLayout), nil
	}

	if fromStr != "" {
		if from, err = NormalizeDate(fromStr); err != nil {
			return "", "", fmt.Errorf("invalid --from date: %w", err)
		}
	}
	if toStr != "" {
		if to, err = NormalizeDate(toStr); err != nil {
			return "", "", fmt.Errorf("invalid --to date: %w", err)
		}
	}

	if from != "" && to != "" && from > to {
		return "", "", fmt.Errorf("--from date (%s) is after --to date (%s)", from, to)
	}

	return from, to, nil
}
