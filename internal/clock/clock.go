// Package clock converts between wall-clock strings and minute counts and
// computes worked durations from clock-in/clock-out data.
package clock

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TimeToMinutes converts an "HH:MM" time-of-day string to minutes since midnight.
// Malformed input is treated as "00:00" and yields 0.
func TimeToMinutes(hhmm string) int {
	parts := strings.Split(strings.TrimSpace(hhmm), ":")
	if len(parts) != 2 {
		return 0
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}

	return hours*60 + mins
}

// MinutesToTime formats minutes since midnight as a zero-padded "HH:MM" string.
func MinutesToTime(minutes int) string {
	hours := floorDiv(minutes, 60)
	mins := int(math.Round(float64(minutes - hours*60)))
	return fmt.Sprintf("%02d:%02d", hours, mins)
}

// RoundToIncrement snaps minutes to the nearest multiple of increment.
// Halves round away from zero. An increment below 1 is treated as 1.
func RoundToIncrement(minutes, increment int) int {
	if increment < 1 {
		increment = 1
	}
	q := math.Round(float64(minutes) / float64(increment))
	return int(q) * increment
}

// IsValidTime reports whether s is a well-formed "HH:MM" time of day.
func IsValidTime(s string) bool {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return false
	}
	return true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
