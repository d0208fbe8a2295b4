package clock

import "math"

// DurationInput is the raw form data for one work period.
// When ManualHours is set it overrides Start, End and BreakMinutes.
type DurationInput struct {
	Start        string
	End          string
	BreakMinutes int
	ManualHours  *float64
}

// Duration is the computed result for a DurationInput.
type Duration struct {
	RawMinutes     int     // Worked minutes before rounding
	RoundedMinutes int     // RawMinutes snapped to the increment
	Hours          float64 // RoundedMinutes / 60, two decimal places
}

// Compute calculates worked minutes for in and rounds them to increment.
// Negative spans clamp to zero; rejecting them is the caller's job.
func Compute(in DurationInput, increment int) Duration {
	var raw int
	if in.ManualHours != nil {
		raw = int(math.Round(*in.ManualHours * 60))
	} else {
		raw = TimeToMinutes(in.End) - TimeToMinutes(in.Start) - in.BreakMinutes
	}
	if raw < 0 {
		raw = 0
	}

	rounded := RoundToIncrement(raw, increment)
	return Duration{
		RawMinutes:     raw,
		RoundedMinutes: rounded,
		Hours:          MinutesToHours(rounded),
	}
}

// MinutesToHours converts minutes to hours rounded to two decimal places.
func MinutesToHours(minutes int) float64 {
	return Round2(float64(minutes) / 60)
}

// Round2 rounds v to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Hundredths converts an hour value to an integer count of hundredths of an hour.
func Hundredths(hours float64) int64 {
	return int64(math.Round(hours * 100))
}

// FromHundredths converts hundredths of an hour back to hours.
func FromHundredths(h int64) float64 {
	return float64(h) / 100
}
