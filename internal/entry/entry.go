package entry

import (
	"time"

	"github.com/markargand/labourlog/internal/clock"
	"github.com/markargand/labourlog/internal/timeutil"
)

// Employee is a person who logs time. Employees are never edited or deleted.
type Employee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Badge string `json:"badge,omitempty"`
	PIN   string `json:"pin,omitempty"`
}

// Project is a cost centre that time is logged against.
// Codes are unique case-insensitively.
type Project struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// TimeEntry represents a single logged work period
type TimeEntry struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	ProjectID    string `json:"projectId"`
	Date         string `json:"date"`            // YYYY-MM-DD
	Start        string `json:"start,omitempty"` // HH:MM
	End          string `json:"end,omitempty"`   // HH:MM
	BreakMinutes int    `json:"breakMinutes"`
	WorkType     string `json:"workType"`
	Notes        string `json:"notes"`

	// Hours is RoundedFromMinutes snapped to RoundingIncrement, in hours.
	Hours              float64 `json:"hours"`
	RoundedFromMinutes int     `json:"roundedFromMinutes"`
	RoundingIncrement  int     `json:"roundingIncrement"`

	Status    Status    `json:"status"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"createdAt"`
}

// Week returns the ISO week label of the entry's date.
func (e TimeEntry) Week() string {
	return timeutil.WeekLabelForDate(e.Date)
}

// StartMinutes returns the start time as minutes since midnight.
func (e TimeEntry) StartMinutes() int {
	return clock.TimeToMinutes(e.Start)
}

// Settings are the global accounting settings in effect for new entries.
type Settings struct {
	RoundingIncrement      int     `json:"roundingIncrement"`
	DailyOvertimeThreshold float64 `json:"dailyOvertimeThreshold"`
}

const (
	// DefaultRoundingIncrement is the minute granularity used when none is configured
	DefaultRoundingIncrement = 15
	// DefaultDailyOvertimeThreshold is the hours per employee per day before overtime
	DefaultDailyOvertimeThreshold = 8.0
)

// DefaultSettings returns the settings used for a fresh state.
func DefaultSettings() Settings {
	return Settings{
		RoundingIncrement:      DefaultRoundingIncrement,
		DailyOvertimeThreshold: DefaultDailyOvertimeThreshold,
	}
}

// Validate checks that the settings are usable.
func (s Settings) Validate() error {
	if s.RoundingIncrement < 1 || s.RoundingIncrement > 60 {
		return ErrInvalidIncrement
	}
	if s.DailyOvertimeThreshold < 0 || s.DailyOvertimeThreshold > 24 {
		return ErrInvalidThreshold
	}
	return nil
}
