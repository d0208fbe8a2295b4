// Package entry defines employees, projects and time entries, the
// validation applied when an entry is created, and the approval lifecycle.
package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/markargand/labourlog/internal/clock"
	"github.com/markargand/labourlog/internal/timeutil"
)

// MaxBreakMinutes is the longest break accepted in start/end mode
const MaxBreakMinutes = 240

// Validation and business-rule errors
var (
	ErrNoEmployee           = errors.New("no employee selected")
	ErrNoProject            = errors.New("no project selected")
	ErrNoDate               = errors.New("no date given")
	ErrInvalidDate          = errors.New("invalid date")
	ErrUnknownEmployee      = errors.New("employee does not exist")
	ErrUnknownProject       = errors.New("project does not exist")
	ErrInvalidTime          = errors.New("time must be HH:MM between 00:00 and 23:59")
	ErrEndBeforeStart       = errors.New("end time must be after start time")
	ErrBreakOutOfRange      = fmt.Errorf("break must be between 0 and %d minutes", MaxBreakMinutes)
	ErrNonPositiveHours     = errors.New("hours must be greater than zero")
	ErrLocked               = errors.New("entry is locked")
	ErrEntryNotFound        = errors.New("entry not found")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrEmptyName            = errors.New("name cannot be empty")
	ErrEmptyCode            = errors.New("project code cannot be empty")
	ErrDuplicateProjectCode = errors.New("project code already exists")
	ErrDuplicateBadge       = errors.New("badge already assigned")
	ErrInvalidIncrement     = errors.New("rounding increment must be between 1 and 60 minutes")
	ErrInvalidThreshold     = errors.New("daily overtime threshold must be between 0 and 24 hours")
)

// Input is the raw form data for a new entry.
type Input struct {
	EmployeeID   string
	ProjectID    string
	Date         string
	Start        string
	End          string
	BreakMinutes int
	ManualHours  *float64 // overrides Start/End/BreakMinutes when set
	WorkType     string
	Notes        string
}

// Duration previews the worked time for in without validating it.
func (in Input) Duration(increment int) clock.Duration {
	return clock.Compute(clock.DurationInput{
		Start:        in.Start,
		End:          in.End,
		BreakMinutes: in.BreakMinutes,
		ManualHours:  in.ManualHours,
	}, increment)
}

// New validates in against dir and builds a pending entry with the given id.
// The rounding increment is stored on the entry.
func New(id string, in Input, dir *Directory, increment int, now time.Time) (TimeEntry, error) {
	if strings.TrimSpace(in.EmployeeID) == "" {
		return TimeEntry{}, ErrNoEmployee
	}
	if strings.TrimSpace(in.ProjectID) == "" {
		return TimeEntry{}, ErrNoProject
	}
	if strings.TrimSpace(in.Date) == "" {
		return TimeEntry{}, ErrNoDate
	}
	date, err := timeutil.NormalizeDate(in.Date)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if _, ok := dir.Employee(in.EmployeeID); !ok {
		return TimeEntry{}, ErrUnknownEmployee
	}
	if _, ok := dir.Project(in.ProjectID); !ok {
		return TimeEntry{}, ErrUnknownProject
	}

	if in.ManualHours == nil {
		if !clock.IsValidTime(in.Start) || !clock.IsValidTime(in.End) {
			return TimeEntry{}, ErrInvalidTime
		}
		if clock.TimeToMinutes(in.End) <= clock.TimeToMinutes(in.Start) {
			return TimeEntry{}, ErrEndBeforeStart
		}
		if in.BreakMinutes < 0 || in.BreakMinutes > MaxBreakMinutes {
			return TimeEntry{}, ErrBreakOutOfRange
		}
	}

	if increment < 1 {
		increment = 1
	}
	d := in.Duration(increment)
	if d.Hours <= 0 {
		return TimeEntry{}, ErrNonPositiveHours
	}

	return TimeEntry{
		ID:                 id,
		EmployeeID:         in.EmployeeID,
		ProjectID:          in.ProjectID,
		Date:               date,
		Start:              in.Start,
		End:                in.End,
		BreakMinutes:       in.BreakMinutes,
		WorkType:           strings.TrimSpace(in.WorkType),
		Notes:              strings.TrimSpace(in.Notes),
		Hours:              d.Hours,
		RoundedFromMinutes: d.RawMinutes,
		RoundingIncrement:  increment,
		Status:             StatusPending,
		CreatedAt:          now,
	}, nil
}

// ValidateNewProject checks code and name and rejects codes already used
// by existing, ignoring case.
func ValidateNewProject(code, name string, existing []Project) error {
	if strings.TrimSpace(code) == "" {
		return ErrEmptyCode
	}
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	for _, p := range existing {
		if strings.EqualFold(strings.TrimSpace(p.Code), strings.TrimSpace(code)) {
			return fmt.Errorf("%w: %s", ErrDuplicateProjectCode, p.Code)
		}
	}
	return nil
}

// ValidateNewEmployee checks name and rejects a badge already in use.
func ValidateNewEmployee(name, badge string, existing []Employee) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if badge == "" {
		return nil
	}
	for _, e := range existing {
		if e.Badge != "" && strings.EqualFold(e.Badge, badge) {
			return fmt.Errorf("%w: %s", ErrDuplicateBadge, e.Badge)
		}
	}
	return nil
}
