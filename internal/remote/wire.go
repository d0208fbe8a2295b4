package remote

import (
	"time"

	"github.com/markargand/labourlog/internal/entry"
)

// WireEntry is the backend's snake_case entry shape.
type WireEntry struct {
	ID                 string    `json:"id"`
	EmployeeID         string    `json:"employee_id"`
	ProjectID          string    `json:"project_id"`
	Date               string    `json:"date"`
	Start              string    `json:"start"`
	End                string    `json:"end"`
	BreakMinutes       int       `json:"break_minutes"`
	WorkType           string    `json:"work_type"`
	Notes              string    `json:"notes"`
	Hours              float64   `json:"hours"`
	RoundedFromMinutes int       `json:"rounded_from_minutes"`
	RoundingIncrement  int       `json:"rounding_increment"`
	Status             string    `json:"status"`
	Locked             bool      `json:"locked"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToWire renames e's fields for the backend.
func ToWire(e entry.TimeEntry) WireEntry {
	return WireEntry{
		ID:                 e.ID,
		EmployeeID:         e.EmployeeID,
		ProjectID:          e.ProjectID,
		Date:               e.Date,
		Start:              e.Start,
		End:                e.End,
		BreakMinutes:       e.BreakMinutes,
		WorkType:           e.WorkType,
		Notes:              e.Notes,
		Hours:              e.Hours,
		RoundedFromMinutes: e.RoundedFromMinutes,
		RoundingIncrement:  e.RoundingIncrement,
		Status:             string(e.Status),
		Locked:             e.Locked,
		CreatedAt:          e.CreatedAt,
	}
}

// TimeEntry renames w's fields back to the local model.
func (w WireEntry) TimeEntry() entry.TimeEntry {
	return entry.TimeEntry{
		ID:                 w.ID,
		EmployeeID:         w.EmployeeID,
		ProjectID:          w.ProjectID,
		Date:               w.Date,
		Start:              w.Start,
		End:                w.End,
		BreakMinutes:       w.BreakMinutes,
		WorkType:           w.WorkType,
		Notes:              w.Notes,
		Hours:              w.Hours,
		RoundedFromMinutes: w.RoundedFromMinutes,
		RoundingIncrement:  w.RoundingIncrement,
		Status:             entry.Status(w.Status),
		Locked:             w.Locked,
		CreatedAt:          w.CreatedAt,
	}
}
