package filter

import (
	"strings"

	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/timeutil"
)

// Filter represents the criteria of the filtered entry view.
// All filter fields are optional - empty values match all entries.
type Filter struct {
	ProjectID  string // Exact project id match
	EmployeeID string // Exact employee id match
	From       string // Inclusive lower date bound (YYYY-MM-DD)
	To         string // Inclusive upper date bound (YYYY-MM-DD)
	Query      string // Case-insensitive free-text search
}

// IsEmpty returns true if all filter fields are empty (matches all entries)
func (f Filter) IsEmpty() bool {
	return f.ProjectID == "" && f.EmployeeID == "" && f.From == "" && f.To == "" && strings.TrimSpace(f.Query) == ""
}

// Apply returns the entries that match f, preserving their order.
// If the filter is empty, returns all entries.
func Apply(entries []entry.TimeEntry, f Filter, dir *entry.Directory) []entry.TimeEntry {
	if f.IsEmpty() {
		return entries
	}

	filtered := make([]entry.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e, dir) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Matches reports whether e passes every criterion of f.
func (f Filter) Matches(e entry.TimeEntry, dir *entry.Directory) bool {
	return f.MatchesProject(e) &&
		f.MatchesEmployee(e) &&
		f.MatchesDate(e) &&
		f.MatchesQuery(e, dir)
}

// MatchesProject returns true if the entry belongs to the filter project.
func (f Filter) MatchesProject(e entry.TimeEntry) bool {
	return f.ProjectID == "" || e.ProjectID == f.ProjectID
}

// MatchesEmployee returns true if the entry belongs to the filter employee.
func (f Filter) MatchesEmployee(e entry.TimeEntry) bool {
	return f.EmployeeID == "" || e.EmployeeID == f.EmployeeID
}

// MatchesDate returns true if the entry's date lies within [From, To].
func (f Filter) MatchesDate(e entry.TimeEntry) bool {
	return timeutil.DateInRange(e.Date, f.From, f.To)
}

// MatchesQuery returns true if the query is a case-insensitive substring of the
// employee name, project name, project code, notes, work type or status.
// An empty query matches all entries.
func (f Filter) MatchesQuery(e entry.TimeEntry, dir *entry.Directory) bool {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}

	fields := []string{
		dir.EmployeeName(e.EmployeeID),
		dir.ProjectName(e.ProjectID),
		dir.ProjectCode(e.ProjectID),
		e.Notes,
		e.WorkType,
		string(e.Status),
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
