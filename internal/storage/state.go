// Package storage persists the application state as a single keyed blob.
// Two backends are provided: a JSON file with rotating backups and a
// SQLite database holding the blob in a key/value table.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/markargand/labourlog/internal/clock"
	"github.com/markargand/labourlog/internal/entry"
)

// DefaultAPIBase is the remote API used until another is configured
const DefaultAPIBase = "https://factory-labour-logger-backend.onrender.com"

// State is everything the application persists.
type State struct {
	Employees  []entry.Employee  `json:"employees"`
	Projects   []entry.Project   `json:"projects"`
	Entries    []entry.TimeEntry `json:"entries"`
	Settings   entry.Settings    `json:"settings"`
	APIBase    string            `json:"apiBase"`
	OpenShifts []entry.Shift     `json:"openShifts,omitempty"`
}

// NewState returns an empty state with default settings.
func NewState() State {
	return State{
		Employees: []entry.Employee{},
		Projects:  []entry.Project{},
		Entries:   []entry.TimeEntry{},
		Settings:  entry.DefaultSettings(),
		APIBase:   DefaultAPIBase,
	}
}

// Clone returns a copy of s that shares no slices with it.
func (s State) Clone() State {
	c := s
	c.Employees = append([]entry.Employee{}, s.Employees...)
	c.Projects = append([]entry.Project{}, s.Projects...)
	c.Entries = append([]entry.TimeEntry{}, s.Entries...)
	if s.OpenShifts != nil {
		c.OpenShifts = append([]entry.Shift{}, s.OpenShifts...)
	}
	return c
}

// Directory indexes the state's employees and projects.
func (s State) Directory() *entry.Directory {
	return entry.NewDirectory(s.Employees, s.Projects)
}

// EntryIndex returns the position of the entry with id, or -1.
func (s State) EntryIndex(id string) int {
	for i, e := range s.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Decode parses a state blob. Missing settings and API base fall back to defaults.
func Decode(data []byte) (State, error) {
	st := NewState()
	if len(strings.TrimSpace(string(data))) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return NewState(), err
	}

	if st.Settings.RoundingIncrement == 0 && st.Settings.DailyOvertimeThreshold == 0 {
		st.Settings = entry.DefaultSettings()
	}
	if st.APIBase == "" {
		st.APIBase = DefaultAPIBase
	}
	if st.Employees == nil {
		st.Employees = []entry.Employee{}
	}
	if st.Projects == nil {
		st.Projects = []entry.Project{}
	}
	if st.Entries == nil {
		st.Entries = []entry.TimeEntry{}
	}
	return st, nil
}

// Encode serialises a state blob.
func Encode(st State) ([]byte, error) {
	return json.MarshalIndent(st, "", "  ")
}

// Check returns a description of every consistency problem found in st:
// duplicate ids, dangling references and hours that do not match the
// entry's own rounding.
func Check(st State) []string {
	var problems []string
	dir := st.Directory()
	seen := make(map[string]bool, len(st.Entries))

	for i, e := range st.Entries {
		label := fmt.Sprintf("entry %d (%s)", i+1, e.ID)
		if seen[e.ID] {
			problems = append(problems, label+": duplicate id")
		}
		seen[e.ID] = true

		if _, ok := dir.Employee(e.EmployeeID); !ok {
			problems = append(problems, fmt.Sprintf("%s: unknown employee %q", label, e.EmployeeID))
		}
		if _, ok := dir.Project(e.ProjectID); !ok {
			problems = append(problems, fmt.Sprintf("%s: unknown project %q", label, e.ProjectID))
		}
		if e.Hours < 0 {
			problems = append(problems, label+": negative hours")
		}
		want := clock.MinutesToHours(clock.RoundToIncrement(e.RoundedFromMinutes, e.RoundingIncrement))
		if want != e.Hours {
			problems = append(problems, fmt.Sprintf("%s: hours %.2f do not match %d minutes at %d-minute rounding",
				label, e.Hours, e.RoundedFromMinutes, e.RoundingIncrement))
		}
	}

	codes := make(map[string]bool, len(st.Projects))
	for _, p := range st.Projects {
		c := strings.ToLower(strings.TrimSpace(p.Code))
		if codes[c] {
			problems = append(problems, fmt.Sprintf("project %s: duplicate code %q", p.ID, p.Code))
		}
		codes[c] = true
	}

	return problems
}
