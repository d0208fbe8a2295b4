package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/markargand/labourlog/internal/clock"
	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/filter"
	"github.com/markargand/labourlog/internal/overtime"
	"github.com/markargand/labourlog/internal/stats"
	"github.com/markargand/labourlog/internal/storage"
	"github.com/markargand/labourlog/internal/timeutil"
)

// Common errors for the entry service
var (
	ErrAmbiguousID = errors.New("id prefix matches more than one entry")
	ErrEmptyID     = errors.New("entry id cannot be empty")
)

// View is a filtered list of entries with its overtime split and totals.
type View struct {
	Filter  filter.Filter
	Entries []entry.TimeEntry
	Alloc   overtime.Allocation
	Totals  stats.Totals
}

// EntryService provides operations for logging and approving time entries
type EntryService struct {
	session *Session
	scope   overtime.Scope
}

// NewEntryService creates a new EntryService
func NewEntryService(session *Session, scope overtime.Scope) *EntryService {
	return &EntryService{session: session, scope: scope}
}

// Scope returns the overtime allocation scope used by List.
func (s *EntryService) Scope() overtime.Scope {
	return s.scope
}

// Preview computes the duration in would produce with the current rounding
// increment, without validating or saving anything.
func (s *EntryService) Preview(in entry.Input) clock.Duration {
	st := s.session.Snapshot()
	return in.Duration(st.Settings.RoundingIncrement)
}

// Create validates in and stores a new pending entry.
func (s *EntryService) Create(in entry.Input) (entry.TimeEntry, error) {
	var created entry.TimeEntry
	err := s.session.update(false, func(st *storage.State) error {
		e, err := entry.New(s.session.NewID(), in, st.Directory(), st.Settings.RoundingIncrement, s.session.Now())
		if err != nil {
			return err
		}
		st.Entries = append(st.Entries, e)
		created = e
		return nil
	})
	if err != nil {
		return entry.TimeEntry{}, err
	}
	return created, nil
}

// List returns the entries matching f, newest day first and by start time
// within a day, together with their overtime split and totals.
func (s *EntryService) List(f filter.Filter) View {
	st := s.session.Snapshot()
	dir := st.Directory()

	visible := filter.Apply(st.Entries, f, dir)
	visible = append([]entry.TimeEntry(nil), visible...)
	SortEntries(visible)

	alloc := overtime.AllocateScoped(visible, st.Entries, st.Settings.DailyOvertimeThreshold, s.scope)
	return View{
		Filter:  f,
		Entries: visible,
		Alloc:   alloc,
		Totals:  stats.CalculateTotals(visible, alloc, dir),
	}
}

// SortEntries orders entries newest day first, then by employee and start time.
func SortEntries(entries []entry.TimeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		return a.StartMinutes() < b.StartMinutes()
	})
}

// Get returns the entry whose id is ref or starts with ref.
func (s *EntryService) Get(ref string) (entry.TimeEntry, error) {
	st := s.session.Snapshot()
	i, err := findEntry(st, ref)
	if err != nil {
		return entry.TimeEntry{}, err
	}
	return st.Entries[i], nil
}

// findEntry resolves ref to an index: an exact id match wins, otherwise the
// prefix must be unique.
func findEntry(st storage.State, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, ErrEmptyID
	}
	if i := st.EntryIndex(ref); i >= 0 {
		return i, nil
	}

	found := -1
	for i, e := range st.Entries {
		if strings.HasPrefix(e.ID, ref) {
			if found >= 0 {
				return -1, fmt.Errorf("%w: %s", ErrAmbiguousID, ref)
			}
			found = i
		}
	}
	if found < 0 {
		return -1, fmt.Errorf("%w: %s", entry.ErrEntryNotFound, ref)
	}
	return found, nil
}

// SetStatus changes one entry's status. Locked entries are refused and
// approval locks the entry.
func (s *EntryService) SetStatus(ref string, status entry.Status) (entry.TimeEntry, error) {
	var updated entry.TimeEntry
	err := s.session.update(false, func(st *storage.State) error {
		i, err := findEntry(*st, ref)
		if err != nil {
			return err
		}
		if err := st.Entries[i].SetStatus(status); err != nil {
			return err
		}
		updated = st.Entries[i]
		return nil
	})
	return updated, err
}

// Approve approves and locks one entry.
func (s *EntryService) Approve(ref string) (entry.TimeEntry, error) {
	return s.SetStatus(ref, entry.StatusApproved)
}

// Reject rejects one entry.
func (s *EntryService) Reject(ref string) (entry.TimeEntry, error) {
	return s.SetStatus(ref, entry.StatusRejected)
}

// Delete removes an unlocked entry. The stored state is backed up first.
func (s *EntryService) Delete(ref string) (entry.TimeEntry, error) {
	var deleted entry.TimeEntry
	err := s.session.update(true, func(st *storage.State) error {
		i, err := findEntry(*st, ref)
		if err != nil {
			return err
		}
		if err := st.Entries[i].CanDelete(); err != nil {
			return err
		}
		deleted = st.Entries[i]
		st.Entries = append(st.Entries[:i], st.Entries[i+1:]...)
		return nil
	})
	return deleted, err
}

// ApproveWeek approves and locks every entry in the ISO week label.
func (s *EntryService) ApproveWeek(week string) (int, error) {
	return s.batch(week, entry.ApproveWeek)
}

// RejectWeek rejects and unlocks every entry in the ISO week label.
func (s *EntryService) RejectWeek(week string) (int, error) {
	return s.batch(week, entry.RejectWeek)
}

func (s *EntryService) batch(week string, apply func([]entry.TimeEntry, string) int) (int, error) {
	if _, err := timeutil.ParseWeekLabel(week); err != nil {
		return 0, err
	}

	n := 0
	err := s.session.update(false, func(st *storage.State) error {
		n = apply(st.Entries, week)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// CurrentWeek returns the ISO week label for the session clock.
func (s *EntryService) CurrentWeek() string {
	return timeutil.WeekLabel(s.session.Now())
}
