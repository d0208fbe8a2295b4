package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/storage"
	"github.com/markargand/labourlog/internal/timeutil"
)

// KioskWorkType is the work type recorded on entries created at clock-out
const KioskWorkType = "kiosk"

// Kiosk errors
var (
	ErrUnknownBadge     = errors.New("badge not recognised")
	ErrWrongPIN         = errors.New("incorrect PIN")
	ErrAlreadyClockedIn = errors.New("already clocked in")
	ErrNotClockedIn     = errors.New("not clocked in")
)

// KioskService clocks employees in and out by badge.
type KioskService struct {
	session *Session
	entries *EntryService
}

// NewKioskService creates a new KioskService
func NewKioskService(session *Session, entries *EntryService) *KioskService {
	return &KioskService{session: session, entries: entries}
}

// authenticate resolves badge to an employee and checks the PIN when one is set.
func authenticate(st storage.State, badge, pin string) (entry.Employee, error) {
	emp, ok := st.Directory().EmployeeByBadge(strings.TrimSpace(badge))
	if !ok {
		return entry.Employee{}, fmt.Errorf("%w: %s", ErrUnknownBadge, badge)
	}
	if emp.PIN != "" && emp.PIN != strings.TrimSpace(pin) {
		return entry.Employee{}, ErrWrongPIN
	}
	return emp, nil
}

func shiftIndex(st storage.State, employeeID string) int {
	for i, sh := range st.OpenShifts {
		if sh.EmployeeID == employeeID {
			return i
		}
	}
	return -1
}

// ClockIn opens a shift for the badge holder against projectCode.
func (s *KioskService) ClockIn(badge, pin, projectCode string) (entry.Shift, entry.Employee, error) {
	var shift entry.Shift
	var emp entry.Employee
	err := s.session.update(false, func(st *storage.State) error {
		var err error
		if emp, err = authenticate(*st, badge, pin); err != nil {
			return err
		}
		if i := shiftIndex(*st, emp.ID); i >= 0 {
			return fmt.Errorf("%w since %s", ErrAlreadyClockedIn, st.OpenShifts[i].Start)
		}
		proj, ok := st.Directory().ProjectByCode(strings.TrimSpace(projectCode))
		if !ok {
			return fmt.Errorf("%w: %s", entry.ErrUnknownProject, projectCode)
		}

		now := s.session.Now()
		shift = entry.Shift{
			EmployeeID:  emp.ID,
			ProjectID:   proj.ID,
			Date:        timeutil.Today(now),
			Start:       now.Format("15:04"),
			ClockedInAt: now,
		}
		st.OpenShifts = append(st.OpenShifts, shift)
		return nil
	})
	return shift, emp, err
}

// ClockOut closes the badge holder's shift and records it as a pending entry
// through the normal creation path. If the entry is rejected (for example a
// clock-out in the same minute) the shift stays open.
//
// A shift that ends on a later calendar day is booked on the clock-in date
// with the elapsed time since clock-in as manual hours, less the break.
func (s *KioskService) ClockOut(badge, pin string, breakMinutes int) (entry.TimeEntry, error) {
	var created entry.TimeEntry
	err := s.session.update(false, func(st *storage.State) error {
		emp, err := authenticate(*st, badge, pin)
		if err != nil {
			return err
		}
		i := shiftIndex(*st, emp.ID)
		if i < 0 {
			return ErrNotClockedIn
		}
		shift := st.OpenShifts[i]

		now := s.session.Now()
		in := entry.Input{
			EmployeeID:   emp.ID,
			ProjectID:    shift.ProjectID,
			Date:         shift.Date,
			Start:        shift.Start,
			End:          now.Format("15:04"),
			BreakMinutes: breakMinutes,
			WorkType:     KioskWorkType,
		}
		if timeutil.Today(now) != shift.Date && !shift.ClockedInAt.IsZero() {
			if breakMinutes < 0 || breakMinutes > entry.MaxBreakMinutes {
				return entry.ErrBreakOutOfRange
			}
			worked := int(now.Sub(shift.ClockedInAt)/time.Minute) - breakMinutes
			hours := float64(worked) / 60
			in.ManualHours = &hours
			in.Notes = fmt.Sprintf("clocked out %s %s", timeutil.Today(now), in.End)
		}
		e, err := entry.New(s.session.NewID(), in, st.Directory(), st.Settings.RoundingIncrement, now)
		if err != nil {
			return err
		}

		st.Entries = append(st.Entries, e)
		st.OpenShifts = append(st.OpenShifts[:i], st.OpenShifts[i+1:]...)
		created = e
		return nil
	})
	return created, err
}

// OpenShifts returns the shifts that have not been clocked out.
func (s *KioskService) OpenShifts() []entry.Shift {
	return s.session.Snapshot().OpenShifts
}

// Status returns the badge holder's open shift, if any.
func (s *KioskService) Status(badge string) (entry.Employee, *entry.Shift, error) {
	st := s.session.Snapshot()
	emp, ok := st.Directory().EmployeeByBadge(strings.TrimSpace(badge))
	if !ok {
		return entry.Employee{}, nil, fmt.Errorf("%w: %s", ErrUnknownBadge, badge)
	}
	if i := shiftIndex(st, emp.ID); i >= 0 {
		sh := st.OpenShifts[i]
		return emp, &sh, nil
	}
	return emp, nil, nil
}
