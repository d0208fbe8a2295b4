package service

import (
	"errors"
	"testing"

	"github.com/markargand/labourlog/internal/entry"
)

func TestKioskService_ClockInOut(t *testing.T) {
	svc, clk := newTestServices(t)
	ada, _, p1, _ := seedDirectory(t, svc)

	clk.Set("07:58")
	shift, emp, err := svc.Kiosk.ClockIn("1001", "4321", "p-1")
	if err != nil {
		t.Fatalf("ClockIn() error: %v", err)
	}
	if emp.ID != ada.ID || shift.ProjectID != p1.ID || shift.Start != "07:58" || shift.Date != "2024-03-04" {
		t.Errorf("ClockIn() = %+v %+v", shift, emp)
	}

	if _, _, err := svc.Kiosk.ClockIn("1001", "4321", "P-1"); !errors.Is(err, ErrAlreadyClockedIn) {
		t.Errorf("second ClockIn() = %v, expected ErrAlreadyClockedIn", err)
	}

	_, open, err := svc.Kiosk.Status("1001")
	if err != nil || open == nil {
		t.Fatalf("Status() = %v, %v", open, err)
	}

	clk.Set("16:30")
	e, err := svc.Kiosk.ClockOut("1001", "4321", 30)
	if err != nil {
		t.Fatalf("ClockOut() error: %v", err)
	}
	// 07:58-16:30 less 30 = 482 minutes, rounded to 480
	if e.RoundedFromMinutes != 482 || e.Hours != 8 {
		t.Errorf("ClockOut() entry = %d min, %v h", e.RoundedFromMinutes, e.Hours)
	}
	if e.WorkType != KioskWorkType || e.Status != entry.StatusPending {
		t.Errorf("ClockOut() entry = %+v", e)
	}
	if len(svc.Kiosk.OpenShifts()) != 0 {
		t.Error("shift still open after ClockOut()")
	}

	if _, err := svc.Kiosk.ClockOut("1001", "4321", 0); !errors.Is(err, ErrNotClockedIn) {
		t.Errorf("ClockOut() without shift = %v", err)
	}
}

func TestKioskService_Auth(t *testing.T) {
	svc, _ := newTestServices(t)
	seedDirectory(t, svc)

	if _, _, err := svc.Kiosk.ClockIn("9999", "", "P-1"); !errors.Is(err, ErrUnknownBadge) {
		t.Errorf("unknown badge = %v", err)
	}
	if _, _, err := svc.Kiosk.ClockIn("1001", "0000", "P-1"); !errors.Is(err, ErrWrongPIN) {
		t.Errorf("wrong PIN = %v", err)
	}
	if _, _, err := svc.Kiosk.ClockIn("1002", "", "P-404"); !errors.Is(err, entry.ErrUnknownProject) {
		t.Errorf("unknown project = %v", err)
	}
	// Grace has no PIN, so any PIN is accepted
	if _, _, err := svc.Kiosk.ClockIn("1002", "whatever", "P-2"); err != nil {
		t.Errorf("badge without PIN = %v", err)
	}
	if _, _, err := svc.Kiosk.Status("9999"); !errors.Is(err, ErrUnknownBadge) {
		t.Errorf("Status(unknown) = %v", err)
	}
}

func TestKioskService_SameMinuteKeepsShiftOpen(t *testing.T) {
	svc, clk := newTestServices(t)
	seedDirectory(t, svc)

	clk.Set("10:00")
	if _, _, err := svc.Kiosk.ClockIn("1002", "", "P-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Kiosk.ClockOut("1002", "", 0); !errors.Is(err, entry.ErrEndBeforeStart) {
		t.Errorf("same-minute ClockOut() = %v, expected ErrEndBeforeStart", err)
	}
	if len(svc.Kiosk.OpenShifts()) != 1 {
		t.Error("failed ClockOut() should keep the shift open")
	}
}

func TestKioskService_OvernightShift(t *testing.T) {
	svc, clk := newTestServices(t)
	seedDirectory(t, svc)

	clk.t = mustTime("2024-03-04 22:00")
	if _, _, err := svc.Kiosk.ClockIn("1002", "", "P-1"); err != nil {
		t.Fatal(err)
	}
	clk.t = mustTime("2024-03-05 06:00")
	e, err := svc.Kiosk.ClockOut("1002", "", 30)
	if err != nil {
		t.Fatalf("overnight ClockOut() error: %v", err)
	}
	if e.Date != "2024-03-04" || e.Start != "22:00" || e.End != "06:00" {
		t.Errorf("entry = %s %s-%s, expected 2024-03-04 22:00-06:00", e.Date, e.Start, e.End)
	}
	if e.Hours != 7.5 {
		t.Errorf("Hours = %v, expected 7.5", e.Hours)
	}
	if len(svc.Kiosk.OpenShifts()) != 0 {
		t.Error("overnight ClockOut() should close the shift")
	}
}

func TestKioskService_LaterDayUsesElapsedTime(t *testing.T) {
	svc, clk := newTestServices(t)
	seedDirectory(t, svc)

	clk.t = mustTime("2024-03-04 22:00")
	if _, _, err := svc.Kiosk.ClockIn("1002", "", "P-1"); err != nil {
		t.Fatal(err)
	}
	clk.t = mustTime("2024-03-05 23:00")
	if _, err := svc.Kiosk.ClockOut("1002", "", 500); !errors.Is(err, entry.ErrBreakOutOfRange) {
		t.Errorf("ClockOut(break 500) = %v, expected ErrBreakOutOfRange", err)
	}
	e, err := svc.Kiosk.ClockOut("1002", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if e.Hours != 25 {
		t.Errorf("Hours = %v, expected 25 (elapsed since clock-in)", e.Hours)
	}
	if e.Notes != "clocked out 2024-03-05 23:00" {
		t.Errorf("Notes = %q", e.Notes)
	}
}
