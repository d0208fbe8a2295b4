package entry

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2024, time.March, 4, 17, 0, 0, 0, time.UTC)

func testDirectory() *Directory {
	return NewDirectory(
		[]Employee{
			{ID: "e1", Name: "Aoife Byrne", Badge: "B100", PIN: "1234"},
			{ID: "e2", Name: "Tomas Walsh"},
		},
		[]Project{
			{ID: "p1", Code: "PRJ-1", Name: "Line Retool"},
			{ID: "p2", Code: "MAINT", Name: "Maintenance"},
		},
	)
}

func hoursPtr(h float64) *float64 { return &h }

func TestNew_Valid(t *testing.T) {
	in := Input{
		EmployeeID:   "e1",
		ProjectID:    "p1",
		Date:         "2024-03-04",
		Start:        "08:00",
		End:          "16:30",
		BreakMinutes: 30,
		WorkType:     " welding ",
		Notes:        "bay 3",
	}

	e, err := New("id-1", in, testDirectory(), 15, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Hours != 8 {
		t.Errorf("expected 8 hours, got %v", e.Hours)
	}
	if e.RoundedFromMinutes != 480 {
		t.Errorf("expected 480 raw minutes, got %d", e.RoundedFromMinutes)
	}
	if e.RoundingIncrement != 15 {
		t.Errorf("expected increment 15, got %d", e.RoundingIncrement)
	}
	if e.Status != StatusPending || e.Locked {
		t.Errorf("expected pending unlocked entry, got %s locked=%v", e.Status, e.Locked)
	}
	if e.WorkType != "welding" {
		t.Errorf("expected trimmed work type, got %q", e.WorkType)
	}
	if !e.CreatedAt.Equal(testNow) {
		t.Errorf("expected createdAt %v, got %v", testNow, e.CreatedAt)
	}
	if e.Week() != "2024-W10" {
		t.Errorf("expected week 2024-W10, got %s", e.Week())
	}
}

func TestNew_NormalizesDate(t *testing.T) {
	in := Input{EmployeeID: "e1", ProjectID: "p1", Date: "04/03/2024", ManualHours: hoursPtr(2)}
	e, err := New("id", in, testDirectory(), 15, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Date != "2024-03-04" {
		t.Errorf("expected normalized date, got %q", e.Date)
	}
}

func TestNew_ManualOverride(t *testing.T) {
	in := Input{EmployeeID: "e2", ProjectID: "p2", Date: "2024-03-04", ManualHours: hoursPtr(7.4)}
	e, err := New("id", in, testDirectory(), 15, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.RoundedFromMinutes != 444 {
		t.Errorf("expected 444 raw minutes, got %d", e.RoundedFromMinutes)
	}
	if e.Hours != 7.5 {
		t.Errorf("expected 7.5 hours, got %v", e.Hours)
	}
}

func TestNew_ValidationErrors(t *testing.T) {
	base := Input{EmployeeID: "e1", ProjectID: "p1", Date: "2024-03-04", Start: "08:00", End: "12:00"}

	tests := []struct {
		name   string
		modify func(in *Input)
		want   error
	}{
		{"no employee", func(in *Input) { in.EmployeeID = "" }, ErrNoEmployee},
		{"no project", func(in *Input) { in.ProjectID = " " }, ErrNoProject},
		{"no date", func(in *Input) { in.Date = "" }, ErrNoDate},
		{"bad date", func(in *Input) { in.Date = "2024-13-45" }, ErrInvalidDate},
		{"unknown employee", func(in *Input) { in.EmployeeID = "ghost" }, ErrUnknownEmployee},
		{"unknown project", func(in *Input) { in.ProjectID = "ghost" }, ErrUnknownProject},
		{"word start time", func(in *Input) { in.Start = "8am" }, ErrInvalidTime},
		{"end past midnight", func(in *Input) { in.End = "31:99" }, ErrInvalidTime},
		{"missing end", func(in *Input) { in.End = "" }, ErrInvalidTime},
		{"end equals start", func(in *Input) { in.End = "08:00" }, ErrEndBeforeStart},
		{"end before start", func(in *Input) { in.End = "07:00" }, ErrEndBeforeStart},
		{"negative break", func(in *Input) { in.BreakMinutes = -1 }, ErrBreakOutOfRange},
		{"break too long", func(in *Input) { in.BreakMinutes = 241 }, ErrBreakOutOfRange},
		{"break eats all time", func(in *Input) { in.BreakMinutes = 240 }, ErrNonPositiveHours},
		{"rounds to zero", func(in *Input) { in.End = "08:05" }, ErrNonPositiveHours},
		{"zero manual hours", func(in *Input) { in.ManualHours = hoursPtr(0) }, ErrNonPositiveHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.modify(&in)
			_, err := New("id", in, testDirectory(), 15, testNow)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNew_BreakBoundaryAccepted(t *testing.T) {
	in := Input{EmployeeID: "e1", ProjectID: "p1", Date: "2024-03-04", Start: "06:00", End: "18:00", BreakMinutes: 240}
	e, err := New("id", in, testDirectory(), 15, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Hours != 8 {
		t.Errorf("expected 8 hours, got %v", e.Hours)
	}
}

func TestValidateNewProject(t *testing.T) {
	existing := []Project{{ID: "p1", Code: "PRJ-1", Name: "Line Retool"}}

	if err := ValidateNewProject("PRJ-2", "New", existing); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateNewProject("prj-1", "Dup", existing); !errors.Is(err, ErrDuplicateProjectCode) {
		t.Errorf("expected duplicate error, got %v", err)
	}
	if err := ValidateNewProject("", "x", existing); !errors.Is(err, ErrEmptyCode) {
		t.Errorf("expected empty code error, got %v", err)
	}
	if err := ValidateNewProject("X", " ", existing); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected empty name error, got %v", err)
	}
}

func TestValidateNewEmployee(t *testing.T) {
	existing := []Employee{{ID: "e1", Name: "A", Badge: "B100"}}

	if err := ValidateNewEmployee("B", "", existing); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateNewEmployee("B", "b100", existing); !errors.Is(err, ErrDuplicateBadge) {
		t.Errorf("expected duplicate badge error, got %v", err)
	}
	if err := ValidateNewEmployee("", "", existing); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected empty name error, got %v", err)
	}
}

func TestDirectory_Lookups(t *testing.T) {
	d := testDirectory()

	if got := d.EmployeeName("e1"); got != "Aoife Byrne" {
		t.Errorf("EmployeeName = %q", got)
	}
	if got := d.EmployeeName("missing"); got != "" {
		t.Errorf("expected empty name for missing employee, got %q", got)
	}
	if got := d.ProjectCode("p2"); got != "MAINT" {
		t.Errorf("ProjectCode = %q", got)
	}
	if p, ok := d.ProjectByCode("prj-1"); !ok || p.ID != "p1" {
		t.Errorf("ProjectByCode case-insensitive lookup failed: %v %v", p, ok)
	}
	if e, ok := d.EmployeeByBadge("b100"); !ok || e.ID != "e1" {
		t.Errorf("EmployeeByBadge failed: %v %v", e, ok)
	}
	if _, ok := d.EmployeeByBadge(""); ok {
		t.Error("empty badge should not match")
	}

	var nilDir *Directory
	if nilDir.ProjectName("p1") != "" {
		t.Error("nil directory should return empty names")
	}
}

func TestSettings_Validate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Errorf("default settings invalid: %v", err)
	}
	if err := (Settings{RoundingIncrement: 0, DailyOvertimeThreshold: 8}).Validate(); !errors.Is(err, ErrInvalidIncrement) {
		t.Errorf("expected increment error, got %v", err)
	}
	if err := (Settings{RoundingIncrement: 15, DailyOvertimeThreshold: -1}).Validate(); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("expected threshold error, got %v", err)
	}
}
