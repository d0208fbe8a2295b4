package stats

import (
	"testing"

	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/overtime"
)

func fixtures() ([]entry.TimeEntry, *entry.Directory) {
	dir := entry.NewDirectory(
		[]entry.Employee{{ID: "e1", Name: "Aoife"}, {ID: "e2", Name: "Tomas"}},
		[]entry.Project{{ID: "p1", Code: "PRJ-1", Name: "Retool"}, {ID: "p2", Code: "MAINT", Name: "Maintenance"}},
	)
	entries := []entry.TimeEntry{
		{ID: "a", EmployeeID: "e1", ProjectID: "p1", Date: "2024-03-04", Start: "06:00", Hours: 6},
		{ID: "b", EmployeeID: "e1", ProjectID: "p2", Date: "2024-03-04", Start: "13:00", Hours: 4.5},
		{ID: "c", EmployeeID: "e2", ProjectID: "p1", Date: "2024-03-05", Start: "07:00", Hours: 8.25},
		{ID: "d", EmployeeID: "e2", ProjectID: "p2", Date: "2024-03-11", Start: "07:00", Hours: 3},
		{ID: "x", EmployeeID: "ghost", ProjectID: "gone", Date: "2024-03-06", Start: "07:00", Hours: 1},
	}
	return entries, dir
}

func find(bs []Breakdown, key string) (Breakdown, bool) {
	for _, b := range bs {
		if b.Key == key {
			return b, true
		}
	}
	return Breakdown{}, false
}

func TestCalculateTotals(t *testing.T) {
	entries, dir := fixtures()
	alloc := overtime.Allocate(entries, 8)

	totals := CalculateTotals(entries, alloc, dir)

	if totals.EntryCount != 5 {
		t.Errorf("expected 5 entries, got %d", totals.EntryCount)
	}
	if totals.Hours != 22.75 {
		t.Errorf("expected 22.75 hours, got %v", totals.Hours)
	}
	// e1 day: 6+4.5 -> 2.5 OT; e2 day: 8.25 -> 0.25 OT
	if totals.OT != 2.75 {
		t.Errorf("expected 2.75 OT, got %v", totals.OT)
	}
	if totals.Base != 20 {
		t.Errorf("expected 20 base, got %v", totals.Base)
	}

	prj1, ok := find(totals.ByProject, "PRJ-1")
	if !ok || prj1.Hours != 14.25 || prj1.EntryCount != 2 || prj1.OT != 0.25 {
		t.Errorf("PRJ-1 breakdown = %+v", prj1)
	}
	maint, ok := find(totals.ByProject, "MAINT")
	if !ok || maint.Hours != 7.5 || maint.OT != 2.5 {
		t.Errorf("MAINT breakdown = %+v", maint)
	}
	orphan, ok := find(totals.ByProject, "")
	if !ok || orphan.Hours != 1 {
		t.Errorf("missing project should group under empty key, got %+v", orphan)
	}

	if totals.ByProject[0].Key != "PRJ-1" {
		t.Errorf("expected largest group first, got %q", totals.ByProject[0].Key)
	}

	aoife, ok := find(totals.ByEmployee, "Aoife")
	if !ok || aoife.Hours != 10.5 || aoife.Base != 8 || aoife.OT != 2.5 {
		t.Errorf("Aoife breakdown = %+v", aoife)
	}
	if _, ok := find(totals.ByEmployee, ""); !ok {
		t.Error("missing employee should group under empty key")
	}
}

func TestCalculateTotals_Empty(t *testing.T) {
	totals := CalculateTotals(nil, nil, nil)
	if totals.EntryCount != 0 || totals.Hours != 0 {
		t.Errorf("expected zero totals, got %+v", totals)
	}
	if len(totals.ByProject) != 0 || len(totals.ByEmployee) != 0 {
		t.Error("expected no breakdowns")
	}
}

func TestCalculateTotals_UnallocatedEntriesHaveNoSplit(t *testing.T) {
	entries, dir := fixtures()
	totals := CalculateTotals(entries, overtime.Allocation{}, dir)
	if totals.Hours != 22.75 || totals.Base != 0 || totals.OT != 0 {
		t.Errorf("unexpected totals %+v", totals)
	}
}

func TestCalculateWeekly(t *testing.T) {
	entries, dir := fixtures()
	alloc := overtime.Allocate(entries, 8)

	report := CalculateWeekly(entries, alloc, dir, "2024-W10")

	if report.Week != "2024-W10" {
		t.Errorf("expected week label, got %q", report.Week)
	}
	if report.Totals.EntryCount != 4 {
		t.Errorf("expected 4 entries in week, got %d", report.Totals.EntryCount)
	}
	if report.Totals.Hours != 19.75 {
		t.Errorf("expected 19.75 hours, got %v", report.Totals.Hours)
	}

	tomas, ok := find(report.ByEmployee, "Tomas")
	if !ok || tomas.Hours != 8.25 || tomas.OT != 0.25 {
		t.Errorf("Tomas weekly = %+v", tomas)
	}
	maint, ok := find(report.ByProject, "MAINT")
	if !ok || maint.Hours != 4.5 {
		t.Errorf("MAINT weekly = %+v", maint)
	}

	other := CalculateWeekly(entries, alloc, dir, "2024-W11")
	if other.Totals.EntryCount != 1 || other.Totals.Hours != 3 {
		t.Errorf("W11 totals = %+v", other.Totals)
	}

	none := CalculateWeekly(entries, alloc, dir, "2030-W01")
	if none.Totals.EntryCount != 0 || len(none.ByEmployee) != 0 {
		t.Errorf("expected empty report, got %+v", none)
	}
}

func TestCalculateWeekly_NoDoubleCounting(t *testing.T) {
	entries, dir := fixtures()
	alloc := overtime.Allocate(entries, 8)
	report := CalculateWeekly(entries, alloc, dir, "2024-W10")

	var byEmp, byProj float64
	var empCount, projCount int
	for _, b := range report.ByEmployee {
		byEmp += b.Hours
		empCount += b.EntryCount
	}
	for _, b := range report.ByProject {
		byProj += b.Hours
		projCount += b.EntryCount
	}
	if empCount != report.Totals.EntryCount || projCount != report.Totals.EntryCount {
		t.Errorf("group counts %d/%d differ from total %d", empCount, projCount, report.Totals.EntryCount)
	}
	if byEmp != report.Totals.Hours || byProj != report.Totals.Hours {
		t.Errorf("group hours %v/%v differ from total %v", byEmp, byProj, report.Totals.Hours)
	}
}
