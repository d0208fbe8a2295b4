package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/filter"
)

func TestReportService_Weekly(t *testing.T) {
	svc, _ := newTestServices(t)
	ada, grace, p1, p2 := seedDirectory(t, svc)

	mustCreate(t, svc, entry.Input{EmployeeID: ada.ID, ProjectID: p1.ID, Date: "2024-03-04", Start: "06:00", End: "11:00"})
	mustCreate(t, svc, entry.Input{EmployeeID: ada.ID, ProjectID: p2.ID, Date: "2024-03-04", Start: "12:00", End: "17:00"})
	mustCreate(t, svc, entry.Input{EmployeeID: grace.ID, ProjectID: p1.ID, Date: "2024-03-10", Start: "08:00", End: "10:00"})
	mustCreate(t, svc, entry.Input{EmployeeID: grace.ID, ProjectID: p1.ID, Date: "2024-03-11", Start: "08:00", End: "10:00"})

	rep, err := svc.Reports.Weekly("2024-W10")
	if err != nil {
		t.Fatalf("Weekly() error: %v", err)
	}
	if rep.Totals.Hours != 12 || rep.Totals.Base != 10 || rep.Totals.OT != 2 || rep.Totals.EntryCount != 3 {
		t.Errorf("Totals = %+v", rep.Totals)
	}
	if len(rep.ByEmployee) != 2 || rep.ByEmployee[0].Key != "Ada" || rep.ByEmployee[0].OT != 2 {
		t.Errorf("ByEmployee = %+v", rep.ByEmployee)
	}
	if len(rep.ByProject) != 2 || rep.ByProject[0].Key != "P-1" || rep.ByProject[0].Hours != 7 {
		t.Errorf("ByProject = %+v", rep.ByProject)
	}

	if _, err := svc.Reports.Weekly("last week"); err == nil {
		t.Error("Weekly() should reject a malformed label")
	}
}

func TestReportService_Export(t *testing.T) {
	svc, _ := newTestServices(t)
	ada, _, p1, p2 := seedDirectory(t, svc)
	mustCreate(t, svc, entry.Input{EmployeeID: ada.ID, ProjectID: p1.ID, Date: "2024-03-04", Start: "08:00", End: "12:00", WorkType: "assembly"})
	mustCreate(t, svc, entry.Input{EmployeeID: ada.ID, ProjectID: p2.ID, Date: "2024-03-05", Start: "08:00", End: "10:00"})

	var buf bytes.Buffer
	if err := svc.Reports.Export(&buf, "csv", filter.Filter{ProjectID: p1.ID}); err != nil {
		t.Fatalf("Export(csv) error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and 1 row, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[1] != "2024-03-04,Ada,P-1,Press line,assembly,08:00,12:00,0,4.00,4.00,0.00,pending," {
		t.Errorf("row = %q", lines[1])
	}

	doc := svc.Reports.Document(filter.Filter{From: "2024-03-05", ProjectID: p2.ID})
	if doc.Subtitle != "P-2, from 2024-03-05" || len(doc.Rows) != 1 {
		t.Errorf("Document() = %q with %d rows", doc.Subtitle, len(doc.Rows))
	}

	if err := svc.Reports.Export(&buf, "odt", filter.Filter{}); err == nil {
		t.Error("Export() should reject unknown formats")
	}
}
