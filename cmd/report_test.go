package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/markargand/labourlog/internal/filter"
)

func TestWeeklyReport(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	env.create(t, "id-001", "id-003", "2024-03-04", "06:00", "12:00")
	env.create(t, "id-001", "id-004", "2024-03-04", "13:00", "17:00")
	env.create(t, "id-002", "id-003", "2024-03-12", "08:00", "10:00")

	weeklyReport(env.svc, "2024-W10")

	env.expectOK(t,
		"Week 2024-W10 (2024-03-04 to 2024-03-10)",
		"By employee:",
		"By project:",
		"10.00h  base     8.00h  OT    2.00h  (2 entries)")
	if strings.Contains(env.stdout.String(), "Grace") {
		t.Errorf("report includes an entry from another week:\n%s", env.stdout.String())
	}

	env.reset()
	weeklyReport(env.svc, "2024-W20")
	env.expectOK(t, "No entries this week")

	env.reset()
	weeklyReport(env.svc, "2024-20")
	env.expectExit(t, "Invalid week")
}

func TestExportEntries_CSVToStdout(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	env.create(t, "id-001", "id-003", "2024-03-04", "08:00", "12:00")

	exportEntries(env.svc, "CSV", "", filter.Filter{})

	env.expectOK(t,
		"Date,Employee,Project Code,Project Name,Work Type,Start,End,Break(min),Hours,Base,OT,Status,Notes\n",
		"2024-03-04,Ada,P-1,Press line,,08:00,12:00,0,4.00,4.00,0.00,pending,")
}

func TestExportEntries_XLSXFile(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	env.create(t, "id-001", "id-003", "2024-03-04", "08:00", "12:00")
	env.create(t, "id-002", "id-004", "2024-03-05", "08:00", "10:00")
	out := filepath.Join(env.dir, "week.xlsx")

	exportEntries(env.svc, "xlsx", out, filter.Filter{ProjectID: "id-003"})

	env.expectOK(t, "Exported XLSX to "+out)
	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Entries")
	if err != nil {
		t.Fatal(err)
	}
	// header, one entry, totals
	if len(rows) != 3 || rows[1][1] != "Ada" {
		t.Errorf("rows = %v", rows)
	}
}

func TestExportEntries_Errors(t *testing.T) {
	env := newTestEnv(t)

	exportEntries(env.svc, "docx", "", filter.Filter{})
	env.expectExit(t, "Unsupported export format")

	env.reset()
	exportEntries(env.svc, "pdf", filepath.Join(env.dir, "missing", "out.pdf"), filter.Filter{})
	env.expectExit(t, "Failed to write export file")
}
