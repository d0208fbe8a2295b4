// Package report turns entries into export rows and renders them through
// pluggable exporters (CSV, XLSX, PDF).
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/overtime"
	"github.com/markargand/labourlog/internal/stats"
)

// Columns is the fixed export column order.
var Columns = []string{
	"Date", "Employee", "Project Code", "Project Name", "Work Type",
	"Start", "End", "Break(min)", "Hours", "Base", "OT", "Status", "Notes",
}

// Row is one exported entry.
type Row struct {
	Date         string
	Employee     string
	ProjectCode  string
	ProjectName  string
	WorkType     string
	Start        string
	End          string
	BreakMinutes int
	Hours        float64
	Base         float64
	OT           float64
	Status       string
	Notes        string
}

// Strings returns the row's cells in Columns order.
func (r Row) Strings() []string {
	return []string{
		r.Date, r.Employee, r.ProjectCode, r.ProjectName, r.WorkType,
		r.Start, r.End, strconv.Itoa(r.BreakMinutes),
		formatHours(r.Hours), formatHours(r.Base), formatHours(r.OT),
		r.Status, r.Notes,
	}
}

// Document is everything an exporter renders.
type Document struct {
	Title    string
	Subtitle string
	Rows     []Row
	Totals   stats.Totals
}

// BuildRows converts entries to rows, resolving names through dir and the
// base/OT split through alloc. Order is preserved.
func BuildRows(entries []entry.TimeEntry, alloc overtime.Allocation, dir *entry.Directory) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		split := alloc[e.ID]
		rows = append(rows, Row{
			Date:         e.Date,
			Employee:     dir.EmployeeName(e.EmployeeID),
			ProjectCode:  dir.ProjectCode(e.ProjectID),
			ProjectName:  dir.ProjectName(e.ProjectID),
			WorkType:     e.WorkType,
			Start:        e.Start,
			End:          e.End,
			BreakMinutes: e.BreakMinutes,
			Hours:        e.Hours,
			Base:         split.Base,
			OT:           split.OT,
			Status:       string(e.Status),
			Notes:        e.Notes,
		})
	}
	return rows
}

// NewDocument builds a Document for entries.
func NewDocument(title, subtitle string, entries []entry.TimeEntry, alloc overtime.Allocation, dir *entry.Directory) Document {
	return Document{
		Title:    title,
		Subtitle: subtitle,
		Rows:     BuildRows(entries, alloc, dir),
		Totals:   stats.CalculateTotals(entries, alloc, dir),
	}
}

// Exporter renders a Document in one file format.
type Exporter interface {
	// Name is the format name used to select the exporter, e.g. "csv".
	Name() string
	// Extension is the default file extension including the dot.
	Extension() string
	Export(w io.Writer, doc Document) error
}

var exporters = map[string]Exporter{}

// Register makes an exporter available by name. Registering a name twice
// replaces the earlier exporter.
func Register(e Exporter) {
	exporters[strings.ToLower(e.Name())] = e
}

// Get returns the exporter registered under name.
func Get(name string) (Exporter, error) {
	e, ok := exporters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return e, nil
}

// Names returns the registered format names, sorted.
func Names() []string {
	names := make([]string, 0, len(exporters))
	for n := range exporters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(CSVExporter{})
	Register(XLSXExporter{})
	Register(PDFExporter{})
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}
