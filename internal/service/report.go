package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/filter"
	"github.com/markargand/labourlog/internal/overtime"
	"github.com/markargand/labourlog/internal/report"
	"github.com/markargand/labourlog/internal/stats"
	"github.com/markargand/labourlog/internal/timeutil"
)

// ReportService provides weekly reports and file exports
type ReportService struct {
	session *Session
	entries *EntryService
}

// NewReportService creates a new ReportService
func NewReportService(session *Session, entries *EntryService) *ReportService {
	return &ReportService{session: session, entries: entries}
}

// Weekly aggregates every entry in the ISO week label, ignoring any view
// filter. Overtime is allocated over the week's entries.
func (s *ReportService) Weekly(week string) (stats.WeeklyReport, error) {
	if _, err := timeutil.ParseWeekLabel(week); err != nil {
		return stats.WeeklyReport{}, err
	}

	st := s.session.Snapshot()
	inWeek := stats.InWeek(st.Entries, week)
	alloc := overtime.Allocate(inWeek, st.Settings.DailyOvertimeThreshold)
	return stats.CalculateWeekly(inWeek, alloc, st.Directory(), week), nil
}

// Document builds the export document for the entries matching f.
func (s *ReportService) Document(f filter.Filter) report.Document {
	view := s.entries.List(f)
	dir := s.session.Snapshot().Directory()
	return report.NewDocument("Labour report", describeFilter(f, dir), view.Entries, view.Alloc, dir)
}

// Export renders the entries matching f in the named format.
func (s *ReportService) Export(w io.Writer, format string, f filter.Filter) error {
	exp, err := report.Get(format)
	if err != nil {
		return err
	}
	if err := exp.Export(w, s.Document(f)); err != nil {
		return fmt.Errorf("failed to export %s: %w", exp.Name(), err)
	}
	return nil
}

func describeFilter(f filter.Filter, dir *entry.Directory) string {
	var parts []string
	if f.EmployeeID != "" {
		parts = append(parts, dir.EmployeeName(f.EmployeeID))
	}
	if f.ProjectID != "" {
		parts = append(parts, dir.ProjectCode(f.ProjectID))
	}
	switch {
	case f.From != "" && f.To != "":
		parts = append(parts, f.From+" to "+f.To)
	case f.From != "":
		parts = append(parts, "from "+f.From)
	case f.To != "":
		parts = append(parts, "until "+f.To)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, fmt.Sprintf("matching %q", q))
	}
	if len(parts) == 0 {
		return "All entries"
	}
	return strings.Join(parts, ", ")
}
