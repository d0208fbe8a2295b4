package views

import (
	"fmt"
	"strings"

	"github.com/markargand/labourlog/internal/cli"
	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/overtime"
	"github.com/markargand/labourlog/internal/stats"
	"github.com/markargand/labourlog/internal/tui/ui"
)

// EntryRenderOptions configures how entries are rendered
type EntryRenderOptions struct {
	Width  int // Available width for rendering
	Cursor int // Currently selected entry index (-1 for none)
}

// RenderEntryList renders entries with aligned columns: date, employee,
// project, times, hours with their overtime split, and status.
func RenderEntryList(entries []entry.TimeEntry, alloc overtime.Allocation, dir *entry.Directory, styles ui.Styles, opts EntryRenderOptions) string {
	if len(entries) == 0 {
		return ""
	}

	nameWidth := 0
	codeWidth := 0
	for _, e := range entries {
		nameWidth = max(nameWidth, len([]rune(dir.EmployeeName(e.EmployeeID))))
		codeWidth = max(codeWidth, len(dir.ProjectCode(e.ProjectID)))
	}
	nameWidth = min(nameWidth, 20)

	var b strings.Builder
	for i, e := range entries {
		style := styles.EntryNormal
		if i == opts.Cursor {
			style = styles.EntrySelected
		}

		split := alloc[e.ID]
		hours := styles.EntryHours.Render(fmt.Sprintf("%6sh", cli.FormatHours(e.Hours)))
		ot := ""
		if split.OT > 0 {
			ot = " " + styles.EntryOT.Render("+"+cli.FormatHours(split.OT)+" OT")
		}

		status := styles.Status(e.Status).Render(string(e.Status))
		if e.Locked {
			status += styles.StatusHelp.Render(" [locked]")
		}

		line := fmt.Sprintf("%-8s %s %-*s %s %-11s %s%s  %s",
			cli.ShortID(e.ID),
			styles.EntryDate.Render(e.Date),
			nameWidth, truncate(dir.EmployeeName(e.EmployeeID), nameWidth),
			styles.EntryProject.Render(fmt.Sprintf("%-*s", codeWidth, dir.ProjectCode(e.ProjectID))),
			cli.FormatTimes(e),
			hours, ot, status)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderBreakdowns renders a titled table of per-key totals.
func RenderBreakdowns(title string, rows []stats.Breakdown, styles ui.Styles) string {
	if len(rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.StatLabel.Render(title))
	b.WriteString("\n")
	for _, r := range rows {
		key := r.Key
		if key == "" {
			key = "(unknown)"
		}
		b.WriteString(renderBreakdownRow(key, r, styles))
	}
	return b.String()
}

func renderBreakdownRow(label string, r stats.Breakdown, styles ui.Styles) string {
	ot := ""
	if r.OT > 0 {
		ot = styles.EntryOT.Render(fmt.Sprintf("  OT %sh", cli.FormatHours(r.OT)))
	}
	return fmt.Sprintf("  %-20s %s  base %sh%s  (%d %s)\n",
		truncate(label, 20),
		styles.EntryHours.Render(fmt.Sprintf("%7sh", cli.FormatHours(r.Hours))),
		cli.FormatHours(r.Base), ot,
		r.EntryCount, cli.Pluralize("entry", r.EntryCount))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}
