package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/markargand/labourlog/internal/cli"
	"github.com/markargand/labourlog/internal/service"
	"github.com/markargand/labourlog/internal/stats"
	"github.com/markargand/labourlog/internal/timeutil"
	"github.com/markargand/labourlog/internal/tui/ui"
)

// weekAction is the batch operation awaiting confirmation
type weekAction int

const (
	weekActionNone weekAction = iota
	weekActionApprove
	weekActionReject
)

// WeeklyModel shows the per-employee and per-project totals of one ISO week
// and applies week-wide approval.
type WeeklyModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int

	week    string
	report  stats.WeeklyReport
	err     error
	notice  string
	confirm weekAction
}

// NewWeeklyModel creates a weekly view model positioned on the current week
func NewWeeklyModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) WeeklyModel {
	return WeeklyModel{
		services: services,
		styles:   styles,
		keys:     keys,
		week:     services.Entries.CurrentWeek(),
	}
}

// weeklyLoadedMsg is sent when a weekly report is loaded
type weeklyLoadedMsg struct {
	report stats.WeeklyReport
	err    error
}

// Init implements tea.Model
func (m WeeklyModel) Init() tea.Cmd {
	return m.loadReport()
}

// Update implements tea.Model
func (m WeeklyModel) Update(msg tea.Msg) (WeeklyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirm != weekActionNone {
			return m.handleConfirm(msg)
		}

		switch {
		case key.Matches(msg, m.keys.PrevWeek):
			return m.shift(-1)
		case key.Matches(msg, m.keys.NextWeek):
			return m.shift(1)
		case key.Matches(msg, m.keys.ThisWeek):
			m.week = m.services.Entries.CurrentWeek()
			m.notice = ""
			return m, m.loadReport()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadReport()
		case key.Matches(msg, m.keys.ApproveWeek):
			m.confirm = weekActionApprove
		case key.Matches(msg, m.keys.RejectWeek):
			m.confirm = weekActionReject
		}
		return m, nil

	case weeklyLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.report = msg.report
		}
		return m, nil

	case entryActionErrMsg:
		m.err = msg.err
		return m, nil

	case ui.EntriesChangedMsg:
		m.notice = msg.Notice
		return m, m.loadReport()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}
	return m, nil
}

func (m WeeklyModel) shift(n int) (WeeklyModel, tea.Cmd) {
	week, err := timeutil.ShiftWeek(m.week, n)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.week = week
	m.notice = ""
	return m, m.loadReport()
}

func (m WeeklyModel) handleConfirm(msg tea.KeyMsg) (WeeklyModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		action := m.confirm
		m.confirm = weekActionNone
		return m, m.batch(action == weekActionApprove)
	case "n", "N", "esc":
		m.confirm = weekActionNone
	}
	return m, nil
}

// View implements tea.Model
func (m WeeklyModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Week " + cli.FormatWeek(m.week)))
	b.WriteString("\n")

	if m.confirm != weekActionNone {
		verb := "Approve"
		detail := "Every entry in the week will be approved and locked."
		if m.confirm == weekActionReject {
			verb = "Reject"
			detail = "Every entry in the week will be rejected and unlocked."
		}
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("%s all %d %s in %s?",
			verb, m.report.Totals.EntryCount, cli.Pluralize("entry", m.report.Totals.EntryCount), m.week)))
		b.WriteString("\n")
		b.WriteString(m.styles.Hint.Render(detail))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Hint.Render("Press Y to confirm, N or Esc to cancel"))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString(m.styles.Success.Render(m.notice))
		b.WriteString("\n")
	}

	if m.report.Totals.EntryCount == 0 {
		b.WriteString(m.styles.StatLabel.Render("No entries this week"))
		return b.String()
	}

	b.WriteString(RenderBreakdowns("By employee:", m.report.ByEmployee, m.styles))
	b.WriteString("\n")
	b.WriteString(RenderBreakdowns("By project:", m.report.ByProject, m.styles))
	b.WriteString("\n")
	b.WriteString(renderBreakdownRow("Total", m.report.Totals, m.styles))

	return b.String()
}

// SetSize sets the view dimensions
func (m *WeeklyModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Week returns the ISO week label on display
func (m WeeklyModel) Week() string {
	return m.week
}

// IsConfirming returns true while a week batch awaits confirmation
func (m WeeklyModel) IsConfirming() bool {
	return m.confirm != weekActionNone
}

// loadReport creates a command to aggregate the current week
func (m WeeklyModel) loadReport() tea.Cmd {
	week := m.week
	return func() tea.Msg {
		report, err := m.services.Reports.Weekly(week)
		return weeklyLoadedMsg{report: report, err: err}
	}
}

// batch creates a command that approves or rejects the whole week
func (m WeeklyModel) batch(approve bool) tea.Cmd {
	week := m.week
	return func() tea.Msg {
		var (
			n   int
			err error
		)
		verb := "Approved"
		if approve {
			n, err = m.services.Entries.ApproveWeek(week)
		} else {
			verb = "Rejected"
			n, err = m.services.Entries.RejectWeek(week)
		}
		if err != nil {
			return entryActionErrMsg{err: err}
		}
		return ui.EntriesChangedMsg{
			Notice: fmt.Sprintf("%s %d %s in %s", verb, n, cli.Pluralize("entry", n), week),
		}
	}
}
