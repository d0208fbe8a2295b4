package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/markargand/labourlog/internal/cli"
	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/filter"
	"github.com/markargand/labourlog/internal/service"
	"github.com/markargand/labourlog/internal/timeutil"
	"github.com/markargand/labourlog/internal/tui/ui"
)

// entryMode represents the current mode of the entries view
type entryMode int

const (
	entryModeNormal entryMode = iota
	entryModeDelete
	entryModeSearch
)

// EntriesModel is the review list: filtered entries with approve, reject
// and delete actions.
type EntriesModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width  int
	height int
	cursor int
	view   service.View
	dir    *entry.Directory
	err    error
	notice string

	filter filter.Filter
	label  string

	mode        entryMode
	searchInput textinput.Model
}

// NewEntriesModel creates a new entries view model showing all dates
func NewEntriesModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) EntriesModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search employee, project, work type, notes..."
	searchInput.CharLimit = 100
	searchInput.Width = 48

	return EntriesModel{
		services:    services,
		styles:      styles,
		keys:        keys,
		label:       "all dates",
		searchInput: searchInput,
		dir:         entry.NewDirectory(nil, nil),
	}
}

// entriesLoadedMsg is sent when entries are loaded
type entriesLoadedMsg struct {
	view service.View
	dir  *entry.Directory
}

// entryActionErrMsg is sent when approving, rejecting or deleting fails
type entryActionErrMsg struct {
	err error
}

// Init implements tea.Model
func (m EntriesModel) Init() tea.Cmd {
	return m.loadEntries()
}

// Update implements tea.Model
func (m EntriesModel) Update(msg tea.Msg) (EntriesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case entryModeDelete:
			return m.handleDeleteMode(msg)
		case entryModeSearch:
			return m.handleSearchMode(msg)
		}
		return m.handleNormalMode(msg)

	case entriesLoadedMsg:
		m.view = msg.view
		m.dir = msg.dir
		m.err = nil
		if m.cursor >= len(m.view.Entries) {
			m.cursor = max(0, len(m.view.Entries)-1)
		}
		return m, nil

	case entryActionErrMsg:
		m.err = msg.err
		m.notice = ""
		return m, nil

	case ui.EntriesChangedMsg:
		m.notice = msg.Notice
		return m, m.loadEntries()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.mode == entryModeSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m EntriesModel) handleNormalMode(msg tea.KeyMsg) (EntriesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Today):
		today := timeutil.Today(m.services.Session.Now())
		m.filter.From, m.filter.To = today, today
		m.label = "today"
		m.cursor = 0
		return m, m.loadEntries()
	case key.Matches(msg, m.keys.ThisWeek):
		from, to, err := timeutil.WeekDates(m.services.Entries.CurrentWeek())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.filter.From, m.filter.To = from, to
		m.label = "this week"
		m.cursor = 0
		return m, m.loadEntries()
	case key.Matches(msg, m.keys.ClearFilter):
		m.filter = filter.Filter{}
		m.label = "all dates"
		m.searchInput.SetValue("")
		m.cursor = 0
		return m, m.loadEntries()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadEntries()
	case key.Matches(msg, m.keys.Search):
		m.mode = entryModeSearch
		m.searchInput.SetValue(m.filter.Query)
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Approve):
		if e, ok := m.selected(); ok {
			return m, m.setStatus(e.ID, entry.StatusApproved)
		}
	case key.Matches(msg, m.keys.Reject):
		if e, ok := m.selected(); ok {
			return m, m.setStatus(e.ID, entry.StatusRejected)
		}
	case key.Matches(msg, m.keys.Delete):
		if e, ok := m.selected(); ok {
			if err := e.CanDelete(); err != nil {
				m.err = err
				return m, nil
			}
			m.mode = entryModeDelete
		}
	}
	return m, nil
}

// handleDeleteMode handles key events when in delete confirmation mode
func (m EntriesModel) handleDeleteMode(msg tea.KeyMsg) (EntriesModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = entryModeNormal
		if e, ok := m.selected(); ok {
			return m, m.deleteEntry(e.ID)
		}
	case "n", "N", "esc":
		m.mode = entryModeNormal
	}
	return m, nil
}

// handleSearchMode edits the free-text query; Enter applies it.
func (m EntriesModel) handleSearchMode(msg tea.KeyMsg) (EntriesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		m.filter.Query = strings.TrimSpace(m.searchInput.Value())
		m.searchInput.Blur()
		m.mode = entryModeNormal
		m.cursor = 0
		return m, m.loadEntries()
	case key.Matches(msg, m.keys.Back):
		m.searchInput.Blur()
		m.mode = entryModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m EntriesModel) selected() (entry.TimeEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Entries) {
		return entry.TimeEntry{}, false
	}
	return m.view.Entries[m.cursor], true
}

// View implements tea.Model
func (m EntriesModel) View() string {
	var b strings.Builder

	if m.mode == entryModeDelete {
		return m.renderDeleteConfirm()
	}

	title := "Entries for " + m.label
	if m.filter.Query != "" {
		title += fmt.Sprintf(" matching %q", m.filter.Query)
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n")

	if m.mode == entryModeSearch {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Hint.Render("Enter to search, Esc to cancel"))
		b.WriteString("\n\n")
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString(m.styles.Success.Render(m.notice))
		b.WriteString("\n")
	}

	if len(m.view.Entries) == 0 {
		b.WriteString(m.styles.StatLabel.Render("No entries found"))
		return b.String()
	}

	b.WriteString(RenderEntryList(m.view.Entries, m.view.Alloc, m.dir, m.styles, EntryRenderOptions{
		Width:  m.width,
		Cursor: m.cursor,
	}))

	t := m.view.Totals
	b.WriteString(strings.Repeat("─", min(60, max(m.width, 20))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %sh (base %sh, OT %sh) across %d %s",
		cli.FormatHours(t.Hours), cli.FormatHours(t.Base), cli.FormatHours(t.OT),
		t.EntryCount, cli.Pluralize("entry", t.EntryCount)))

	return b.String()
}

// renderDeleteConfirm renders the delete confirmation dialog
func (m EntriesModel) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Delete Entry"))
	b.WriteString("\n\n")

	if e, ok := m.selected(); ok {
		b.WriteString(m.styles.Warning.Render("Are you sure you want to delete this entry?"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Employee:"))
		b.WriteString(m.styles.StatValue.Render(m.dir.EmployeeName(e.EmployeeID)))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Project:"))
		b.WriteString(m.styles.StatValue.Render(m.dir.ProjectCode(e.ProjectID)))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Date:"))
		b.WriteString(m.styles.StatValue.Render(e.Date))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Hours:"))
		b.WriteString(m.styles.StatValue.Render(cli.FormatHours(e.Hours)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Hint.Render("Press Y to confirm, N or Esc to cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *EntriesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Filter returns the active filter
func (m EntriesModel) Filter() filter.Filter {
	return m.filter
}

// IsInputMode returns true when the view is capturing keyboard input
func (m EntriesModel) IsInputMode() bool {
	return m.mode == entryModeSearch
}

// loadEntries creates a command to load the filtered entries
func (m EntriesModel) loadEntries() tea.Cmd {
	f := m.filter
	return func() tea.Msg {
		view := m.services.Entries.List(f)
		return entriesLoadedMsg{
			view: view,
			dir:  m.services.Session.Snapshot().Directory(),
		}
	}
}

// setStatus creates a command to approve or reject an entry
func (m EntriesModel) setStatus(id string, status entry.Status) tea.Cmd {
	return func() tea.Msg {
		e, err := m.services.Entries.SetStatus(id, status)
		if err != nil {
			return entryActionErrMsg{err: err}
		}
		return ui.EntriesChangedMsg{
			Notice: fmt.Sprintf("Entry %s is now %s", cli.ShortID(e.ID), e.Status),
		}
	}
}

// deleteEntry creates a command to delete an entry
func (m EntriesModel) deleteEntry(id string) tea.Cmd {
	return func() tea.Msg {
		e, err := m.services.Entries.Delete(id)
		if err != nil {
			if errors.Is(err, entry.ErrLocked) {
				err = fmt.Errorf("%w: approved entries cannot be deleted", err)
			}
			return entryActionErrMsg{err: err}
		}
		return ui.EntriesChangedMsg{Notice: "Deleted entry " + cli.ShortID(e.ID)}
	}
}

// IsConfirming returns true while a delete awaits confirmation
func (m EntriesModel) IsConfirming() bool {
	return m.mode == entryModeDelete
}
