// Package tui provides the terminal user interface for labourlog.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markargand/labourlog/internal/service"
	"github.com/markargand/labourlog/internal/tui/ui"
	"github.com/markargand/labourlog/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabEntries Tab = iota
	TabWeekly
	TabKiosk
	TabConfig
)

var tabNames = []string{"Entries", "Weekly", "Kiosk", "Config"}

// Model is the root TUI model
type Model struct {
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	entriesView views.EntriesModel
	weeklyView  views.WeeklyModel
	kioskView   views.KioskModel
	configView  views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model
func New(services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		activeTab:     TabEntries,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		entriesView:   views.NewEntriesModel(services, styles, keys),
		weeklyView:    views.NewWeeklyModel(services, styles, keys),
		kioskView:     views.NewKioskModel(services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.entriesView.Init(),
		m.kioskView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Forms and confirmations own the keyboard; only ctrl+c escapes them.
		if m.isCapturingKeys() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.PrevTab):
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab1):
			m.activeTab = TabEntries
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab2):
			m.activeTab = TabWeekly
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab3):
			m.activeTab = TabKiosk
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab4):
			m.activeTab = TabConfig
			return m, m.initCurrentView()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // tabs and status bar
		m.entriesView.SetSize(m.width, contentHeight)
		m.weeklyView.SetSize(m.width, contentHeight)
		m.kioskView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.EntriesChangedMsg:
		// Every view shows stored data, so every view reloads.
		var cmds [4]tea.Cmd
		m.entriesView, cmds[0] = m.entriesView.Update(msg)
		m.weeklyView, cmds[1] = m.weeklyView.Update(msg)
		m.kioskView, cmds[2] = m.kioskView.Update(msg)
		m.configView, cmds[3] = m.configView.Update(msg)
		return m, tea.Batch(cmds[:]...)

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m.entriesView, _ = m.entriesView.Update(themeMsg)
		m.weeklyView, _ = m.weeklyView.Update(themeMsg)
		m.kioskView, _ = m.kioskView.Update(themeMsg)
		m.configView, _ = m.configView.Update(themeMsg)

		return m, views.SaveThemeCmd(m.services, newTheme)
	}

	// Update the active view
	switch m.activeTab {
	case TabEntries:
		m.entriesView, cmd = m.entriesView.Update(msg)
	case TabWeekly:
		m.weeklyView, cmd = m.weeklyView.Update(msg)
	case TabKiosk:
		m.kioskView, cmd = m.kioskView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}

	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabEntries:
		b.WriteString(m.entriesView.View())
	case TabWeekly:
		b.WriteString(m.weeklyView.View())
	case TabKiosk:
		b.WriteString(m.kioskView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.isCapturingKeys() {
		parts = append(parts, m.renderKeyHelp("Tab", "switch field"))
		parts = append(parts, m.renderKeyHelp("Enter", "confirm"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabEntries:
			parts = append(parts, m.renderKeyHelp("a/x", "approve/reject"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
			parts = append(parts, m.renderKeyHelp("/", "search"))
			parts = append(parts, m.renderKeyHelp("t/w/c", "today/week/all"))
		case TabWeekly:
			parts = append(parts, m.renderKeyHelp("[/]", "week"))
			parts = append(parts, m.renderKeyHelp("A/X", "approve/reject week"))
		case TabKiosk:
			parts = append(parts, m.renderKeyHelp("i", "clock in"))
			parts = append(parts, m.renderKeyHelp("o", "clock out"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-4", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isCapturingKeys checks if the active view owns the keyboard: a text
// form, a search box, a confirmation or the theme selector.
func (m Model) isCapturingKeys() bool {
	switch m.activeTab {
	case TabEntries:
		return m.entriesView.IsInputMode() || m.entriesView.IsConfirming()
	case TabWeekly:
		return m.weeklyView.IsConfirming()
	case TabKiosk:
		return m.kioskView.IsInputMode()
	case TabConfig:
		return m.configView.IsSelectingTheme()
	}
	return false
}

// initCurrentView reloads the view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabEntries:
		return m.entriesView.Init()
	case TabWeekly:
		return m.weeklyView.Init()
	case TabKiosk:
		return m.kioskView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// renderHelpOverlay renders the key reference for the active view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-4    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabEntries:
		help.WriteString(m.styles.StatLabel.Render("Entries:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  a          Approve (locks the entry)\n")
		help.WriteString("  x          Reject\n")
		help.WriteString("  d          Delete unlocked entry\n")
		help.WriteString("  /          Search\n")
		help.WriteString("  t/w        Today / this week\n")
		help.WriteString("  c          Clear filter\n")
		help.WriteString("  r          Refresh\n")
	case TabWeekly:
		help.WriteString(m.styles.StatLabel.Render("Weekly:"))
		help.WriteString("\n")
		help.WriteString("  [/]        Previous/next week\n")
		help.WriteString("  w          This week\n")
		help.WriteString("  A          Approve and lock the whole week\n")
		help.WriteString("  X          Reject and unlock the whole week\n")
		help.WriteString("  r          Refresh\n")
	case TabKiosk:
		help.WriteString(m.styles.StatLabel.Render("Kiosk:"))
		help.WriteString("\n")
		help.WriteString("  i          Clock in with badge, PIN and project\n")
		help.WriteString("  o          Clock out with badge, PIN and break\n")
		help.WriteString("  r          Refresh\n")
	case TabConfig:
		help.WriteString(m.styles.StatLabel.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.Hint.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application
func Run(services *service.Services) error {
	p := tea.NewProgram(New(services), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
