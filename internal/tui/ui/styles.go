package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"

	"github.com/markargand/labourlog/internal/entry"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Entry list
	EntrySelected lipgloss.Style
	EntryNormal   lipgloss.Style
	EntryDate     lipgloss.Style
	EntryProject  lipgloss.Style
	EntryHours    lipgloss.Style
	EntryOT       lipgloss.Style

	// Approval status
	StatusPending  lipgloss.Style
	StatusApproved lipgloss.Style
	StatusRejected lipgloss.Style

	// Kiosk
	ClockedIn  lipgloss.Style
	ClockedOut lipgloss.Style

	// Report figures
	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	Hint      lipgloss.Style

	// Dialog
	Dialog lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// NewStyles maps the registry's current theme colors onto the UI:
// purple for titles and projects, cyan for dates and keys, bright purple
// for overtime, bright black for muted text.
func NewStyles(r *tint.Registry) Styles {
	primary := r.Purple()
	secondary := r.Cyan()
	accent := r.BrightPurple()
	muted := r.BrightBlack()
	success := r.Green()
	warning := r.Yellow()
	errorColor := r.Red()
	fg := r.Fg()
	bg := r.Bg()

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(muted),
		TabActive: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),

		ViewTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(muted),

		EntrySelected: lipgloss.NewStyle().
			Background(muted).
			Bold(true),
		EntryNormal: lipgloss.NewStyle(),
		EntryDate: lipgloss.NewStyle().
			Foreground(secondary),
		EntryProject: lipgloss.NewStyle().
			Foreground(primary),
		EntryHours: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),
		EntryOT: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		StatusPending: lipgloss.NewStyle().
			Foreground(warning),
		StatusApproved: lipgloss.NewStyle().
			Foreground(success),
		StatusRejected: lipgloss.NewStyle().
			Foreground(errorColor),

		ClockedIn: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		ClockedOut: lipgloss.NewStyle().
			Foreground(muted),

		StatLabel: lipgloss.NewStyle().
			Foreground(muted).
			Width(20),
		StatValue: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),
		Hint: lipgloss.NewStyle().
			Foreground(muted),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2).
			Width(56),

		Error: lipgloss.NewStyle().
			Foreground(errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(warning),
		Success: lipgloss.NewStyle().
			Foreground(success),
	}
}

// Status returns the style for an approval status.
func (s Styles) Status(st entry.Status) lipgloss.Style {
	switch st {
	case entry.StatusApproved:
		return s.StatusApproved
	case entry.StatusRejected:
		return s.StatusRejected
	}
	return s.StatusPending
}
