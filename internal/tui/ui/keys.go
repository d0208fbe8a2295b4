package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap contains all key bindings for the TUI
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Tab navigation
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding

	// Actions
	Select  key.Binding
	Back    key.Binding
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding

	// Entry review
	Approve     key.Binding
	Reject      key.Binding
	Delete      key.Binding
	Search      key.Binding
	ClearFilter key.Binding
	Today       key.Binding
	ThisWeek    key.Binding

	// Weekly report
	PrevWeek    key.Binding
	NextWeek    key.Binding
	ApproveWeek key.Binding
	RejectWeek  key.Binding

	// Kiosk
	ClockIn  key.Binding
	ClockOut key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation (vim + arrows)
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),

		// Tab navigation
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Tab1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "entries"),
		),
		Tab2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "weekly"),
		),
		Tab3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "kiosk"),
		),
		Tab4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "config"),
		),

		// Actions
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		// Entry review
		Approve: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "approve"),
		),
		Reject: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reject"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "search"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filter"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		ThisWeek: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "this week"),
		),

		// Weekly report
		PrevWeek: key.NewBinding(
			key.WithKeys("left", "h", "["),
			key.WithHelp("←/h", "prev week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("right", "l", "]"),
			key.WithHelp("→/l", "next week"),
		),
		ApproveWeek: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "approve week"),
		),
		RejectWeek: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "reject week"),
		),

		// Kiosk
		ClockIn: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "clock in"),
		),
		ClockOut: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "clock out"),
		),
	}
}
