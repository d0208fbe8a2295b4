package ui

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// EntriesChangedMsg is broadcast after a view changes the stored entries so
// the other views reload.
type EntriesChangedMsg struct {
	// Notice is shown in the status line, e.g. "Approved 4 entries in 2024-W10".
	Notice string
}
