package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is used when no theme is configured or the configured one is unknown
const DefaultTheme = "dracula"

// ThemeProvider manages the bubbletint theme registry and derives Styles from it.
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider selects initialTheme, falling back to DefaultTheme and
// then to the first available tint.
func NewThemeProvider(initialTheme string) *ThemeProvider {
	all := tint.DefaultTints()

	var fallback tint.Tint
	for _, t := range all {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}
	if fallback == nil && len(all) > 0 {
		fallback = all[0]
	}

	registry := tint.NewRegistry(fallback, all...)
	if initialTheme != "" {
		registry.SetTintID(initialTheme)
	}
	return &ThemeProvider{registry: registry}
}

// SetTheme selects a theme by id and reports whether it exists.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// CurrentName returns the id of the current theme.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// AvailableThemes returns the sorted ids of all themes.
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := tp.registry.TintIDs()
	sort.Strings(ids)
	return ids
}

// Styles returns the styles for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStyles(tp.registry)
}

// CurrentDisplayName returns the human readable name of the current theme.
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}
