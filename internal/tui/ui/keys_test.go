package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		want    string
	}{
		{"Up", keys.Up, "k"},
		{"Down", keys.Down, "j"},
		{"NextTab", keys.NextTab, "tab"},
		{"Tab1", keys.Tab1, "1"},
		{"Tab4", keys.Tab4, "4"},
		{"Quit", keys.Quit, "q"},
		{"Help", keys.Help, "?"},
		{"Refresh", keys.Refresh, "r"},
		{"Approve", keys.Approve, "a"},
		{"Reject", keys.Reject, "x"},
		{"Delete", keys.Delete, "d"},
		{"Search", keys.Search, "/"},
		{"ClearFilter", keys.ClearFilter, "c"},
		{"ThisWeek", keys.ThisWeek, "w"},
		{"PrevWeek", keys.PrevWeek, "["},
		{"NextWeek", keys.NextWeek, "]"},
		{"ApproveWeek", keys.ApproveWeek, "A"},
		{"RejectWeek", keys.RejectWeek, "X"},
		{"ClockIn", keys.ClockIn, "i"},
		{"ClockOut", keys.ClockOut, "o"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", tt.name)
			}
			if tt.binding.Help().Desc == "" {
				t.Errorf("expected %s binding to have help text", tt.name)
			}
			found := false
			for _, k := range tt.binding.Keys() {
				if k == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %s to be bound to %q, got %v", tt.name, tt.want, tt.binding.Keys())
			}
		})
	}
}

func TestDefaultKeyMap_EntryKeysDoNotCollide(t *testing.T) {
	keys := DefaultKeyMap()
	seen := map[string]string{}
	for name, b := range map[string]key.Binding{
		"Approve":     keys.Approve,
		"Reject":      keys.Reject,
		"Delete":      keys.Delete,
		"Search":      keys.Search,
		"ClearFilter": keys.ClearFilter,
		"Today":       keys.Today,
		"ThisWeek":    keys.ThisWeek,
		"Refresh":     keys.Refresh,
		"Quit":        keys.Quit,
	} {
		for _, k := range b.Keys() {
			if other, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %s and %s", k, other, name)
			}
			seen[k] = name
		}
	}
}
