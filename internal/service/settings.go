package service

import (
	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/storage"
)

// SettingsService reads and changes the accounting settings stored in the state.
type SettingsService struct {
	session *Session
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(session *Session) *SettingsService {
	return &SettingsService{session: session}
}

// Get returns the current settings.
func (s *SettingsService) Get() entry.Settings {
	return s.session.Snapshot().Settings
}

// Update changes the given settings; nil leaves a value as it is.
// Existing entries keep the increment they were created with.
func (s *SettingsService) Update(increment *int, threshold *float64) (entry.Settings, error) {
	var updated entry.Settings
	err := s.session.update(false, func(st *storage.State) error {
		next := st.Settings
		if increment != nil {
			next.RoundingIncrement = *increment
		}
		if threshold != nil {
			next.DailyOvertimeThreshold = *threshold
		}
		if err := next.Validate(); err != nil {
			return err
		}
		st.Settings = next
		updated = next
		return nil
	})
	return updated, err
}
