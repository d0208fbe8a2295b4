package service

import (
	"fmt"

	"github.com/markargand/labourlog/internal/storage"
)

// StorageService checks and restores the stored state.
type StorageService struct {
	session *Session
}

// NewStorageService creates a new StorageService
func NewStorageService(session *Session) *StorageService {
	return &StorageService{session: session}
}

// Location describes where the state is stored.
func (s *StorageService) Location() string {
	return s.session.Store().Location()
}

// Validate reports the health of the stored state.
func (s *StorageService) Validate() (storage.Health, error) {
	return storage.Validate(s.session.Store())
}

// Backups lists the available backups, most recent first.
func (s *StorageService) Backups() ([]storage.BackupInfo, error) {
	return s.session.Store().ListBackups()
}

// Restore replaces the stored state with backup n and reloads it.
func (s *StorageService) Restore(n int) error {
	if err := s.session.Store().Restore(n); err != nil {
		return err
	}
	if err := s.session.reload(); err != nil {
		return fmt.Errorf("restored backup %d but failed to load it: %w", n, err)
	}
	return nil
}
