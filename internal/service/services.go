// Package service implements labourlog's operations on top of a Session:
// logging and approving entries, managing the directory, reports and
// exports, kiosk clock-in/out, remote sync and storage maintenance.
package service

import (
	"fmt"

	"github.com/markargand/labourlog/internal/config"
	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/overtime"
	"github.com/markargand/labourlog/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Session   *Session
	Entries   *EntryService
	Directory *DirectoryService
	Reports   *ReportService
	Kiosk     *KioskService
	Sync      *SyncService
	Settings  *SettingsService
	Storage   *StorageService
	Config    *ConfigService
}

// NewServices creates a new Services instance with default paths.
// The config file and a .env file in the working directory are applied.
func NewServices() (*Services, error) {
	store, configPath, cfg, err := OpenConfiguredStore()
	if err != nil {
		return nil, err
	}

	svc, err := NewServicesWithStore(store, configPath, cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return svc, nil
}

// OpenConfiguredStore loads the configuration and opens the store it selects
// without decoding the state, so a damaged state can still be inspected.
func OpenConfiguredStore() (storage.Store, string, config.Config, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, "", config.Config{}, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, "", config.Config{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, "", config.Config{}, err
	}

	dataPath := cfg.DataPath
	if dataPath == "" {
		if dataPath, err = storage.GetStoragePath(cfg.StorageBackend); err != nil {
			return nil, "", config.Config{}, err
		}
	}

	store, err := storage.Open(cfg.StorageBackend, dataPath)
	if err != nil {
		return nil, "", config.Config{}, err
	}
	return store, configPath, cfg, nil
}

// NewServicesWithStore creates a new Services instance over store (useful for testing)
func NewServicesWithStore(store storage.Store, configPath string, cfg config.Config) (*Services, error) {
	scope, ok := overtime.ParseScope(cfg.OvertimeScope)
	if !ok {
		return nil, fmt.Errorf("unknown overtime scope %q", cfg.OvertimeScope)
	}

	session, err := NewSession(store, entry.Settings{
		RoundingIncrement:      cfg.RoundingIncrement,
		DailyOvertimeThreshold: cfg.DailyOvertimeThreshold,
	})
	if err != nil {
		return nil, err
	}

	entries := NewEntryService(session, scope)
	return &Services{
		Session:   session,
		Entries:   entries,
		Directory: NewDirectoryService(session),
		Reports:   NewReportService(session, entries),
		Kiosk:     NewKioskService(session, entries),
		Sync:      NewSyncService(session, cfg.APIBase),
		Settings:  NewSettingsService(session),
		Storage:   NewStorageService(session),
		Config:    NewConfigService(configPath, cfg),
	}, nil
}

// Close releases the backing store.
func (s *Services) Close() error {
	return s.Session.Close()
}
