package service

import (
	"fmt"
	"os"

	"github.com/markargand/labourlog/internal/config"
)

// ConfigService provides operations for managing configuration
type ConfigService struct {
	configPath string
	config     config.Config
}

// NewConfigService creates a new ConfigService
func NewConfigService(configPath string, cfg config.Config) *ConfigService {
	return &ConfigService{
		configPath: configPath,
		config:     cfg,
	}
}

// Get returns the current configuration
func (s *ConfigService) Get() config.Config {
	return s.config
}

// GetPath returns the path to the config file
func (s *ConfigService) GetPath() string {
	return s.configPath
}

// Exists checks if the config file exists
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// Init creates a sample config file
func (s *ConfigService) Init() error {
	if s.Exists() {
		return fmt.Errorf("config file already exists at %s", s.configPath)
	}

	sample := config.GenerateSampleConfig()
	if err := os.WriteFile(s.configPath, []byte(sample), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetTheme stores the TUI theme in the config file, creating it if needed.
// Only the theme changes; environment overrides are not written back.
func (s *ConfigService) SetTheme(name string) error {
	cfg, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		return err
	}
	cfg.Theme = name
	if err := config.Save(s.configPath, cfg); err != nil {
		return err
	}
	s.config.Theme = name
	return nil
}
