// Package config loads the labourlog TOML configuration file and applies
// environment overrides on top of it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/markargand/labourlog/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "labourlog"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"

	// Environment variables that override file settings
	EnvAPIBase        = "LABOURLOG_API_BASE"
	EnvStorageBackend = "LABOURLOG_STORAGE_BACKEND"
	EnvDataPath       = "LABOURLOG_DATA_PATH"
)

// Config represents the application configuration
type Config struct {
	// StorageBackend selects where state is kept: "json" or "sqlite"
	StorageBackend string `toml:"storage_backend"`
	// DataPath overrides the default state location
	DataPath string `toml:"data_path"`
	// APIBase overrides the remote API base URL stored in the state
	APIBase string `toml:"api_base"`
	// RoundingIncrement is applied to new states, in minutes
	RoundingIncrement int `toml:"rounding_increment"`
	// DailyOvertimeThreshold is applied to new states, in hours
	DailyOvertimeThreshold float64 `toml:"daily_overtime_threshold"`
	// OvertimeScope is "visible" (allocate over the shown entries) or "day"
	// (allocate over every entry of the employee's day)
	OvertimeScope string `toml:"overtime_scope"`
	// SeedFile is the YAML file read by the seed command when no path is given
	SeedFile string `toml:"seed_file"`
	// Theme is the bubbletint theme id used by the TUI
	Theme string `toml:"theme"`
}

// DefaultConfig returns a Config with the defaults used when no file exists.
func DefaultConfig() Config {
	return Config{
		StorageBackend:         "json",
		DataPath:               "",
		APIBase:                "",
		RoundingIncrement:      15,
		DailyOvertimeThreshold: 8,
		OvertimeScope:          "visible",
		SeedFile:               "",
		Theme:                  "",
	}
}

// GetConfigPath returns the path to the config file under the user config
// directory, creating the directory if it doesn't exist.
func GetConfigPath() (string, error) {
	return osutil.AppFile(AppName, ConfigFile)
}

// Load reads, normalizes and validates the config file at path.
// Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the config file, or returns DefaultConfig if it doesn't exist.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Save writes cfg to path as TOML, replacing the file atomically.
func Save(path string, cfg Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("# labourlog configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

// Normalize lowercases enum fields and trims whitespace.
func (c *Config) Normalize() {
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	if c.StorageBackend == "" {
		c.StorageBackend = "json"
	}
	c.OvertimeScope = strings.ToLower(strings.TrimSpace(c.OvertimeScope))
	if c.OvertimeScope == "" {
		c.OvertimeScope = "visible"
	}
	c.DataPath = strings.TrimSpace(c.DataPath)
	c.APIBase = strings.TrimRight(strings.TrimSpace(c.APIBase), "/")
	c.SeedFile = strings.TrimSpace(c.SeedFile)
	c.Theme = strings.TrimSpace(c.Theme)
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	switch c.StorageBackend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("storage_backend must be \"json\" or \"sqlite\", got %q", c.StorageBackend)
	}
	switch c.OvertimeScope {
	case "visible", "day":
	default:
		return fmt.Errorf("overtime_scope must be \"visible\" or \"day\", got %q", c.OvertimeScope)
	}
	if c.RoundingIncrement < 1 || c.RoundingIncrement > 60 {
		return fmt.Errorf("rounding_increment must be between 1 and 60, got %d", c.RoundingIncrement)
	}
	if c.DailyOvertimeThreshold < 0 || c.DailyOvertimeThreshold > 24 {
		return fmt.Errorf("daily_overtime_threshold must be between 0 and 24, got %g", c.DailyOvertimeThreshold)
	}
	if c.APIBase != "" && !strings.HasPrefix(c.APIBase, "http://") && !strings.HasPrefix(c.APIBase, "https://") {
		return fmt.Errorf("api_base must be an http or https URL, got %q", c.APIBase)
	}
	return nil
}

// ApplyEnv loads envFiles (default ".env" when none are given) into the
// process environment and applies the LABOURLOG_* overrides to c.
// Missing env files are ignored.
func (c *Config) ApplyEnv(envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	var existing []string
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if v := os.Getenv(EnvAPIBase); v != "" {
		c.APIBase = v
	}
	if v := os.Getenv(EnvStorageBackend); v != "" {
		c.StorageBackend = v
	}
	if v := os.Getenv(EnvDataPath); v != "" {
		c.DataPath = v
	}

	c.Normalize()
	return c.Validate()
}

// GenerateSampleConfig returns a commented sample config file.
func GenerateSampleConfig() string {
	return `# labourlog configuration file

# Where state is kept: "json" (state.json with rotating backups) or "sqlite"
storage_backend = "json"

# Override the state location (defaults to the user config directory)
# data_path = "/var/lib/labourlog/state.json"

# Remote API base URL (overrides the one stored in the state)
# api_base = "https://factory-labour-logger-backend.onrender.com"

# Defaults for a fresh state; existing states keep their own settings
rounding_increment = 15
daily_overtime_threshold = 8.0

# Overtime allocation scope for filtered views:
#   "visible" allocates over the entries shown
#   "day" allocates over every entry of each employee's day
overtime_scope = "visible"

# YAML file used by "labourlog seed" when no file is given
# seed_file = "seed.yaml"

# TUI theme (bubbletint id, e.g. "dracula")
# theme = "dracula"
`
}
