package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/markargand/labourlog/internal/config"
)

func TestShowConfig_Defaults(t *testing.T) {
	env := newTestEnv(t)

	showConfig()

	env.expectOK(t,
		"Configuration for labourlog",
		"Status:              No config file (using defaults)",
		"Storage backend:     json",
		"Rounding increment:  15 minutes",
		"Overtime scope:      visible",
		"Tip: Run 'labourlog config init'")
}

func TestInitConfig(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, config.ConfigFile)

	initConfig()
	env.expectOK(t, "Created "+path)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	env.reset()
	initConfig()
	env.expectExit(t, "config file already exists")

	env.reset()
	showConfig()
	env.expectOK(t, "Status:              File exists (using custom configuration)")
}

func TestShowConfig_Invalid(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, config.ConfigFile)
	if err := os.WriteFile(path, []byte("overtime_scope = \"weekly\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	showConfig()

	env.expectExit(t, "Valid storage_backend values: json, sqlite")
}

func TestConfigPath_Error(t *testing.T) {
	env := newTestEnv(t)
	deps.ConfigPath = func() (string, error) { return "", errors.New("no home") }

	showConfig()

	env.expectExit(t, "Failed to determine config file location")
}
