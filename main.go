package main

import (
	"fmt"
	"os"

	"github.com/markargand/labourlog/cmd"
	"github.com/markargand/labourlog/internal/config"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc is replaced in tests.
var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

// run checks the configuration, then executes the CLI and returns the exit code.
func run() int {
	configPath, err := config.GetConfigPath()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: Failed to determine config file location\nDetails: %v\n", err)
		return 1
	}
	if _, err := config.LoadOrDefault(configPath); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: Invalid configuration in %s\nDetails: %v\n", configPath, err)
		_, _ = fmt.Fprintln(os.Stderr, "Hint: Run 'labourlog config show' after fixing the file")
		return 1
	}

	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
