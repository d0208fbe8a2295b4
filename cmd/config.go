package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markargand/labourlog/internal/config"
	"github.com/markargand/labourlog/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or create the configuration file",
	Long: `Display the current labourlog configuration, or create a sample file.

Configuration file location:
  Linux:   ~/.config/labourlog/config.toml
  macOS:   ~/Library/Application Support/labourlog/config.toml
  Windows: %APPDATA%\labourlog\config.toml

Environment overrides (also read from a .env file in the working directory):
  LABOURLOG_API_BASE, LABOURLOG_STORAGE_BACKEND, LABOURLOG_DATA_PATH`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample configuration file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, ok := getConfigPath()
		if ok {
			_, _ = fmt.Fprintln(deps.Stdout, configPath)
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configInitCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func getConfigPath() (string, bool) {
	configPath, err := deps.ConfigPath()
	if err != nil {
		printError("Failed to determine config file location", err, "")
		return "", false
	}
	return configPath, true
}

// showConfig displays the current configuration
func showConfig() {
	configPath, ok := getConfigPath()
	if !ok {
		return
	}
	cs := service.NewConfigService(configPath, config.Config{})
	fileExists := cs.Exists()

	cfg, err := config.LoadOrDefault(configPath)
	if err == nil {
		err = cfg.ApplyEnv()
	}
	if err != nil {
		printError("Failed to load configuration", err,
			"Check that your config file is valid TOML: "+configPath+
				"\nValid storage_backend values: json, sqlite; valid overtime_scope values: visible, day")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for labourlog")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:         %s\n", configPath)
	if fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:              File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:              No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Storage backend:     %s\n", cfg.StorageBackend)
	_, _ = fmt.Fprintf(deps.Stdout, "Data path:           %s\n", orDefault(cfg.DataPath))
	_, _ = fmt.Fprintf(deps.Stdout, "API base:            %s\n", orDefault(cfg.APIBase))
	_, _ = fmt.Fprintf(deps.Stdout, "Rounding increment:  %d minutes\n", cfg.RoundingIncrement)
	_, _ = fmt.Fprintf(deps.Stdout, "Overtime threshold:  %g hours\n", cfg.DailyOvertimeThreshold)
	_, _ = fmt.Fprintf(deps.Stdout, "Overtime scope:      %s\n", cfg.OvertimeScope)
	_, _ = fmt.Fprintf(deps.Stdout, "Seed file:           %s\n", orDefault(cfg.SeedFile))
	_, _ = fmt.Fprintf(deps.Stdout, "Theme:               %s\n", orDefault(cfg.Theme))
	_, _ = fmt.Fprintln(deps.Stdout)

	if !fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'labourlog config init' to create a sample config file.")
		_, _ = fmt.Fprintln(deps.Stdout, "     The rounding and threshold values seed a new data file only.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}

func initConfig() {
	configPath, ok := getConfigPath()
	if !ok {
		return
	}
	cs := service.NewConfigService(configPath, config.DefaultConfig())
	if err := cs.Init(); err != nil {
		printError("Failed to create config file", err, "Edit the existing file, or remove it first")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created %s\n", configPath)
}
