package cmd

import (
	"github.com/spf13/cobra"

	"github.com/markargand/labourlog/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the supervisor terminal UI",
	Long: `Launch the interactive terminal UI.

Views available:
  - Entries: Browse, search, approve, reject and delete entries
  - Weekly: Weekly report with week navigation and batch approval
  - Kiosk: Clock employees in and out by badge
  - Config: Settings, storage location and theme

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-4: Jump to a specific view
  - j/k or arrows: Navigate within lists
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

// runTUI initializes and runs the TUI application
func runTUI() {
	svc := openServices()
	if svc == nil {
		return
	}
	defer closeServices(svc)

	if err := tui.Run(svc); err != nil {
		printError("Failed to run the terminal UI", err, "")
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI()
		return true
	}
	return false
}
