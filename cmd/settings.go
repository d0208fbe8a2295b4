package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markargand/labourlog/internal/cli"
	"github.com/markargand/labourlog/internal/service"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the accounting settings",
	Long: `Show or change the rounding increment and the daily overtime threshold.

Changing the increment only affects entries logged afterwards; existing
entries keep the increment they were rounded with. The threshold applies to
every overtime split.

Examples:
  labourlog settings
  labourlog settings --increment 6
  labourlog settings --threshold 7.5`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var increment *int
		var threshold *float64
		if cmd.Flags().Changed("increment") {
			v, _ := cmd.Flags().GetInt("increment")
			increment = &v
		}
		if cmd.Flags().Changed("threshold") {
			v, _ := cmd.Flags().GetFloat64("threshold")
			threshold = &v
		}
		runWithServices(func(svc *service.Services) {
			updateSettings(svc, increment, threshold)
		})
	},
}

func init() {
	settingsCmd.Flags().Int("increment", 0, "Rounding increment in minutes (1-60)")
	settingsCmd.Flags().Float64("threshold", 0, "Daily overtime threshold in hours (0-24)")
	rootCmd.AddCommand(settingsCmd)
}

func updateSettings(svc *service.Services, increment *int, threshold *float64) {
	s := svc.Settings.Get()
	if increment != nil || threshold != nil {
		var err error
		if s, err = svc.Settings.Update(increment, threshold); err != nil {
			printError("Failed to update settings", err, "")
			return
		}
		_, _ = fmt.Fprintln(deps.Stdout, "Settings updated")
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Rounding increment:  %d minutes\n", s.RoundingIncrement)
	_, _ = fmt.Fprintf(deps.Stdout, "Overtime threshold:  %sh per employee per day\n", cli.FormatHours(s.DailyOvertimeThreshold))
	_, _ = fmt.Fprintf(deps.Stdout, "Overtime scope:      %s\n", svc.Entries.Scope())
}
