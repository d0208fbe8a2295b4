package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markargand/labourlog/internal/cli"
	"github.com/markargand/labourlog/internal/service"
	"github.com/markargand/labourlog/internal/stats"
	"github.com/markargand/labourlog/internal/timeutil"
)

// reportCmd represents the report parent command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show reports",
}

var reportWeekCmd = &cobra.Command{
	Use:   "week [YYYY-Www]",
	Short: "Weekly hours by employee and project",
	Long: `Show every entry of an ISO week grouped by employee and by project,
with base and overtime hours. The view filter does not apply; overtime is
allocated over the week's own entries.

Examples:
  labourlog report week              Current week
  labourlog report week 2024-W10     A specific week
  labourlog report week --prev 1     Last week`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		prev, _ := cmd.Flags().GetInt("prev")
		runWithServices(func(svc *service.Services) {
			week := weekArg(svc, args)
			if prev > 0 {
				shifted, err := timeutil.ShiftWeek(week, -prev)
				if err != nil {
					printError("Invalid week", err, "Week labels look like 2024-W10")
					return
				}
				week = shifted
			}
			weeklyReport(svc, week)
		})
	},
}

func init() {
	reportWeekCmd.Flags().Int("prev", 0, "Go back N weeks from the given week")
	reportCmd.AddCommand(reportWeekCmd)
	rootCmd.AddCommand(reportCmd)
}

func weeklyReport(svc *service.Services, week string) {
	rep, err := svc.Reports.Weekly(week)
	if err != nil {
		printError("Invalid week", err, "Week labels look like 2024-W10")
		return
	}

	title := "Week " + cli.FormatWeek(rep.Week)
	_, _ = fmt.Fprintln(deps.Stdout, title)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", len(title)))

	if rep.Totals.EntryCount == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No entries this week")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "By employee:")
	printBreakdowns(rep.ByEmployee)
	_, _ = fmt.Fprintln(deps.Stdout, "By project:")
	printBreakdowns(rep.ByProject)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	printBreakdown("Total", rep.Totals)
}

func printBreakdowns(bs []stats.Breakdown) {
	for _, b := range bs {
		key := b.Key
		if key == "" {
			key = "(unknown)"
		}
		printBreakdown("  "+key, b)
	}
}

func printBreakdown(label string, b stats.Breakdown) {
	_, _ = fmt.Fprintf(deps.Stdout, "%-24s %8sh  base %8sh  OT %7sh  (%d %s)\n",
		label, cli.FormatHours(b.Hours), cli.FormatHours(b.Base), cli.FormatHours(b.OT),
		b.EntryCount, cli.Pluralize("entry", b.EntryCount))
}
