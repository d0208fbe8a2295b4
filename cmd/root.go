package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markargand/labourlog/internal/cli"
	"github.com/markargand/labourlog/internal/filter"
	"github.com/markargand/labourlog/internal/service"
	"github.com/markargand/labourlog/internal/timeutil"
)

var rootCmd = &cobra.Command{
	Use:   "labourlog",
	Short: "Factory time and attendance logger",
	Long: `labourlog records work hours against projects, rounds them, splits them
into base and overtime hours per employee per day, and reports on them.

Usage:
  labourlog                                       List entries with totals
  labourlog --last 7 --project P-1                List a filtered view
  labourlog log <employee> <project> --start 08:00 --end 16:30 --break 30
  labourlog log <employee> <project> --hours 7.5  Log hours directly
  labourlog approve <id>                          Approve and lock an entry
  labourlog week approve [YYYY-Www]               Approve a whole ISO week
  labourlog report week [YYYY-Www]                Weekly report by employee and project
  labourlog export csv|xlsx|pdf                   Export the filtered view
  labourlog kiosk in <badge> <project>            Clock in at the kiosk
  labourlog tui                                   Supervisor terminal UI

Employees are referenced by id, badge or name; projects by id or code.
Entries are referenced by id or any unique id prefix.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}

		svc := openServices()
		if svc == nil {
			return
		}
		defer closeServices(svc)

		f, ok := readFilter(cmd, svc)
		if !ok {
			return
		}
		listEntries(svc, f)
	},
}

func init() {
	addFilterFlags(rootCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"labourlog version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// addFilterFlags registers the entry view filter flags on cmd.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().Int("last", 0, "Only the last N days, including today")
	cmd.Flags().StringP("project", "p", "", "Project code or id")
	cmd.Flags().StringP("employee", "e", "", "Employee name, badge or id")
	cmd.Flags().StringP("search", "s", "", "Case-insensitive text search")
}

// readFilter builds a filter from the flags registered by addFilterFlags.
// On failure it reports the error and returns false.
func readFilter(cmd *cobra.Command, svc *service.Services) (filter.Filter, bool) {
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	lastDays, _ := cmd.Flags().GetInt("last")
	projectRef, _ := cmd.Flags().GetString("project")
	employeeRef, _ := cmd.Flags().GetString("employee")
	search, _ := cmd.Flags().GetString("search")

	return buildFilter(svc, fromStr, toStr, lastDays, projectRef, employeeRef, search)
}

func buildFilter(svc *service.Services, fromStr, toStr string, lastDays int, projectRef, employeeRef, search string) (filter.Filter, bool) {
	if lastDays < 0 {
		printError("--last must be a positive number of days", nil, "")
		return filter.Filter{}, false
	}
	from, to, err := timeutil.ParseDateRangeFlags(fromStr, toStr, lastDays, svc.Session.Now())
	if err != nil {
		printError("Invalid date range", err, "Use either --last N or --from/--to, not both")
		return filter.Filter{}, false
	}

	f := filter.Filter{From: from, To: to, Query: strings.TrimSpace(search)}

	if projectRef != "" {
		p, err := svc.Directory.FindProject(projectRef)
		if err != nil {
			printError("Unknown project", err, "Run 'labourlog project list' to see project codes")
			return filter.Filter{}, false
		}
		f.ProjectID = p.ID
	}
	if employeeRef != "" {
		e, err := svc.Directory.FindEmployee(employeeRef)
		if err != nil {
			printError("Unknown employee", err, "Run 'labourlog employee list' to see employees")
			return filter.Filter{}, false
		}
		f.EmployeeID = e.ID
	}
	return f, true
}

// listEntries prints the filtered view with its totals.
func listEntries(svc *service.Services, f filter.Filter) {
	view := svc.Entries.List(f)
	dir := svc.Session.Snapshot().Directory()

	if len(view.Entries) == 0 {
		if f.IsEmpty() {
			_, _ = fmt.Fprintln(deps.Stdout, "No entries yet. Log one with 'labourlog log <employee> <project> --start HH:MM --end HH:MM'")
		} else {
			_, _ = fmt.Fprintln(deps.Stdout, "No entries match the filter")
		}
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Entries (%s):\n", cli.DescribeRange(f.From, f.To))
	for _, e := range view.Entries {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatEntryLine(e, view.Alloc[e.ID], dir))
	}

	t := view.Totals
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %sh (base %sh, OT %sh) across %d %s\n",
		cli.FormatHours(t.Hours), cli.FormatHours(t.Base), cli.FormatHours(t.OT),
		t.EntryCount, cli.Pluralize("entry", t.EntryCount))

	if len(t.ByProject) > 1 {
		_, _ = fmt.Fprintln(deps.Stdout, "By project:")
		printBreakdowns(t.ByProject)
	}
	if len(t.ByEmployee) > 1 {
		_, _ = fmt.Fprintln(deps.Stdout, "By employee:")
		printBreakdowns(t.ByEmployee)
	}
}
