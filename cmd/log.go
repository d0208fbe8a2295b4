package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markargand/labourlog/internal/cli"
	"github.com/markargand/labourlog/internal/clock"
	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/service"
	"github.com/markargand/labourlog/internal/timeutil"
)

// entryFlags are the raw form values shared by log and preview.
type entryFlags struct {
	Date     string
	Start    string
	End      string
	Break    int
	Hours    float64
	HasHours bool
	WorkType string
	Notes    string
}

var logCmd = &cobra.Command{
	Use:   "log <employee> <project>",
	Short: "Log a time entry",
	Long: `Log a pending time entry for an employee against a project.

Either give a start and end time with an optional break:
  labourlog log Ada P-1 --start 08:00 --end 16:30 --break 30

or log hours directly:
  labourlog log Ada P-1 --hours 7.5 --date 2024-03-04

Worked minutes are rounded to the current rounding increment.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openServices()
		if svc == nil {
			return
		}
		defer closeServices(svc)
		logEntry(svc, args[0], args[1], readEntryFlags(cmd))
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview worked hours without logging",
	Long: `Preview the raw and rounded duration for a start/end/break or hours value.

Examples:
  labourlog preview --start 08:07 --end 16:52 --break 30
  labourlog preview --hours 7.4`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openServices()
		if svc == nil {
			return
		}
		defer closeServices(svc)
		previewEntry(svc, readEntryFlags(cmd))
	},
}

func init() {
	for _, c := range []*cobra.Command{logCmd, previewCmd} {
		c.Flags().String("start", "", "Start time (HH:MM)")
		c.Flags().String("end", "", "End time (HH:MM)")
		c.Flags().Int("break", 0, "Break in minutes")
		c.Flags().Float64("hours", 0, "Hours worked, instead of start/end")
		rootCmd.AddCommand(c)
	}
	logCmd.Flags().StringP("date", "d", "", "Work date (default today)")
	logCmd.Flags().StringP("type", "t", "", "Work type, e.g. assembly")
	logCmd.Flags().StringP("notes", "n", "", "Free-text notes")
}

func readEntryFlags(cmd *cobra.Command) entryFlags {
	var f entryFlags
	f.Start, _ = cmd.Flags().GetString("start")
	f.End, _ = cmd.Flags().GetString("end")
	f.Break, _ = cmd.Flags().GetInt("break")
	f.Hours, _ = cmd.Flags().GetFloat64("hours")
	f.HasHours = cmd.Flags().Changed("hours")
	if cmd.Flags().Lookup("date") != nil {
		f.Date, _ = cmd.Flags().GetString("date")
		f.WorkType, _ = cmd.Flags().GetString("type")
		f.Notes, _ = cmd.Flags().GetString("notes")
	}
	return f
}

// input converts the flags to an entry.Input. Dates in DD/MM/YYYY form are
// accepted and an empty date means today.
func (f entryFlags) input(svc *service.Services) (entry.Input, error) {
	in := entry.Input{
		Start:        strings.TrimSpace(f.Start),
		End:          strings.TrimSpace(f.End),
		BreakMinutes: f.Break,
		WorkType:     strings.TrimSpace(f.WorkType),
		Notes:        strings.TrimSpace(f.Notes),
	}
	if f.HasHours {
		h := f.Hours
		in.ManualHours = &h
	}

	in.Date = timeutil.Today(svc.Session.Now())
	if f.Date != "" {
		d, err := timeutil.NormalizeDate(f.Date)
		if err != nil {
			return entry.Input{}, fmt.Errorf("%w: %v", entry.ErrInvalidDate, err)
		}
		in.Date = d
	}
	return in, nil
}

func logEntry(svc *service.Services, employeeRef, projectRef string, f entryFlags) {
	if !f.HasHours && (f.Start == "" || f.End == "") {
		printError("Give --start and --end, or --hours", nil,
			"Example: labourlog log Ada P-1 --start 08:00 --end 16:30 --break 30")
		return
	}

	emp, err := svc.Directory.FindEmployee(employeeRef)
	if err != nil {
		printError("Unknown employee", err, "Run 'labourlog employee list' to see employees")
		return
	}
	proj, err := svc.Directory.FindProject(projectRef)
	if err != nil {
		printError("Unknown project", err, "Run 'labourlog project list' to see project codes")
		return
	}

	in, err := f.input(svc)
	if err != nil {
		printError("Invalid date", err, "Use YYYY-MM-DD or DD/MM/YYYY")
		return
	}
	in.EmployeeID = emp.ID
	in.ProjectID = proj.ID

	e, err := svc.Entries.Create(in)
	if err != nil {
		printError("Failed to log entry", err, entryHint(err))
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Logged %sh for %s on %s [%s] %s (id %s)\n",
		cli.FormatHours(e.Hours), emp.Name, proj.Code, e.Date, cli.FormatTimes(e), cli.ShortID(e.ID))
	if rounded := clock.RoundToIncrement(e.RoundedFromMinutes, e.RoundingIncrement); rounded != e.RoundedFromMinutes {
		_, _ = fmt.Fprintf(deps.Stdout, "Rounded from %s to %s (%d-minute increment)\n",
			cli.FormatMinutes(e.RoundedFromMinutes), cli.FormatMinutes(rounded), e.RoundingIncrement)
	}
}

func previewEntry(svc *service.Services, f entryFlags) {
	in, err := f.input(svc)
	if err != nil {
		printError("Invalid date", err, "")
		return
	}
	increment := svc.Settings.Get().RoundingIncrement
	d := svc.Entries.Preview(in)

	_, _ = fmt.Fprintf(deps.Stdout, "Raw:     %s\n", cli.FormatMinutes(d.RawMinutes))
	_, _ = fmt.Fprintf(deps.Stdout, "Rounded: %s (%d-minute increment)\n", cli.FormatMinutes(d.RoundedMinutes), increment)
	_, _ = fmt.Fprintf(deps.Stdout, "Hours:   %s\n", cli.FormatHours(d.Hours))
}

// entryHint suggests a fix for a creation error.
func entryHint(err error) string {
	switch {
	case errors.Is(err, entry.ErrInvalidTime):
		return "Times are HH:MM on a 24-hour clock, e.g. 08:00 or 16:30"
	case errors.Is(err, entry.ErrEndBeforeStart):
		return "The end time must be later than the start time on the same day"
	case errors.Is(err, entry.ErrBreakOutOfRange):
		return fmt.Sprintf("Breaks are 0 to %d minutes", entry.MaxBreakMinutes)
	case errors.Is(err, entry.ErrNonPositiveHours):
		return "Worked time after the break must be more than zero"
	case errors.Is(err, entry.ErrInvalidDate):
		return "Use YYYY-MM-DD or DD/MM/YYYY"
	}
	return ""
}
