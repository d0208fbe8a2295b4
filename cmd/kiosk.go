package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markargand/labourlog/internal/cli"
	"github.com/markargand/labourlog/internal/service"
)

var kioskCmd = &cobra.Command{
	Use:   "kiosk",
	Short: "Clock in and out by badge",
	Long: `Shop-floor clock-in and clock-out. Employees identify with their badge
code and, when one is set, their PIN. Clocking out records a pending entry
from the clock-in time to now, rounded to the current increment.`,
}

var kioskInCmd = &cobra.Command{
	Use:   "in <badge> <project-code>",
	Short: "Clock in against a project",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		pin, _ := cmd.Flags().GetString("pin")
		runWithServices(func(svc *service.Services) {
			kioskIn(svc, args[0], pin, args[1])
		})
	},
}

var kioskOutCmd = &cobra.Command{
	Use:   "out <badge>",
	Short: "Clock out and record the shift",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pin, _ := cmd.Flags().GetString("pin")
		breakMinutes, _ := cmd.Flags().GetInt("break")
		runWithServices(func(svc *service.Services) {
			kioskOut(svc, args[0], pin, breakMinutes)
		})
	},
}

var kioskStatusCmd = &cobra.Command{
	Use:   "status [badge]",
	Short: "Show open shifts",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithServices(func(svc *service.Services) {
			if len(args) == 1 {
				kioskBadgeStatus(svc, args[0])
				return
			}
			kioskOpenShifts(svc)
		})
	},
}

func init() {
	kioskInCmd.Flags().String("pin", "", "Badge PIN")
	kioskOutCmd.Flags().String("pin", "", "Badge PIN")
	kioskOutCmd.Flags().Int("break", 0, "Break taken during the shift, in minutes")
	kioskCmd.AddCommand(kioskInCmd, kioskOutCmd, kioskStatusCmd)
	rootCmd.AddCommand(kioskCmd)
}

func kioskHint(err error) string {
	switch {
	case errors.Is(err, service.ErrUnknownBadge):
		return "Run 'labourlog employee list' to see badge codes"
	case errors.Is(err, service.ErrWrongPIN):
		return "Pass the badge PIN with --pin"
	case errors.Is(err, service.ErrNotClockedIn):
		return "Clock in first with 'labourlog kiosk in <badge> <project-code>'"
	}
	return ""
}

func kioskIn(svc *service.Services, badge, pin, projectCode string) {
	shift, emp, err := svc.Kiosk.ClockIn(badge, pin, projectCode)
	if err != nil {
		printError("Clock-in failed", err, kioskHint(err))
		return
	}
	code := svc.Session.Snapshot().Directory().ProjectCode(shift.ProjectID)
	_, _ = fmt.Fprintf(deps.Stdout, "%s clocked in on %s at %s\n", emp.Name, code, shift.Start)
}

func kioskOut(svc *service.Services, badge, pin string, breakMinutes int) {
	e, err := svc.Kiosk.ClockOut(badge, pin, breakMinutes)
	if err != nil {
		hint := kioskHint(err)
		if hint == "" {
			hint = entryHint(err)
		}
		printError("Clock-out failed", err, hint)
		return
	}
	dir := svc.Session.Snapshot().Directory()
	_, _ = fmt.Fprintf(deps.Stdout, "%s clocked out: %s %s %sh on %s (id %s)\n",
		dir.EmployeeName(e.EmployeeID), e.Date, cli.FormatTimes(e), cli.FormatHours(e.Hours),
		dir.ProjectCode(e.ProjectID), cli.ShortID(e.ID))
}

func kioskBadgeStatus(svc *service.Services, badge string) {
	emp, shift, err := svc.Kiosk.Status(badge)
	if err != nil {
		printError("Unknown badge", err, kioskHint(err))
		return
	}
	if shift == nil {
		_, _ = fmt.Fprintf(deps.Stdout, "%s is not clocked in\n", emp.Name)
		return
	}
	code := svc.Session.Snapshot().Directory().ProjectCode(shift.ProjectID)
	_, _ = fmt.Fprintf(deps.Stdout, "%s clocked in on %s since %s %s\n", emp.Name, code, shift.Date, shift.Start)
}

func kioskOpenShifts(svc *service.Services) {
	shifts := svc.Kiosk.OpenShifts()
	if len(shifts) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Nobody is clocked in")
		return
	}
	dir := svc.Session.Snapshot().Directory()
	_, _ = fmt.Fprintf(deps.Stdout, "%d open %s:\n", len(shifts), cli.Pluralize("shift", len(shifts)))
	for _, sh := range shifts {
		_, _ = fmt.Fprintf(deps.Stdout, "  %-24s %-10s %s %s\n",
			dir.EmployeeName(sh.EmployeeID), dir.ProjectCode(sh.ProjectID), sh.Date, sh.Start)
	}
}
