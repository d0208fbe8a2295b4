package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markargand/labourlog/internal/cli"
	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/service"
)

var approveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve and lock an entry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithServices(func(svc *service.Services) {
			setEntryStatus(svc, args[0], entry.StatusApproved)
		})
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject an entry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithServices(func(svc *service.Services) {
			setEntryStatus(svc, args[0], entry.StatusRejected)
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <id> <pending|approved|rejected>",
	Short: "Set the status of an entry",
	Long: `Set the status of a single entry. Locked entries cannot be changed;
use 'labourlog week reject' to reopen an approved week.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		status, err := entry.ParseStatus(args[1])
		if err != nil {
			printError("Invalid status", err, "")
			return
		}
		runWithServices(func(svc *service.Services) {
			setEntryStatus(svc, args[0], status)
		})
	},
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Approve or reject a whole ISO week",
	Long: `Batch-approve or batch-reject every entry in an ISO week (YYYY-Www).
Approval locks the entries; rejection unlocks them. The current week is
used when no label is given.`,
}

var weekApproveCmd = &cobra.Command{
	Use:   "approve [YYYY-Www]",
	Short: "Approve and lock every entry of a week",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithServices(func(svc *service.Services) {
			batchWeek(svc, weekArg(svc, args), true)
		})
	},
}

var weekRejectCmd = &cobra.Command{
	Use:   "reject [YYYY-Www]",
	Short: "Reject and unlock every entry of a week",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithServices(func(svc *service.Services) {
			batchWeek(svc, weekArg(svc, args), false)
		})
	},
}

func init() {
	weekCmd.AddCommand(weekApproveCmd, weekRejectCmd)
	rootCmd.AddCommand(approveCmd, rejectCmd, statusCmd, weekCmd)
}

// runWithServices opens the services, runs fn and closes them again.
func runWithServices(fn func(svc *service.Services)) {
	svc := openServices()
	if svc == nil {
		return
	}
	defer closeServices(svc)
	fn(svc)
}

// weekArg returns the week label argument, or the current week.
func weekArg(svc *service.Services, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return svc.Entries.CurrentWeek()
}

func setEntryStatus(svc *service.Services, ref string, status entry.Status) {
	e, err := svc.Entries.SetStatus(ref, status)
	if err != nil {
		printError("Failed to update entry", err, statusHint(err))
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Entry %s is now %s\n", cli.ShortID(e.ID), cli.FormatStatus(e))
}

func statusHint(err error) string {
	switch {
	case errors.Is(err, entry.ErrLocked):
		return "Approved entries are locked; reject the whole week to reopen them"
	case errors.Is(err, entry.ErrEntryNotFound):
		return "Run 'labourlog' to list entries and their ids"
	case errors.Is(err, service.ErrAmbiguousID):
		return "Use more characters of the id"
	}
	return ""
}

func batchWeek(svc *service.Services, week string, approve bool) {
	var (
		n    int
		err  error
		verb = "Approved"
	)
	if approve {
		n, err = svc.Entries.ApproveWeek(week)
	} else {
		verb = "Rejected"
		n, err = svc.Entries.RejectWeek(week)
	}
	if err != nil {
		printError("Failed to update week", err, "Week labels look like 2024-W10")
		return
	}
	if n == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries in %s\n", cli.FormatWeek(week))
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%s %d %s in %s\n", verb, n, cli.Pluralize("entry", n), cli.FormatWeek(week))
}
