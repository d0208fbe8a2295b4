package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markargand/labourlog/internal/cli"
	"github.com/markargand/labourlog/internal/service"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a time entry",
	Long: `Delete an unlocked time entry by id or unique id prefix.
A backup is taken before the entry is removed.

Examples:
  labourlog delete 3f2a91c0
  labourlog delete 3f2a --yes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		runWithServices(func(svc *service.Services) {
			deleteEntry(svc, args[0], yes)
		})
	},
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func deleteEntry(svc *service.Services, ref string, skipConfirm bool) {
	e, err := svc.Entries.Get(ref)
	if err != nil {
		printError("Failed to find entry", err, statusHint(err))
		return
	}
	if err := e.CanDelete(); err != nil {
		printError("Cannot delete entry", err, statusHint(err))
		return
	}

	dir := svc.Session.Snapshot().Directory()
	if !skipConfirm {
		_, _ = fmt.Fprintf(deps.Stdout, "%s %s %s %sh\n", e.Date,
			dir.EmployeeName(e.EmployeeID), dir.ProjectCode(e.ProjectID), cli.FormatHours(e.Hours))
		if !cli.Confirm(deps.Stdout, deps.Stdin, "Delete this entry?") {
			_, _ = fmt.Fprintln(deps.Stdout, "Cancelled")
			return
		}
	}

	if _, err := svc.Entries.Delete(e.ID); err != nil {
		printError("Failed to delete entry", err, statusHint(err))
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted entry %s\n", cli.ShortID(e.ID))
}
