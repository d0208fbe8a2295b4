package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/markargand/labourlog/internal/cli"
	"github.com/markargand/labourlog/internal/storage"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the stored data for problems",
	Long: `Check that the stored state can be read and that every entry refers to
an existing employee and project.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		validateStorage()
	},
}

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [n]",
	Short: "Restore the data from a backup",
	Long: `Restore the stored state from one of the last 3 backups. Backups are
taken automatically before deletions, pulls and restores.

Examples:
  labourlog restore       Restore from most recent backup
  labourlog restore 2     Restore from backup #2`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		restoreFromBackup(args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd, restoreCmd)
}

// openStore opens the configured store without decoding it, so a corrupted
// state can still be inspected and restored.
func openStore() (storage.Store, bool) {
	store, err := deps.Store()
	if err != nil {
		printError("Failed to open storage", err, "")
		return nil, false
	}
	return store, true
}

func validateStorage() {
	store, ok := openStore()
	if !ok {
		return
	}
	defer func() { _ = store.Close() }()

	h, err := storage.Validate(store)
	if err != nil {
		printError("Failed to read storage", err, "")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Storage: %s\n", h.Location)
	switch {
	case !h.Exists:
		_, _ = fmt.Fprintln(deps.Stdout, "No data stored yet")
		return
	case h.Corrupted:
		printError("Stored state is corrupted", fmt.Errorf("%s", h.Error), "Run 'labourlog restore' to roll back to a backup")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%d %s, %d %s, %d %s\n",
		h.Employees, cli.Pluralize("employee", h.Employees),
		h.Projects, cli.Pluralize("project", h.Projects),
		h.Entries, cli.Pluralize("entry", h.Entries))
	if len(h.Problems) > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "%d %s found:\n", len(h.Problems), cli.Pluralize("problem", len(h.Problems)))
		for _, p := range h.Problems {
			_, _ = fmt.Fprintf(deps.Stdout, "  - %s\n", p)
		}
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "OK")
}

// restoreFromBackup handles the restore command logic
func restoreFromBackup(args []string) {
	store, ok := openStore()
	if !ok {
		return
	}
	defer func() { _ = store.Close() }()

	backups, err := store.ListBackups()
	if err != nil {
		printError("Failed to list backups", err, "")
		return
	}
	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, b := range backups {
		if b.Number == 1 {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (most recent)\n", b.Number, b.Path)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s\n", b.Number, b.Path)
		}
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	backupNum := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			printError(fmt.Sprintf("Invalid backup number '%s'", args[0]), nil, "")
			return
		}
		if num < 1 || num > storage.MaxBackupCount {
			printError(fmt.Sprintf("Backup number must be between 1 and %d (got %d)", storage.MaxBackupCount, num), nil, "")
			return
		}
		backupNum = num
	}
	if backupNum > len(backups) {
		printError(fmt.Sprintf("Backup %d does not exist", backupNum), nil, "")
		return
	}

	if err := store.Restore(backupNum); err != nil {
		printError("Failed to restore backup", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored from backup %d\n", backupNum)
}
