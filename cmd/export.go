package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markargand/labourlog/internal/filter"
	"github.com/markargand/labourlog/internal/report"
	"github.com/markargand/labourlog/internal/service"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <csv|xlsx|pdf>",
	Short: "Export the filtered entries",
	Long: `Export the entries of the current view with their base and overtime
split. Columns: Date, Employee, Project Code, Project Name, Work Type, Start,
End, Break(min), Hours, Base, OT, Status, Notes.

CSV is written to stdout unless --output is given. XLSX and PDF are written
to labourlog-<date>.<ext> in the working directory by default.

Examples:
  labourlog export csv > entries.csv
  labourlog export xlsx --last 7
  labourlog export pdf --project P-1 -o press.pdf`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		runWithServices(func(svc *service.Services) {
			f, ok := readFilter(cmd, svc)
			if !ok {
				return
			}
			exportEntries(svc, args[0], output, f)
		})
	},
}

func init() {
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Output file (\"-\" for stdout)")
	rootCmd.AddCommand(exportCmd)
}

func exportEntries(svc *service.Services, format, output string, f filter.Filter) {
	exp, err := report.Get(format)
	if err != nil {
		printError("Unsupported export format", err, "")
		return
	}

	if output == "" {
		if exp.Name() == "csv" {
			output = "-"
		} else {
			output = fmt.Sprintf("labourlog-%s%s", svc.Session.Now().Format("2006-01-02"), exp.Extension())
		}
	}

	var buf bytes.Buffer
	if err := svc.Reports.Export(&buf, exp.Name(), f); err != nil {
		printError("Failed to export entries", err, "")
		return
	}

	if output == "-" {
		_, _ = buf.WriteTo(deps.Stdout)
		return
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		printError("Failed to write export file", err, "Check that the directory exists and is writable")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Exported %s to %s\n", strings.ToUpper(exp.Name()), output)
}
