package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/markargand/labourlog/internal/cli"
	"github.com/markargand/labourlog/internal/importer"
	"github.com/markargand/labourlog/internal/service"
)

var employeeCmd = &cobra.Command{
	Use:     "employee",
	Aliases: []string{"employees"},
	Short:   "Manage employees",
}

var employeeAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an employee",
	Long: `Add an employee. A badge code lets the employee use the kiosk;
a PIN, when set, is checked at clock-in and clock-out.

Examples:
  labourlog employee add "Ada Lovelace"
  labourlog employee add "Ada Lovelace" --badge 1001 --pin 4321`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		badge, _ := cmd.Flags().GetString("badge")
		pin, _ := cmd.Flags().GetString("pin")
		runWithServices(func(svc *service.Services) {
			addEmployee(svc, args[0], badge, pin)
		})
	},
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithServices(listEmployees)
	},
}

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects"},
	Short:   "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <code> <name>",
	Short: "Add a project",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runWithServices(func(svc *service.Services) {
			addProject(svc, args[0], args[1])
		})
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithServices(listProjects)
	},
}

var projectImportCmd = &cobra.Command{
	Use:   "import <file.csv|->",
	Short: "Import projects from a CSV sheet",
	Long: `Import projects from a CSV file with a header row containing "code"
and "name" columns (any order, any case). Rows missing a code or name are
skipped, as are codes that already exist. Use "-" to read stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithServices(func(svc *service.Services) {
			importProjects(svc, args[0])
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed [file.yaml]",
	Short: "Seed employees and projects",
	Long: `Add the employees and projects listed in a YAML seed file. Without a
file argument the seed_file config setting is used, and without that a small
demo directory is added. Existing names and codes are skipped.

Seed file format:
  employees:
    - name: Ada Lovelace
      badge: "1001"
      pin: "4321"
  projects:
    - code: PRJ-1
      name: Press line`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithServices(func(svc *service.Services) {
			path := svc.Config.Get().SeedFile
			if len(args) > 0 {
				path = args[0]
			}
			seedDirectory(svc, path)
		})
	},
}

func init() {
	employeeAddCmd.Flags().StringP("badge", "b", "", "Kiosk badge code")
	employeeAddCmd.Flags().String("pin", "", "Kiosk PIN")
	employeeCmd.AddCommand(employeeAddCmd, employeeListCmd)
	projectCmd.AddCommand(projectAddCmd, projectListCmd, projectImportCmd)
	rootCmd.AddCommand(employeeCmd, projectCmd, seedCmd)
}

func addEmployee(svc *service.Services, name, badge, pin string) {
	e, err := svc.Directory.AddEmployee(name, badge, pin)
	if err != nil {
		printError("Failed to add employee", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added employee %s (id %s)\n", e.Name, cli.ShortID(e.ID))
}

func listEmployees(svc *service.Services) {
	employees := svc.Directory.Employees()
	if len(employees) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No employees. Add one with 'labourlog employee add <name>' or run 'labourlog seed'")
		return
	}
	for _, e := range employees {
		badge := e.Badge
		if badge == "" {
			badge = "-"
		}
		_, _ = fmt.Fprintf(deps.Stdout, "%s  %-24s badge %s\n", cli.ShortID(e.ID), e.Name, badge)
	}
}

func addProject(svc *service.Services, code, name string) {
	p, err := svc.Directory.AddProject(code, name)
	if err != nil {
		printError("Failed to add project", err, "Project codes must be unique, ignoring case")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added project %s %s (id %s)\n", p.Code, p.Name, cli.ShortID(p.ID))
}

func listProjects(svc *service.Services) {
	projects := svc.Directory.Projects()
	if len(projects) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No projects. Add one with 'labourlog project add <code> <name>'")
		return
	}
	for _, p := range projects {
		_, _ = fmt.Fprintf(deps.Stdout, "%-10s %s\n", p.Code, p.Name)
	}
}

func importProjects(svc *service.Services, path string) {
	var r io.Reader = deps.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			printError("Failed to open import file", err, "")
			return
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	summary, err := svc.Directory.ImportProjects(r)
	if err != nil {
		printError("Failed to import projects", err, "The first row must name the code and name columns")
		return
	}
	n := len(summary.Imported)
	_, _ = fmt.Fprintf(deps.Stdout, "Imported %d %s", n, cli.Pluralize("project", n))
	if summary.Skipped > 0 || summary.Duplicates > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, " (%d skipped, %d duplicate)", summary.Skipped, summary.Duplicates)
	}
	_, _ = fmt.Fprintln(deps.Stdout)
}

func seedDirectory(svc *service.Services, path string) {
	seed := importer.DefaultSeed()
	if path != "" {
		var err error
		if seed, err = importer.LoadSeed(path); err != nil {
			printError("Failed to read seed file", err, "")
			return
		}
	}

	summary, err := svc.Directory.Seed(seed)
	if err != nil {
		printError("Failed to seed directory", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added %d %s and %d %s",
		summary.Employees, cli.Pluralize("employee", summary.Employees),
		summary.Projects, cli.Pluralize("project", summary.Projects))
	if summary.Skipped > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, " (%d skipped)", summary.Skipped)
	}
	_, _ = fmt.Fprintln(deps.Stdout)
}
