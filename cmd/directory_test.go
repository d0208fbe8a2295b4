package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmployees(t *testing.T) {
	env := newTestEnv(t)

	listEmployees(env.svc)
	env.expectOK(t, "No employees")

	env.reset()
	addEmployee(env.svc, "  Linus ", "2001", "")
	env.expectOK(t, "Added employee Linus (id id-001)")

	env.reset()
	addEmployee(env.svc, "", "", "")
	env.expectExit(t, "Failed to add employee")

	env.reset()
	addEmployee(env.svc, "Margaret", "2001", "")
	env.expectExit(t, "badge already assigned")

	env.reset()
	listEmployees(env.svc)
	env.expectOK(t, "id-001  Linus", "badge 2001")
}

func TestProjects(t *testing.T) {
	env := newTestEnv(t)

	listProjects(env.svc)
	env.expectOK(t, "No projects")

	env.reset()
	addProject(env.svc, "P-1", "Press line")
	env.expectOK(t, "Added project P-1 Press line (id id-001)")

	env.reset()
	addProject(env.svc, "p-1", "Other")
	env.expectExit(t, "Project codes must be unique")

	env.reset()
	listProjects(env.svc)
	env.expectOK(t, "P-1        Press line")
}

func TestImportProjects(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	path := filepath.Join(env.dir, "projects.csv")
	sheet := "Name,Code\n\"Welding, bay 2\",P-3\nMissing code,\nDuplicate,p-1\n"
	if err := os.WriteFile(path, []byte(sheet), 0644); err != nil {
		t.Fatal(err)
	}

	importProjects(env.svc, path)

	env.expectOK(t, "Imported 1 project (1 skipped, 1 duplicate)")
	p, err := env.svc.Directory.FindProject("P-3")
	if err != nil || p.Name != "Welding, bay 2" {
		t.Errorf("FindProject(P-3) = %+v, %v", p, err)
	}
}

func TestImportProjects_Stdin(t *testing.T) {
	env := newTestEnv(t)
	env.stdin.WriteString("code,name\nA,Alpha\nB,Beta\n")

	importProjects(env.svc, "-")

	env.expectOK(t, "Imported 2 projects\n")
}

func TestImportProjects_Errors(t *testing.T) {
	env := newTestEnv(t)

	importProjects(env.svc, filepath.Join(env.dir, "nope.csv"))
	env.expectExit(t, "Failed to open import file")

	env.reset()
	env.stdin.WriteString("project,title\nA,Alpha\n")
	importProjects(env.svc, "-")
	env.expectExit(t, "The first row must name the code and name columns")
	if n := len(env.svc.Directory.Projects()); n != 0 {
		t.Errorf("%d projects imported despite a bad header", n)
	}
}

func TestSeedDirectory(t *testing.T) {
	env := newTestEnv(t)

	seedDirectory(env.svc, "")
	env.expectOK(t, "Added 3 employees and 3 projects\n")

	env.reset()
	seedDirectory(env.svc, "")
	env.expectOK(t, "Added 0 employees and 0 projects (6 skipped)")
}

func TestSeedDirectory_File(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "seed.yaml")
	seed := "employees:\n  - name: Ada\n    badge: \"1001\"\nprojects:\n  - code: P-1\n    name: Press line\n"
	if err := os.WriteFile(path, []byte(seed), 0644); err != nil {
		t.Fatal(err)
	}

	seedDirectory(env.svc, path)
	env.expectOK(t, "Added 1 employee and 1 project\n")

	env.reset()
	seedDirectory(env.svc, filepath.Join(env.dir, "missing.yaml"))
	env.expectExit(t, "Failed to read seed file")
}
