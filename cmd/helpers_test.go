package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/markargand/labourlog/internal/config"
	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/service"
	"github.com/markargand/labourlog/internal/storage"
)

// testEnv wires the commands to services over a temp JSON store.
type testEnv struct {
	dir      string
	store    *storage.FileStore
	svc      *service.Services
	now      time.Time
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	stdin    *bytes.Buffer
	exitCode int
}

// newTestEnv installs test deps with a clock fixed at Monday 2024-03-04 09:00
// and sequential ids. exitCode is -1 until Exit is called.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:      dir,
		store:    storage.NewFileStore(filepath.Join(dir, storage.StateFile)),
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		stdin:    &bytes.Buffer{},
		exitCode: -1,
	}
	env.openServices(t)

	SetDeps(&Deps{
		Stdout: env.stdout,
		Stderr: env.stderr,
		Stdin:  env.stdin,
		Exit:   func(code int) { env.exitCode = code },
		Services: func() (*service.Services, error) {
			return env.svc, nil
		},
		Store: func() (storage.Store, error) {
			return env.store, nil
		},
		ConfigPath: func() (string, error) {
			return filepath.Join(dir, config.ConfigFile), nil
		},
	})
	t.Cleanup(ResetDeps)
	return env
}

// openServices (re)loads the services from the store.
func (env *testEnv) openServices(t *testing.T) {
	t.Helper()
	svc, err := service.NewServicesWithStore(env.store, filepath.Join(env.dir, config.ConfigFile), config.DefaultConfig())
	if err != nil {
		t.Fatalf("NewServicesWithStore() error: %v", err)
	}
	if env.now.IsZero() {
		env.now = time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local)
	}
	svc.Session.Now = func() time.Time { return env.now }
	n := 0
	if env.svc != nil {
		n = 100
	}
	svc.Session.NewID = func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
	env.svc = svc
}

// at moves the clock to hh:mm on the current test day.
func (env *testEnv) at(hhmm string) {
	var h, m int
	_, _ = fmt.Sscanf(hhmm, "%d:%d", &h, &m)
	env.now = time.Date(env.now.Year(), env.now.Month(), env.now.Day(), h, m, 0, 0, time.Local)
}

// seed adds Ada (badge 1001, PIN 4321), Grace (badge 1002) and projects
// P-1 and P-2, with ids id-001 to id-004.
func (env *testEnv) seed(t *testing.T) {
	t.Helper()
	for _, e := range [][3]string{{"Ada", "1001", "4321"}, {"Grace", "1002", ""}} {
		if _, err := env.svc.Directory.AddEmployee(e[0], e[1], e[2]); err != nil {
			t.Fatal(err)
		}
	}
	for _, p := range [][2]string{{"P-1", "Press line"}, {"P-2", "Paint shop"}} {
		if _, err := env.svc.Directory.AddProject(p[0], p[1]); err != nil {
			t.Fatal(err)
		}
	}
}

func (env *testEnv) create(t *testing.T, employeeID, projectID, date, start, end string) entry.TimeEntry {
	t.Helper()
	e, err := env.svc.Entries.Create(entry.Input{
		EmployeeID: employeeID, ProjectID: projectID, Date: date, Start: start, End: end,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	return e
}

func (env *testEnv) reset() {
	env.stdout.Reset()
	env.stderr.Reset()
	env.exitCode = -1
}

func (env *testEnv) expectExit(t *testing.T, wantStderr string) {
	t.Helper()
	if env.exitCode != 1 {
		t.Errorf("exit code = %d, want 1", env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), wantStderr) {
		t.Errorf("stderr = %q, want it to contain %q", env.stderr.String(), wantStderr)
	}
}

func (env *testEnv) expectOK(t *testing.T, wantStdout ...string) {
	t.Helper()
	if env.exitCode != -1 {
		t.Errorf("unexpected exit %d, stderr: %s", env.exitCode, env.stderr.String())
	}
	for _, want := range wantStdout {
		if !strings.Contains(env.stdout.String(), want) {
			t.Errorf("stdout = %q, want it to contain %q", env.stdout.String(), want)
		}
	}
}
