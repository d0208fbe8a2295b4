package service

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/markargand/labourlog/internal/config"
	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/storage"
)

// testClock is a settable clock for sessions under test.
type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Set(hhmm string) {
	c.t = mustTime(c.t.Format("2006-01-02") + " " + hhmm)
}

func mustTime(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

// newTestServices builds services over a JSON store in a temp dir with a
// fixed clock (Monday 2024-03-04 09:00) and sequential ids.
func newTestServices(t *testing.T) (*Services, *testClock) {
	t.Helper()
	return newTestServicesWithConfig(t, config.DefaultConfig())
}

func newTestServicesWithConfig(t *testing.T, cfg config.Config) (*Services, *testClock) {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewFileStore(filepath.Join(dir, storage.StateFile))

	svc, err := NewServicesWithStore(store, filepath.Join(dir, config.ConfigFile), cfg)
	if err != nil {
		t.Fatalf("NewServicesWithStore() error: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })

	clk := &testClock{t: mustTime("2024-03-04 09:00")}
	svc.Session.Now = clk.Now
	n := 0
	svc.Session.NewID = func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
	return svc, clk
}

// seedDirectory adds employee Ada (badge 1001, PIN 4321) and Grace, and
// projects P-1 and P-2.
func seedDirectory(t *testing.T, svc *Services) (ada, grace entry.Employee, p1, p2 entry.Project) {
	t.Helper()
	var err error
	if ada, err = svc.Directory.AddEmployee("Ada", "1001", "4321"); err != nil {
		t.Fatal(err)
	}
	if grace, err = svc.Directory.AddEmployee("Grace", "1002", ""); err != nil {
		t.Fatal(err)
	}
	if p1, err = svc.Directory.AddProject("P-1", "Press line"); err != nil {
		t.Fatal(err)
	}
	if p2, err = svc.Directory.AddProject("P-2", "Paint shop"); err != nil {
		t.Fatal(err)
	}
	return ada, grace, p1, p2
}

func mustCreate(t *testing.T, svc *Services, in entry.Input) entry.TimeEntry {
	t.Helper()
	e, err := svc.Entries.Create(in)
	if err != nil {
		t.Fatalf("Create(%+v) error: %v", in, err)
	}
	return e
}

func hoursPtr(h float64) *float64 { return &h }
