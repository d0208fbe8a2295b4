package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/markargand/labourlog/internal/osutil"
)

// MockPathProvider for testing config resolution
type MockPathProvider struct {
	UserConfigDirFn func() (string, error)
	MkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *MockPathProvider) UserConfigDir() (string, error) {
	if m.UserConfigDirFn != nil {
		return m.UserConfigDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return nil
}

// useTempConfigDir points config resolution at a temp dir and sets os.Args.
func useTempConfigDir(t *testing.T, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	osutil.SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return dir, nil },
		MkdirAllFn:      os.MkdirAll,
	})
	originalArgs := os.Args
	os.Args = append([]string{"labourlog"}, args...)
	t.Cleanup(func() {
		osutil.ResetProvider()
		os.Args = originalArgs
	})
	return dir
}

func TestRun_Success(t *testing.T) {
	useTempConfigDir(t, "config", "path")

	if code := run(); code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
}

func TestRun_ConfigPathFailure(t *testing.T) {
	defer osutil.ResetProvider()
	osutil.SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) {
			return "", errors.New("permission denied")
		},
	})

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for config path failure, got %d", code)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := useTempConfigDir(t, "config", "path")
	path := filepath.Join(dir, "labourlog", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("storage_backend = \"mongo\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for invalid config, got %d", code)
	}
}

func TestRun_ExecuteError(t *testing.T) {
	useTempConfigDir(t, "--unknownflag")

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for Execute error, got %d", code)
	}
}

func TestMain_CallsExitWithRunResult(t *testing.T) {
	useTempConfigDir(t, "config", "path")
	originalExit := exitFunc
	defer func() { exitFunc = originalExit }()

	capturedCode := -1
	exitFunc = func(code int) {
		capturedCode = code
	}

	main()

	if capturedCode != 0 {
		t.Errorf("Expected exit code 0, got %d", capturedCode)
	}
}
