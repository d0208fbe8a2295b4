package cmd

import (
	"io"
	"os"

	"github.com/markargand/labourlog/internal/config"
	"github.com/markargand/labourlog/internal/service"
	"github.com/markargand/labourlog/internal/storage"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Stdin      io.Reader
	Exit       func(code int)
	Services   func() (*service.Services, error)
	Store      func() (storage.Store, error)
	ConfigPath func() (string, error)
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		Exit:       os.Exit,
		Services:   service.NewServices,
		Store:      openConfiguredStore,
		ConfigPath: config.GetConfigPath,
	}
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}

func openConfiguredStore() (storage.Store, error) {
	store, _, _, err := service.OpenConfiguredStore()
	return store, err
}
