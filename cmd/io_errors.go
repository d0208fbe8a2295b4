package cmd

import (
	"fmt"

	"github.com/markargand/labourlog/internal/service"
)

// printError reports a failed command on stderr and exits with status 1.
// err and hint are optional.
func printError(msg string, err error, hint string) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", msg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	if hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

// printWarning reports a recoverable problem on stderr.
func printWarning(msg string, err error) {
	_, _ = fmt.Fprintf(deps.Stderr, "Warning: %s\n", msg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
}

// openServices returns the services, or reports the failure and returns nil.
func openServices() *service.Services {
	svc, err := deps.Services()
	if err != nil {
		printError("Failed to open labourlog data", err,
			"Run 'labourlog validate' to check the stored state or 'labourlog restore' to roll back to a backup")
		return nil
	}
	return svc
}

// closeServices releases the store, warning on failure.
func closeServices(svc *service.Services) {
	if err := svc.Close(); err != nil {
		printWarning("Failed to close storage", err)
	}
}
