package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markargand/labourlog/internal/cli"
	"github.com/markargand/labourlog/internal/remote"
	"github.com/markargand/labourlog/internal/service"
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Talk to the labour backend",
	Long: `Check, sign in to, and synchronise entries with the remote backend.

The API base is taken from the api_base config setting or the
LABOURLOG_API_BASE environment variable when set, otherwise from the value
stored with 'labourlog remote base <url>'.`,
}

var remoteHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the backend health endpoint",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithServices(remoteHealth)
	},
}

var remoteLoginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Check credentials against the backend",
	Long: `Sign in to the backend and show the account. The token is held in
memory for the life of the process only and is never written to disk.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		password, _ := cmd.Flags().GetString("password")
		runWithServices(func(svc *service.Services) {
			if password == "" {
				password = cli.ReadLine(deps.Stdout, deps.Stdin, "Password: ")
			}
			remoteLogin(svc, args[0], password)
		})
	},
}

var remotePullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace local entries with the backend's",
	Long: `Fetch every entry from the backend and replace the local entries with
them. A backup is taken first; on any error the local data is unchanged.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		runWithServices(func(svc *service.Services) {
			remotePull(svc, yes)
		})
	},
}

var remotePushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload all local entries",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithServices(remotePush)
	},
}

var remoteBaseCmd = &cobra.Command{
	Use:   "base [url]",
	Short: "Show or store the API base URL",
	Long: `Show the API base URL, or store a new one. An empty string ("")
restores the default.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithServices(func(svc *service.Services) {
			if len(args) == 0 {
				_, _ = fmt.Fprintln(deps.Stdout, svc.Sync.APIBase())
				return
			}
			setAPIBase(svc, args[0])
		})
	},
}

func init() {
	remoteLoginCmd.Flags().String("password", "", "Password (prompted when omitted)")
	remotePullCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	remoteCmd.AddCommand(remoteHealthCmd, remoteLoginCmd, remotePullCmd, remotePushCmd, remoteBaseCmd)
	rootCmd.AddCommand(remoteCmd)
}

func remoteContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), remote.DefaultTimeout)
}

func remoteHealth(svc *service.Services) {
	ctx, cancel := remoteContext()
	defer cancel()

	body, err := svc.Sync.Health(ctx)
	if err != nil {
		printError("Backend health check failed", err, "Check the API base: "+svc.Sync.APIBase())
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, body)
}

func remoteLogin(svc *service.Services, username, password string) {
	ctx, cancel := remoteContext()
	defer cancel()

	auth, err := svc.Sync.Login(ctx, username, password)
	if err != nil {
		printError("Login failed", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Signed in as %s", auth.User.Name)
	if auth.User.Role != "" {
		_, _ = fmt.Fprintf(deps.Stdout, " (%s)", auth.User.Role)
	}
	_, _ = fmt.Fprintln(deps.Stdout)
}

func remotePull(svc *service.Services, skipConfirm bool) {
	if !skipConfirm {
		n := len(svc.Session.Snapshot().Entries)
		q := fmt.Sprintf("Replace %d local %s with the backend's?", n, cli.Pluralize("entry", n))
		if !cli.Confirm(deps.Stdout, deps.Stdin, q) {
			_, _ = fmt.Fprintln(deps.Stdout, "Cancelled")
			return
		}
	}

	ctx, cancel := remoteContext()
	defer cancel()

	n, err := svc.Sync.Pull(ctx)
	if err != nil {
		printError("Pull failed; local entries were not changed", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Pulled %d %s from %s\n", n, cli.Pluralize("entry", n), svc.Sync.APIBase())
}

func remotePush(svc *service.Services) {
	ctx, cancel := remoteContext()
	defer cancel()

	n, err := svc.Sync.Push(ctx)
	if err != nil {
		printError("Push failed", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Pushed %d %s to %s\n", n, cli.Pluralize("entry", n), svc.Sync.APIBase())
}

func setAPIBase(svc *service.Services, base string) {
	if err := svc.Sync.SetAPIBase(base); err != nil {
		printError("Failed to store API base", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "API base set to %s\n", svc.Sync.APIBase())
}
