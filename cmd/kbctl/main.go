package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ponyatov/kb/cmd/session"
	"github.com/ponyatov/kb/cmd/ui"
	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

func main() {
	rootCmd := newRootCmd(os.Args[0])

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		code := session.ExitCode(err)
		fmt.Fprintln(os.Stderr, ui.ErrorMessage("Error: "+err.Error()))
		if code == session.ExitUsage {
			fmt.Fprintln(os.Stderr, ui.WarningMessage("Run 'kbctl --help' for usage."))
		}
		os.Exit(code)
	}
}

func newRootCmd(progName string) *cobra.Command {
	a := newApp(progName)

	rootCmd := &cobra.Command{
		Use:   "kbctl",
		Short: "Manage kb configuration and run its components one at a time",
		Long: `kbctl is the companion of kb. kb itself takes no options: it echoes
every argument and runs the demo loop as configured. kbctl edits that
configuration and runs the echo or the demo on their own, with flags that
override configuration for a single run.`,
		Version:       fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &session.ExitError{Code: session.ExitUsage, Err: err}
	})
	a.bindPersistentFlags(rootCmd)

	rootCmd.AddCommand(newEchoCmd(a))
	rootCmd.AddCommand(newDemoCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}
