package main

import (
	"io"

	"github.com/ponyatov/kb/cmd/session"
	"github.com/spf13/cobra"
)

func newEchoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "echo ARG...",
		Short: "Print each argument with its index, program name first",
		Long: `Print one line per invocation argument, argv[0] being the program name:

  argv[0] = "kbctl"
  argv[1] = "alpha"

Arguments are quoted and escaped. At least one argument is required.
Flags are read only before the first argument.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return session.WithBufferedOut(cmd.OutOrStdout(), func(w io.Writer) error {
				return a.sess.Echo(cmd.Context(), w, a.argv(args))
			})
		},
	}

	cmd.Flags().SetInterspersed(false)

	return cmd
}
