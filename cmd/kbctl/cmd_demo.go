package main

import (
	"io"

	"github.com/ponyatov/kb/cmd/session"
	"github.com/spf13/cobra"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the five-step numeric demo loop",
		Long: `Run i = 0..4, printing the index, its parity and, in the accumulator
variant, the running value s before updating it to (s + i)^2.

Select the variant with --demo or the demo.variant configuration key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return session.WithBufferedOut(cmd.OutOrStdout(), func(w io.Writer) error {
				return a.sess.Demo(cmd.Context(), w)
			})
		},
	}
}
