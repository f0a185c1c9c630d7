// Command kb echoes every invocation argument, program name first, then
// runs the numeric demo loop. It takes no options; every argument is
// echoed verbatim. The demo variant, output format and logging come from
// configuration, which kbctl edits.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ponyatov/kb/cmd/session"
	"github.com/ponyatov/kb/cmd/ui"
	"github.com/ponyatov/kb/pkg/config"
)

func main() {
	os.Exit(run(context.Background(), os.Stdout, os.Stderr, os.Args, config.DefaultOptions()))
}

// run executes one invocation and returns the process exit status. argv
// includes the program name.
func run(ctx context.Context, stdout, stderr io.Writer, argv []string, opts config.Options) int {
	sess, ctx, err := session.Open(ctx, session.Options{
		Config:    opts,
		LogOutput: stderr,
	})
	if err == nil {
		err = session.WithBufferedOut(stdout, func(w io.Writer) error {
			if err := sess.Echo(ctx, w, argv); err != nil {
				return err
			}
			return sess.Demo(ctx, w)
		})
	}

	if err != nil {
		fmt.Fprintln(stderr, ui.ErrorMessage("Error: "+err.Error()))
		return session.ExitCode(err)
	}
	return session.ExitOK
}
