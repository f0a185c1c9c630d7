package main

import (
	"fmt"
	"strings"

	"github.com/ponyatov/kb/cmd/session"
	"github.com/ponyatov/kb/pkg/config"
	"github.com/spf13/cobra"
)

// app is the state shared by every command of one invocation
type app struct {
	progName string

	logLevel  string
	logFormat string
	verbose   bool
	overrides []string
	demo      string
	table     bool

	sess *session.Session
}

func newApp(progName string) *app {
	return &app{progName: progName}
}

func (a *app) bindPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "text", "Log format (text, json)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output (sets log level to debug)")
	flags.StringArrayVarP(&a.overrides, "config", "c", nil, "Override a configuration key for this run (key=value, repeatable)")
	flags.StringVar(&a.demo, "demo", "", "Demo loop variant: off, parity or accumulator (default from demo.variant)")
	flags.BoolVar(&a.table, "table", false, "Render output as tables (default from output.format)")
}

// setup opens the session with -c overrides first and explicit flags on
// top, then installs its logger into the command context.
func (a *app) setup(cmd *cobra.Command) error {
	overrides, err := a.collectOverrides(cmd)
	if err != nil {
		return err
	}

	sess, ctx, err := session.Open(cmd.Context(), session.Options{
		Config:    config.DefaultOptions(),
		LogOutput: cmd.ErrOrStderr(),
		Overrides: overrides,
	})
	if err != nil {
		return err
	}

	a.sess = sess
	cmd.SetContext(ctx)
	return nil
}

func (a *app) collectOverrides(cmd *cobra.Command) ([]session.Override, error) {
	var out []session.Override

	for _, kv := range a.overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, &session.ExitError{Code: session.ExitUsage, Err: fmt.Errorf("--config %q: want key=value", kv)}
		}
		out = append(out, session.Override{Key: strings.TrimSpace(key), Value: value})
	}

	flags := cmd.Flags()
	if flags.Changed("demo") {
		out = append(out, session.Override{Key: config.KeyDemoVariant, Value: a.demo})
	}
	if flags.Changed("table") {
		format := config.OutputPlain
		if a.table {
			format = config.OutputTable
		}
		out = append(out, session.Override{Key: config.KeyOutputFormat, Value: format})
	}
	if flags.Changed("log-level") {
		out = append(out, session.Override{Key: config.KeyLogLevel, Value: a.logLevel})
	}
	if a.verbose {
		out = append(out, session.Override{Key: config.KeyLogLevel, Value: "debug"})
	}
	if flags.Changed("log-format") {
		out = append(out, session.Override{Key: config.KeyLogFormat, Value: a.logFormat})
	}
	return out, nil
}

// argv prepends the program name to the positional arguments
func (a *app) argv(args []string) []string {
	return append([]string{a.progName}, args...)
}
