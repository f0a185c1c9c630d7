// Package session sets up configuration and logging for one invocation of
// kb or kbctl and runs the echo and demo components under them.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ponyatov/kb/cmd/ui"
	"github.com/ponyatov/kb/pkg/argecho"
	"github.com/ponyatov/kb/pkg/common/logger"
	"github.com/ponyatov/kb/pkg/config"
	"github.com/ponyatov/kb/pkg/numdemo"
)

// Override is a command-line level configuration value
type Override struct {
	Key   string
	Value string
}

// Options controls how a session is opened
type Options struct {
	Config config.Options

	// LogOutput receives log records. Nil means stderr.
	LogOutput io.Writer

	// Overrides are applied in order, so a later one wins.
	Overrides []Override
}

// Session is the resolved configuration and logger of one invocation
type Session struct {
	Config *config.Manager
	Typed  *config.TypedConfig
	Logger *slog.Logger
}

// Open loads configuration, applies overrides and builds the logger, which
// the returned context carries. Unreadable files and invalid file values
// are logged as warnings and otherwise ignored. Only a rejected override
// fails.
func Open(ctx context.Context, opts Options) (*Session, context.Context, error) {
	cfg := config.NewManager(opts.Config)
	loadErr := cfg.Load(ctx)

	for _, o := range opts.Overrides {
		if err := cfg.SetCommandLine(o.Key, o.Value); err != nil {
			return nil, ctx, err
		}
	}

	typed := config.NewTypedConfig(cfg)
	log := logger.New(logger.Config{
		Level:  typed.LogLevel(),
		Format: typed.LogFormat(),
		Output: opts.LogOutput,
	})

	for _, err := range unjoin(loadErr) {
		log.Warn("configuration file ignored", "error", err)
	}
	for _, err := range cfg.Problems() {
		log.Warn("configuration value ignored", "error", err)
	}
	log.Debug("configuration loaded",
		"demo", typed.DemoVariant().String(),
		"output", typed.OutputFormat())

	s := &Session{Config: cfg, Typed: typed, Logger: log}
	return s, logger.WithLogger(ctx, log), nil
}

// TableOutput reports whether output.format selects tables
func (s *Session) TableOutput() bool {
	return s.Typed.OutputFormat() == config.OutputTable
}

// Echo prints argv, program name first, as lines or a table
func (s *Session) Echo(ctx context.Context, w io.Writer, argv []string) error {
	if !s.TableOutput() {
		return argecho.Run(ctx, w, argv)
	}

	list, err := argecho.Capture(argv)
	if err != nil {
		return err
	}
	return ui.ArgumentsTable(w, list)
}

// Demo runs the configured demo variant
func (s *Session) Demo(ctx context.Context, w io.Writer) error {
	variant := s.Typed.DemoVariant()
	if !s.TableOutput() {
		return numdemo.Run(ctx, w, variant)
	}
	return ui.StepsTable(w, numdemo.Steps(variant))
}

// WithBufferedOut runs fn against a buffered out and flushes it even when
// fn fails, so lines written before the failure still appear.
func WithBufferedOut(out io.Writer, fn func(w io.Writer) error) error {
	bw := bufio.NewWriter(out)
	runErr := fn(bw)
	if err := bw.Flush(); err != nil && runErr == nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return runErr
}

func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
