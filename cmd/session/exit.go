package session

import (
	"errors"

	"github.com/ponyatov/kb/pkg/argecho"
	"github.com/ponyatov/kb/pkg/common/err"
	"github.com/ponyatov/kb/pkg/config"
)

// Process exit statuses
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
	// ExitMissingArguments is the status of a failed runtime assertion in
	// the tool kb replaces; scripts may already check for it.
	ExitMissingArguments = 101
)

// ExitError attaches an explicit exit status to an error
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to a process exit status
func ExitCode(e error) int {
	if e == nil {
		return ExitOK
	}

	var exitErr *ExitError
	switch {
	case errors.As(e, &exitErr):
		return exitErr.Code
	case argecho.IsMissingArguments(e):
		return ExitMissingArguments
	case config.IsInvalidValue(e), err.IsCode(e, config.CodeInvalidKeyErr):
		return ExitUsage
	default:
		return ExitFailure
	}
}
