package argecho

import (
	"fmt"

	"github.com/ponyatov/kb/pkg/common/err"
)

const (
	pkgName = "argecho"

	CodeMissingArguments = "MISSING_ARGUMENTS"
	CodeWriteFailed      = "WRITE_FAILED"
)

// EchoError is returned by Capture and Echo
type EchoError struct {
	base *err.Error
	Argc int // argument count seen, program name included
}

func newEchoError(op, code string, argc int, underlying error) *EchoError {
	return &EchoError{
		base: err.New(pkgName, code, op, "", underlying),
		Argc: argc,
	}
}

func (e *EchoError) Error() string {
	return fmt.Sprintf("%s [argc=%d]", e.base.Error(), e.Argc)
}

func (e *EchoError) Unwrap() error {
	return e.base
}

// Code returns the machine-readable code
func (e *EchoError) Code() string {
	return e.base.Code
}

var (
	// ErrMissingArguments means no argument followed the program name
	ErrMissingArguments = err.New(pkgName, CodeMissingArguments, "", "at least one argument is required after the program name", nil)

	// ErrWriteFailed means the output writer rejected a line
	ErrWriteFailed = err.New(pkgName, CodeWriteFailed, "", "writing output failed", nil)
)

// IsMissingArguments reports whether e is, or wraps, ErrMissingArguments
func IsMissingArguments(e error) bool {
	return err.IsCode(e, CodeMissingArguments)
}
