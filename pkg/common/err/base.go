// Package err is the shared error type for every kb package.
//
// Packages embed or wrap *Error and define their own codes in
// UPPER_SNAKE_CASE next to the shared ones below:
//
//	const (
//	    pkgName           = "argecho"
//	    CodeWriteFailed   = "WRITE_FAILED"
//	)
//
//	if err.IsCode(e, CodeWriteFailed) { ... }
package err

import (
	"errors"
	"strings"
)

// Error carries the originating package, a machine-readable code, the
// operation that failed and an optional wrapped cause.
type Error struct {
	// Package is the originating package, e.g. "argecho" or "config".
	Package string

	// Code categorizes the failure. Two errors with the same non-empty
	// code match under errors.Is.
	Code string

	// Op is the operation being performed, e.g. "capture" or "load".
	Op string

	// Message is a short human-readable explanation.
	Message string

	// Err is the wrapped cause. Nil for leaf errors.
	Err error

	// Context holds optional structured fields, allocated on first use.
	Context map[string]any
}

// Error formats as [package][code] op: message: cause
func (e *Error) Error() string {
	var parts []string

	var prefix strings.Builder
	if e.Package != "" {
		prefix.WriteString("[" + e.Package + "]")
	}
	if e.Code != "" {
		prefix.WriteString("[" + e.Code + "]")
	}
	if prefix.Len() > 0 {
		parts = append(parts, prefix.String())
	}
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, ": ")
	if e.Err != nil {
		if result != "" {
			return result + ": " + e.Err.Error()
		}
		return e.Err.Error()
	}
	return result
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithContext records a key-value pair and returns e for chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// GetContext returns the value stored under key, or nil.
func (e *Error) GetContext(key string) any {
	if e.Context == nil {
		return nil
	}
	return e.Context[key]
}

// New creates a base error.
func New(pkg, code, op, message string, err error) *Error {
	return &Error{
		Package: pkg,
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Wrap adds package and operation context to err. Returns nil if err is nil.
func Wrap(err error, pkg, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Package: pkg, Op: op, Err: err}
}

// WrapWithCode is Wrap with a code. Returns nil if err is nil.
func WrapWithCode(err error, pkg, code, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Package: pkg, Code: code, Op: op, Err: err}
}

// Shared codes. Packages add their own where these don't fit.
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeInternal      = "INTERNAL"
	CodeValidation    = "VALIDATION"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeReadOnly      = "READ_ONLY"
	CodeIO            = "IO"
)

// IsCode reports whether any *Error in err's chain carries code.
func IsCode(err error, code string) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		if e.Err == nil {
			return false
		}
		err = e.Err
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain.
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetPackage returns the package of the first *Error in err's chain.
func GetPackage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Package
	}
	return ""
}

// GetOp returns the operation of the first *Error in err's chain.
func GetOp(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}
