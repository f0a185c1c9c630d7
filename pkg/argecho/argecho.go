// Package argecho prints a process's invocation arguments, one per line,
// next to their zero-based position.
//
// The argument list is always handed in by the caller; nothing here reads
// os.Args.
package argecho

import (
	"context"
	"fmt"
	"io"

	"github.com/ponyatov/kb/pkg/common/logger"
)

// MinArgs is the smallest accepted argument count, program name included.
const MinArgs = 2

// ArgumentList is an immutable, ordered snapshot of invocation arguments.
// Element 0 is the program name.
type ArgumentList struct {
	args []string
}

// Capture snapshots args. It fails with ErrMissingArguments unless at least
// one argument follows the program name.
func Capture(args []string) (ArgumentList, error) {
	if len(args) < MinArgs {
		return ArgumentList{}, newEchoError("capture", CodeMissingArguments, len(args), ErrMissingArguments)
	}

	snapshot := make([]string, len(args))
	copy(snapshot, args)
	return ArgumentList{args: snapshot}, nil
}

// Len returns the argument count, program name included.
func (l ArgumentList) Len() int {
	return len(l.args)
}

// At returns the argument at index i. It panics if i is out of range.
func (l ArgumentList) At(i int) string {
	return l.args[i]
}

// Program returns argv[0].
func (l ArgumentList) Program() string {
	if len(l.args) == 0 {
		return ""
	}
	return l.args[0]
}

// UserArgs returns a copy of the arguments after the program name.
func (l ArgumentList) UserArgs() []string {
	if len(l.args) < 2 {
		return []string{}
	}
	out := make([]string, len(l.args)-1)
	copy(out, l.args[1:])
	return out
}

// All returns a copy of every argument.
func (l ArgumentList) All() []string {
	out := make([]string, len(l.args))
	copy(out, l.args)
	return out
}

// FormatLine renders one echo line: argv[<index>] = "<arg>".
// The argument is quoted with Go's %q, so quotes, control characters and
// invalid UTF-8 come out escaped.
func FormatLine(index int, arg string) string {
	return fmt.Sprintf("argv[%d] = %q", index, arg)
}

// Echo writes one FormatLine per argument, in order.
func Echo(w io.Writer, list ArgumentList) error {
	for i, arg := range list.args {
		if _, err := fmt.Fprintln(w, FormatLine(i, arg)); err != nil {
			return newEchoError("echo", CodeWriteFailed, list.Len(), fmt.Errorf("%w: %w", ErrWriteFailed, err))
		}
	}
	return nil
}

// Run captures args and echoes them to w. Nothing is written when capture
// fails.
func Run(ctx context.Context, w io.Writer, args []string) error {
	log := logger.FromContext(ctx)

	list, err := Capture(args)
	if err != nil {
		log.Debug("argument capture failed", "argc", len(args))
		return err
	}
	log.Debug("captured arguments", "count", list.Len())

	return Echo(w, list)
}
