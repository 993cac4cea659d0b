// internal/cmdutil/flush.go
package cmdutil

import (
	"bufio"
	"fmt"
	"io"

	"melt/internal/writers"
)

// Exit codes shared by the commands.
const (
	ExitOK       = 0
	ExitFailure  = 1 // a calculation failed
	ExitUsage    = 2 // bad flags, config or conditions
	ExitIO       = 3 // reading inputs or writing results failed
	ExitCanceled = 130
)

// FlushCode flushes w and maps the outcome to an exit code: a closed pipe
// downstream is not an error, any other failure is reported on stderr.
func FlushCode(w *bufio.Writer, stderr io.Writer, code int) int {
	err := w.Flush()
	switch {
	case err == nil, writers.IsBrokenPipe(err):
		return code
	default:
		_, _ = fmt.Fprintln(stderr, err)
		return ExitIO
	}
}
