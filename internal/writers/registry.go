// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"melt/internal/batch"
)

// Options tune how a Sink renders reports.
type Options struct {
	Verbose bool // long text report
	Batch   bool // more than one report may follow
}

// Sink receives reports in order. Close flushes buffered output; summary is
// nil outside batch mode.
type Sink interface {
	Write(Report) error
	Close(summary *batch.Summary) error
}

// Sink registry (format → constructor). Register in init() blocks from the
// text/json/jsonl writer files.
var sinks = map[string]func(io.Writer, Options) Sink{}

// Register adds a format (idempotent last-wins).
func Register(format string, fn func(io.Writer, Options) Sink) { sinks[format] = fn }

// Open returns the Sink registered for format.
func Open(format string, w io.Writer, o Options) (Sink, error) {
	fn, ok := sinks[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, o), nil
}

// Formats lists the registered formats.
func Formats() []string {
	out := make([]string, 0, len(sinks))
	for f := range sinks {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
