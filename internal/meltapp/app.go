// internal/meltapp/app.go
package meltapp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"melt-core/fasta"
	"melt-core/nnparam"
	"melt-core/oligo"
	"melt-core/thermo"

	"melt/internal/batch"
	"melt/internal/cmdutil"
	"melt/internal/meltcli"
	"melt/internal/paramstore"
	"melt/internal/writers"
)

// App carries the process-level dependencies; tests replace them.
type App struct {
	Stdin  io.Reader
	Now    func() time.Time
	Store  *paramstore.Store
	Create func(name string) (io.WriteCloser, error) // --out-file; os.Create when nil
}

// RunContext is the melt entry point used by cmd/melt.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	a := App{Stdin: os.Stdin, Now: time.Now, Store: paramstore.New()}
	return a.Run(parent, argv, stdout, stderr)
}

// Run parses argv and executes the command, returning the exit code.
func (a App) Run(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	if a.Store == nil {
		a.Store = paramstore.New()
	}
	if a.Now == nil {
		a.Now = time.Now
	}

	code := cmdutil.ExitOK
	root := meltcli.NewRootCommand(viper.New(), func(cmd *cobra.Command, o meltcli.Options) error {
		code = a.execute(cmd.Context(), o, outw, stderr)
		return nil
	})
	root.SetOut(outw)
	root.SetErr(stderr)
	if len(argv) == 0 {
		argv = []string{"--help"}
	}
	root.SetArgs(argv)

	if err := root.ExecuteContext(parent); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		_, _ = fmt.Fprintln(stderr, "Run 'melt --help' for usage.")
		return cmdutil.FlushCode(outw, stderr, cmdutil.ExitUsage)
	}
	return cmdutil.FlushCode(outw, stderr, code)
}

func (a App) execute(ctx context.Context, o meltcli.Options, stdout *bufio.Writer, stderr io.Writer) int {
	c, err := o.Context()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return cmdutil.ExitUsage
	}
	tables, err := a.loadTables(o, c.Hybrid)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		var pe *fs.PathError
		if errors.As(err, &pe) {
			return cmdutil.ExitIO
		}
		return cmdutil.ExitUsage
	}

	var dst io.Writer = stdout
	var (
		file io.WriteCloser
		fw   *bufio.Writer
	)
	name := o.OutFileName(a.Now())
	if name != "" {
		create := a.Create
		if create == nil {
			create = func(n string) (io.WriteCloser, error) { return os.Create(n) }
		}
		if file, err = create(name); err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", err)
			return cmdutil.ExitIO
		}
		fw = bufio.NewWriter(file)
		dst = fw
	}

	sink, err := writers.Open(o.Output, dst, writers.Options{Verbose: o.Verbose, Batch: o.IsBatch()})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		if file != nil {
			_ = file.Close()
		}
		return cmdutil.ExitUsage
	}
	var code int
	if o.IsBatch() {
		code = a.runBatch(ctx, o, c, tables, sink, stderr)
	} else {
		code = runSingle(o, c, tables, sink, stderr)
	}
	if file == nil {
		return code
	}

	code = cmdutil.FlushCode(fw, stderr, code)
	if err := file.Close(); err != nil && code != cmdutil.ExitIO {
		_, _ = fmt.Fprintln(stderr, err)
		code = cmdutil.ExitIO
	}
	if code != cmdutil.ExitIO && !o.Quiet {
		_, _ = fmt.Fprintf(stderr, "results written to %s\n", name)
	}
	return code
}

// loadTables starts from the built-in tables for h and swaps in the
// alternates named by the options.
func (a App) loadTables(o meltcli.Options, h thermo.Hybridization) (thermo.Tables, error) {
	t, err := thermo.LoadTables(a.Store, h)
	if err != nil {
		return t, err
	}
	alt := func(name string, kind nnparam.Kind, dst **nnparam.Table) (bool, error) {
		if name == "" {
			return false, nil
		}
		tb, err := a.Store.Resolve(name, kind)
		if err != nil {
			return false, err
		}
		*dst = tb
		def, _ := paramstore.DefaultName(kind, h)
		return name != def, nil
	}
	if _, err := alt(o.NNFile, nnparam.KindNN, &t.NN); err != nil {
		return t, err
	}
	if t.CustomMismatch, err = alt(o.MismatchFile, nnparam.KindMismatch, &t.Mismatch); err != nil {
		return t, err
	}
	if t.CustomDanglingEnd, err = alt(o.DanglingFile, nnparam.KindDanglingEnd, &t.DanglingEnd); err != nil {
		return t, err
	}
	return t, nil
}

// compute runs one calculation, building the complement when none is given.
func compute(c thermo.Context, t thermo.Tables, id, seq, comp string) writers.Report {
	rep := writers.Report{ID: id, Sequence: seq, Complement: comp, Context: c, Tables: t}
	if comp == "" {
		built, err := oligo.Complement(oligo.Normalize(seq))
		if err != nil {
			rep.Err = fmt.Errorf("%w: %v", thermo.ErrValidation, err)
			return rep
		}
		rep.Complement = built
	}
	rep.Result, rep.Err = thermo.Compute(c, rep.Sequence, rep.Complement, t)
	return rep
}

func warnReport(stderr io.Writer, quiet bool, rep writers.Report) {
	for _, w := range rep.Result.Warnings {
		if rep.ID != "" {
			cmdutil.Warnf(stderr, quiet, "%s: %s", rep.ID, w)
			continue
		}
		cmdutil.Warnf(stderr, quiet, "%s", w)
	}
}

func runSingle(o meltcli.Options, c thermo.Context, t thermo.Tables, sink writers.Sink, stderr io.Writer) int {
	rep := compute(c, t, "", o.Sequence, o.Complement)
	warnReport(stderr, o.Quiet, rep)

	code := cmdutil.ExitOK
	if rep.Err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", rep.Err)
		code = cmdutil.ExitFailure
	}
	if err := sink.Write(rep); err != nil && !writers.IsBrokenPipe(err) {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitIO
	}
	if err := sink.Close(nil); err != nil && !writers.IsBrokenPipe(err) {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitIO
	}
	return code
}

type job struct {
	id, seq string
}

// inputError marks failures reading batch input.
type inputError struct{ err error }

func (e inputError) Error() string { return e.err.Error() }
func (e inputError) Unwrap() error { return e.err }

func (a App) runBatch(ctx context.Context, o meltcli.Options, c thermo.Context, t thermo.Tables, sink writers.Sink, stderr io.Writer) int {
	var (
		tms         []float64
		failed      int
		approximate int
	)
	feed := func(emit func(job) error) error {
		fromFASTA := func(rec fasta.Record) error { return emit(job{id: rec.ID, seq: rec.Seq}) }
		if o.Batch {
			return a.feedLines(ctx, emit)
		}
		for _, p := range o.Inputs {
			var err error
			if p == "-" {
				err = fasta.ForEachRecord(ctx, a.Stdin, fromFASTA)
			} else {
				err = fasta.ForEachRecordPath(ctx, p, fromFASTA)
			}
			if err != nil {
				return inputError{fmt.Errorf("%s: %w", p, err)}
			}
		}
		return nil
	}
	work := func(_ context.Context, j job) writers.Report {
		return compute(c, t, j.id, j.seq, "")
	}
	visit := func(rep writers.Report) error {
		warnReport(stderr, o.Quiet, rep)
		switch {
		case rep.Err != nil:
			failed++
			label := rep.ID
			if label == "" {
				label = rep.Sequence
			}
			cmdutil.Warnf(stderr, o.Quiet, "%s: %v", label, rep.Err)
		case rep.Result.Approximate:
			approximate++
			tms = append(tms, rep.Result.TmC)
		default:
			tms = append(tms, rep.Result.TmC)
		}
		return sink.Write(rep)
	}

	err := batch.Run(ctx, o.Threads, feed, work, visit)
	var ie inputError
	switch {
	case err == nil, writers.IsBrokenPipe(err):
	case errors.Is(err, context.Canceled):
		_ = sink.Close(nil)
		return cmdutil.ExitCanceled
	case errors.As(err, &ie):
		_ = sink.Close(nil)
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return cmdutil.ExitIO
	default:
		_ = sink.Close(nil)
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitIO
	}

	sum := batch.Summarize(tms, failed, approximate)
	if err := sink.Close(&sum); err != nil && !writers.IsBrokenPipe(err) {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitIO
	}
	if failed > 0 {
		return cmdutil.ExitFailure
	}
	return cmdutil.ExitOK
}

// feedLines reads one sequence per stdin line. A line may carry an ID
// before the sequence; blank lines and '#' comments are skipped.
func (a App) feedLines(ctx context.Context, emit func(job) error) error {
	sc := bufio.NewScanner(a.Stdin)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		j := job{seq: line}
		if f := strings.Fields(line); len(f) == 2 {
			j = job{id: f[0], seq: f[1]}
		}
		if err := emit(j); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return inputError{fmt.Errorf("stdin: %w", err)}
	}
	return nil
}
