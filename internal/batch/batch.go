// internal/batch/batch.go
package batch

import (
	"context"
	"runtime"
	"sync"
)

// Run streams jobs produced by feed through work on threads goroutines and
// hands each result to visit in feed order. threads < 1 means all CPUs.
//
// work must not fail the batch: encode per-job failures in R. The first
// error from visit or feed stops the run and is returned; cancellation of
// ctx returns ctx.Err().
func Run[J, R any](
	ctx context.Context,
	threads int,
	feed func(emit func(J) error) error,
	work func(context.Context, J) R,
	visit func(R) error,
) error {
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		seq int
		v   J
	}
	type result struct {
		seq int
		v   R
	}
	jobs := make(chan job, threads*2)
	results := make(chan result, threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					continue // drain
				}
				select {
				case results <- result{seq: j.seq, v: work(ctx, j.v)}:
				case <-ctx.Done():
				}
			}
		}()
	}

	// Collector: reorder by sequence number.
	var (
		cerr error
		done = make(chan struct{})
	)
	go func() {
		defer close(done)
		pending := make(map[int]R)
		next := 0
		for r := range results {
			if cerr != nil {
				continue
			}
			pending[r.seq] = r.v
			for {
				v, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if err := visit(v); err != nil {
					cerr = err
					cancel()
					break
				}
			}
		}
	}()

	// Feed work
	n := 0
	ferr := feed(func(v J) error {
		select {
		case jobs <- job{seq: n, v: v}:
			n++
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	close(jobs)
	wg.Wait()
	close(results)
	<-done

	switch {
	case cerr != nil:
		return cerr
	case parent.Err() != nil:
		return parent.Err()
	}
	return ferr
}
