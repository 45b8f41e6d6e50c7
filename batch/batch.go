package batch

import (
	"context"
	"log/slog"
	"sync"
)

// Result records the outcome of processing one document.
type Result struct {
	DocumentID string
	Err        error
}

// Runner executes a document-processing function across a worker pool.
type Runner struct {
	workers int
	log     *slog.Logger
}

// NewRunner creates a runner with the given worker count. A count below
// one is raised to one. The logger may be nil to disable progress logging.
func NewRunner(workers int, log *slog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{workers: workers, log: log}
}

// Run processes every document id with fn, at most workers at a time, and
// returns one Result per id in input order. Per-document errors are
// captured in the Results; they never stop sibling documents. When the
// context is cancelled, documents not yet dispatched are marked with the
// context's error and skipped.
func (r *Runner) Run(ctx context.Context, ids []string, fn func(ctx context.Context, id string) error) []Result {
	results := make([]Result, len(ids))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				id := ids[i]
				if err := ctx.Err(); err != nil {
					results[i] = Result{DocumentID: id, Err: err}
					continue
				}
				err := fn(ctx, id)
				results[i] = Result{DocumentID: id, Err: err}
				if err != nil {
					r.warn("document failed", "document", id, "error", err)
				} else {
					r.debug("document processed", "document", id)
				}
			}
		}()
	}

	for i := range ids {
		select {
		case <-ctx.Done():
			results[i] = Result{DocumentID: ids[i], Err: ctx.Err()}
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// Failed returns the results whose processing returned an error.
func Failed(results []Result) []Result {
	var failed []Result
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

func (r *Runner) warn(msg string, args ...any) {
	if r.log != nil {
		r.log.Warn(msg, args...)
	}
}

func (r *Runner) debug(msg string, args ...any) {
	if r.log != nil {
		r.log.Debug(msg, args...)
	}
}
