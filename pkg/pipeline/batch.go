package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one export in a batch. Exactly one of Result
// and Err is set.
type Outcome struct {
	Input  string
	Result *Result
	Err    error
}

// ExportAll runs every export with at most jobs in flight (DefaultJobs
// when jobs <= 0). A failing design does not stop the others; its error is
// reported in its Outcome. Outcomes are in the order of batch. The returned
// error is only set when ctx is cancelled.
func (r *Runner) ExportAll(ctx context.Context, batch []Options, jobs int) ([]Outcome, error) {
	return r.ExportAllProgress(ctx, batch, jobs, nil)
}

// ExportAllProgress is ExportAll with a callback invoked after each export
// finishes, successful or not. Calls are serialized.
func (r *Runner) ExportAllProgress(ctx context.Context, batch []Options, jobs int, progress func(done, total int)) ([]Outcome, error) {
	if jobs <= 0 {
		jobs = DefaultJobs
	}
	outcomes := make([]Outcome, len(batch))

	var mu sync.Mutex
	finished := 0
	report := func() {
		if progress == nil {
			return
		}
		mu.Lock()
		finished++
		progress(finished, len(batch))
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, opts := range batch {
		outcomes[i].Input = opts.Input
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i].Err = err
				return err
			}
			res, err := r.Execute(gctx, opts)
			outcomes[i].Result = res
			outcomes[i].Err = err
			report()
			if err != nil {
				r.Logger.Debug("export failed", "input", opts.Input, "err", err)
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, ctx.Err()
}

// Failed counts the outcomes that carry an error.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
