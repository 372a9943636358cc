package condition

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ja7ad/cutcond/pkg/catalog"
)

// Job is one evaluation of a batch.
type Job struct {
	ID     string
	Tool   catalog.Tool
	Params Params
}

// Outcome pairs a job with its result or its domain error.
type Outcome struct {
	Job    Job
	Result Result
	Err    error
}

// EvaluateAll evaluates jobs concurrently with at most workers in flight.
// Outcomes are in job order. A per-job domain error is recorded in its Outcome
// and does not stop the batch; only cancellation of ctx does.
func EvaluateAll(ctx context.Context, jobs []Job, m Machine, lim Limits, workers int) ([]Outcome, error) {
	if workers < 1 {
		workers = 1
	}

	out := make([]Outcome, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := Evaluate(j.Params, j.Tool, m, lim)
			out[i] = Outcome{Job: j, Result: r, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
