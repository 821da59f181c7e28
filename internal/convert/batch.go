package convert

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Stats aggregates counters across one batch run.
type Stats struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Batch runs a set of jobs through the engine. Jobs are independent: one
// failing file never aborts the rest, and no ordering is guaranteed when
// Workers exceeds one.
type Batch struct {
	Engine  *Engine
	Workers int // Concurrent engine processes; values below 1 mean sequential.

	// OnResult, when set, is called once per finished job. Calls are
	// serialized even with concurrent workers.
	OnResult func(Result)
}

// Run checks the engine once, then executes every job and returns one
// Result per job in input order. Cancelling ctx terminates the running
// engine processes; started jobs clean up their partial output, unstarted
// jobs report the context error.
func (b *Batch) Run(ctx context.Context, jobs []Job) ([]Result, Stats, error) {
	if err := b.Engine.Check(); err != nil {
		return nil, Stats{}, err
	}

	workers := b.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(jobs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			var res Result
			if gctx.Err() != nil {
				res = Result{Job: job, Success: false, Err: gctx.Err()}
			} else {
				res = b.Engine.Run(gctx, job)
			}
			results[i] = res

			if b.OnResult != nil {
				mu.Lock()
				b.OnResult(res)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	stats := Stats{Total: len(jobs)}
	for _, res := range results {
		if res.Success {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
	}
	return results, stats, nil
}
