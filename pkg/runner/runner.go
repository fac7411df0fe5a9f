// Package runner orchestrates processing several man pages in one run.
// Every document gets a fresh parser; nothing of the per-document state
// is shared between workers.
package runner

import (
	"context"
	"runtime"
	"sync"
)

// ProcessFunc handles one document and returns its outcome. It must
// build all per-document state itself.
type ProcessFunc func(ctx context.Context, path string) DocOutcome

// Runner fans documents out over a bounded worker pool.
type Runner struct {
	Process ProcessFunc
}

// New creates a Runner with the given per-document function.
func New(process ProcessFunc) *Runner {
	return &Runner{Process: process}
}

// Run discovers documents under opts.Paths and processes them
// concurrently, returning outcomes in deterministic (discovery) order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	result.Stats.DocsDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan DocOutcome)

	var wg sync.WaitGroup
	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				select {
				case <-ctx.Done():
					return
				case outCh <- r.Process(ctx, path):
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; reassemble along the discovery
	// order.
	outcomes := make(map[string]DocOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}
