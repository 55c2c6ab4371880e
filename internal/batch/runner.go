// Package batch applies per-file tasks across many documents with a bounded worker pool.
package batch

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/metcalfc/mdtoc/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Task processes one file. A returned error marks the file failed; it never
// stops the rest of the batch.
type Task func(ctx context.Context, path string) (FileResult, error)

// Runner fans tasks out over a fixed number of workers.
type Runner struct {
	Workers int
	Log     *logger.Logger
	// OnResult, when set, is called once per finished file from the worker goroutine.
	OnResult func(FileResult)
}

// Run applies task to every path. Results come back sorted by path. Cancelling
// ctx stops new files from starting; files already running finish.
func (r *Runner) Run(ctx context.Context, paths []string, task Task) ([]FileResult, Summary) {
	start := time.Now()
	log := r.Log
	if log == nil {
		log = logger.Nop()
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		mu      sync.Mutex
		results = make([]FileResult, 0, len(paths))
	)
	record := func(res FileResult) {
		mu.Lock()
		results = append(results, res)
		mu.Unlock()
		if r.OnResult != nil {
			r.OnResult(res)
		}
	}

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, path := range paths {
		path := path
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			t0 := time.Now()
			res, err := task(ctx, path)
			res.Path = path
			res.Duration = time.Since(t0)
			if err != nil {
				res.Action = ActionFailed
				res.Err = err
				res.Detail = err.Error()
				log.Error("file failed", zap.String("path", path), zap.Error(err))
			} else {
				log.Debug("file done",
					zap.String("path", path),
					zap.Stringer("action", res.Action),
					zap.Duration("took", res.Duration))
			}
			record(res)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	var sum Summary
	for _, res := range results {
		sum.add(res)
	}
	sum.Elapsed = time.Since(start)
	return results, sum
}
