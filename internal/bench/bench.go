// Package bench hammers a generator from many goroutines and checks the
// results for duplicates and per-worker ordering.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/yudaprama/timeid/internal/idgenerator"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Generator is the part of IDGenerator a run needs.
type Generator interface {
	Generate() idgenerator.ID
	Stats() idgenerator.Stats
}

// Result summarizes a run.
type Result struct {
	Workers   int
	PerWorker int
	Total     int
	Unique    int
	Elapsed   time.Duration
	Stats     idgenerator.Stats
}

// Rate returns ids per second.
func (r Result) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Total) / r.Elapsed.Seconds()
}

// Run generates workers*perWorker ids concurrently. It fails if any worker
// sees an id not greater than its previous one, or if two ids collide.
func Run(ctx context.Context, g Generator, workers, perWorker int, lg *zap.Logger) (Result, error) {
	if workers <= 0 || perWorker <= 0 {
		return Result{}, fmt.Errorf("bench: workers and per-worker must be positive, got %d and %d", workers, perWorker)
	}
	if lg == nil {
		lg = zap.NewNop()
	}

	batches := make([][]idgenerator.ID, workers)
	before := g.Stats()
	start := time.Now()

	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		eg.Go(func() error {
			ids := make([]idgenerator.ID, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				id := g.Generate()
				if n := len(ids); n > 0 && id <= ids[n-1] {
					return fmt.Errorf("worker %d: id %s not after %s", w, id, ids[n-1])
				}
				ids = append(ids, id)
			}
			batches[w] = ids
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	seen := make(map[idgenerator.ID]struct{}, workers*perWorker)
	for _, ids := range batches {
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				return Result{}, fmt.Errorf("duplicate id %s", id)
			}
			seen[id] = struct{}{}
		}
	}

	after := g.Stats()
	res := Result{
		Workers:   workers,
		PerWorker: perWorker,
		Total:     workers * perWorker,
		Unique:    len(seen),
		Elapsed:   elapsed,
		Stats: idgenerator.Stats{
			Generated:   after.Generated - before.Generated,
			Overflows:   after.Overflows - before.Overflows,
			Regressions: after.Regressions - before.Regressions,
			WaitTime:    after.WaitTime - before.WaitTime,
		},
	}
	lg.Info("bench finished",
		zap.Int("total", res.Total),
		zap.Duration("elapsed", res.Elapsed),
		zap.Float64("ids_per_sec", res.Rate()),
		zap.Uint64("overflows", res.Stats.Overflows))
	return res, nil
}
