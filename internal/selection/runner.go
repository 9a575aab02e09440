package selection

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tkingovr/pfilter/api"
	"github.com/tkingovr/pfilter/internal/particle"
)

// Result is the outcome of one selection pass.
type Result struct {
	Total    int
	Kept     int
	Rejected int
	// Mask[i] reports whether record i was kept.
	Mask     []bool
	Duration time.Duration
}

// Runner evaluates a composed chain over a slice of particles in parallel
// batches. Each batch writes only its own range of the mask.
type Runner struct {
	chain     *particle.Chain
	workers   int
	batchSize int
	logger    *slog.Logger
}

// NewRunner creates a runner. Non-positive workers or batchSize fall back to 1
// and 4096.
func NewRunner(chain *particle.Chain, workers, batchSize int, logger *slog.Logger) (*Runner, error) {
	if chain == nil {
		return nil, errors.New("runner requires a chain")
	}
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 4096
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{chain: chain, workers: workers, batchSize: batchSize, logger: logger}, nil
}

// Run evaluates the chain for every particle. Cancellation is checked
// between batches.
func (r *Runner) Run(ctx context.Context, particles []api.Particle) (*Result, error) {
	start := time.Now()
	mask := make([]bool, len(particles))
	kept := make([]int, (len(particles)+r.batchSize-1)/r.batchSize)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for b := range kept {
		lo := b * r.batchSize
		hi := min(lo+r.batchSize, len(particles))
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n := 0
			for i := lo; i < hi; i++ {
				if r.chain.Keep(&particles[i]) {
					mask[i] = true
					n++
				}
			}
			kept[b] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Total: len(particles), Mask: mask, Duration: time.Since(start)}
	for _, n := range kept {
		res.Kept += n
	}
	res.Rejected = res.Total - res.Kept

	r.logger.Debug("selection pass finished",
		"total", res.Total,
		"kept", res.Kept,
		"batches", len(kept),
		"workers", r.workers,
		"duration", res.Duration,
	)
	return res, nil
}

// Select returns the kept particles in input order.
func (res *Result) Select(particles []api.Particle) []api.Particle {
	out := make([]api.Particle, 0, res.Kept)
	for i, keep := range res.Mask {
		if keep {
			out = append(out, particles[i])
		}
	}
	return out
}
