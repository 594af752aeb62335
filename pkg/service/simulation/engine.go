package simulation

import (
	"context"
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultIterations is used when no iteration count is configured
	DefaultIterations = 10000

	// MaxIterations bounds memory use; two float64 slices of this length are kept
	MaxIterations = 1_000_000

	// BatchSize is the number of iterations drawn from one random stream. Cancellation
	// is checked between batches.
	BatchSize = 1000
)

// Losses is the empirical loss distribution of one run. Index i of both slices is
// iteration i, drawn from the same samples.
type Losses struct {
	WithDefenses    []float64
	WithoutDefenses []float64
	Seed            uint64
}

// Engine runs Monte Carlo iterations of a scenario
type Engine struct {
	iterations int
	workers    int
	shape      types.ImpactShape

	batchDone func(b int)
}

type Option func(*Engine)

// WithIterations sets the number of iterations per run
func WithIterations(n int) Option {
	return func(e *Engine) {
		e.iterations = n
	}
}

// WithWorkers sets the number of goroutines drawing batches
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithImpactShape sets the impact distribution shape
func WithImpactShape(shape types.ImpactShape) Option {
	return func(e *Engine) {
		e.shape = shape
	}
}

// New creates an Engine. Non-positive iterations or workers fall back to defaults.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.iterations <= 0 {
		e.iterations = DefaultIterations
	}
	if e.workers <= 0 {
		e.workers = runtime.NumCPU()
	}
	e.shape = e.shape.Normalize()

	return e
}

// Iterations returns the configured iteration count
func (e *Engine) Iterations() int {
	return e.iterations
}

// Run simulates scenario for the configured number of iterations. Batch b draws from a
// stream derived from (seed, b) only, so the output does not depend on the worker count.
// The scenario must already be normalized and validated.
func (e *Engine) Run(ctx context.Context, scenario *model.Scenario, seed uint64) (*Losses, error) {
	if len(scenario.RiskEvents) == 0 {
		return nil, goerr.Wrap(model.ErrEmptyScenario, "cannot simulate scenario without risk events",
			goerr.V("scenario", scenario.Name))
	}
	for _, ev := range scenario.RiskEvents {
		if !(ev.Frequency > 0 && ev.Frequency <= model.MaxFrequency) {
			return nil, goerr.Wrap(model.ErrValidation, "frequency out of range",
				goerr.V(model.FieldKey, "frequency"),
				goerr.V(model.ValueKey, ev.Frequency),
				goerr.V("max", model.MaxFrequency))
		}
	}
	if e.iterations > MaxIterations {
		return nil, goerr.Wrap(model.ErrValidation, "too many iterations",
			goerr.V("iterations", e.iterations),
			goerr.V("max", MaxIterations))
	}

	logger := logging.From(ctx)
	started := time.Now()

	compositor := NewCompositor(scenario, NewSampler(e.shape))
	losses := &Losses{
		WithDefenses:    make([]float64, e.iterations),
		WithoutDefenses: make([]float64, e.iterations),
		Seed:            seed,
	}

	batches := (e.iterations + BatchSize - 1) / BatchSize
	workers := min(e.workers, batches)

	var next atomic.Int64
	var completed atomic.Int64

	eg, egCtx := errgroup.WithContext(ctx)
	for range workers {
		eg.Go(func() error {
			for {
				b := int(next.Add(1) - 1)
				if b >= batches {
					return nil
				}
				if err := egCtx.Err(); err != nil {
					return goerr.Wrap(model.ErrCancelled, "simulation cancelled",
						goerr.V("completed_batches", completed.Load()),
						goerr.V("total_batches", batches),
						goerr.V("cause", err.Error()))
				}

				rng := batchRand(seed, uint64(b))
				lo := b * BatchSize
				hi := min(lo+BatchSize, e.iterations)
				for i := lo; i < hi; i++ {
					losses.WithDefenses[i], losses.WithoutDefenses[i] = compositor.Iterate(rng)
				}
				completed.Add(1)
				if e.batchDone != nil {
					e.batchDone(b)
				}
			}
		})
	}

	if err := eg.Wait(); err != nil {
		logger.Warn("simulation aborted",
			"iterations", e.iterations,
			"completed_batches", completed.Load(),
			"error", err.Error(),
		)
		return nil, err
	}

	logger.Debug("simulation completed",
		"iterations", e.iterations,
		"batches", batches,
		"workers", workers,
		"seed", seed,
		"duration", time.Since(started),
	)

	return losses, nil
}

// batchRand returns the random stream for batch b of a run seeded with seed
func batchRand(seed, b uint64) *rand.Rand {
	s1 := splitmix64(seed ^ splitmix64(b))
	s2 := splitmix64(s1 ^ b)
	return rand.New(rand.NewPCG(s1, s2))
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
