package config

import (
	"log/slog"
	"runtime"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/service/simulation"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Simulation holds CLI flags for Monte Carlo settings
type Simulation struct {
	iterations int
	seed       uint64
	workers    int
	shape      string
}

// Flags returns CLI flags for simulation configuration
func (s *Simulation) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "iterations",
			Aliases:     []string{"n"},
			Category:    "Simulation",
			Usage:       "Number of Monte Carlo iterations",
			Value:       simulation.DefaultIterations,
			Sources:     cli.EnvVars("RISKQUANT_ITERATIONS"),
			Destination: &s.iterations,
		},
		&cli.Uint64Flag{
			Name:        "seed",
			Category:    "Simulation",
			Usage:       "Random seed for reproducible runs (random if not set)",
			Sources:     cli.EnvVars("RISKQUANT_SEED"),
			Destination: &s.seed,
		},
		&cli.IntFlag{
			Name:        "workers",
			Category:    "Simulation",
			Usage:       "Number of worker goroutines (0 means number of CPUs)",
			Sources:     cli.EnvVars("RISKQUANT_WORKERS"),
			Destination: &s.workers,
		},
		&cli.StringFlag{
			Name:        "impact-shape",
			Category:    "Simulation",
			Usage:       "Impact distribution within [impact_min, impact_max] (uniform, triangular)",
			Value:       string(types.ImpactShapeUniform),
			Sources:     cli.EnvVars("RISKQUANT_IMPACT_SHAPE"),
			Destination: &s.shape,
		},
	}
}

// LogAttrs returns log attributes for the simulation configuration
func (s *Simulation) LogAttrs() []slog.Attr {
	workers := s.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return []slog.Attr{
		slog.Int("iterations", s.iterations),
		slog.Int("workers", workers),
		slog.String("impact_shape", s.shape),
	}
}

// EngineOptions returns the engine defaults for long running servers
func (s *Simulation) EngineOptions() ([]simulation.Option, error) {
	shape, err := types.ParseImpactShape(s.shape)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidImpactShape, err.Error())
	}
	return []simulation.Option{
		simulation.WithIterations(s.iterations),
		simulation.WithWorkers(s.workers),
		simulation.WithImpactShape(shape),
	}, nil
}

// Configure returns the per-run options. The seed is only fixed when the flag or its
// environment variable was given.
func (s *Simulation) Configure(c *cli.Command) (usecase.SimulateOptions, error) {
	shape, err := types.ParseImpactShape(s.shape)
	if err != nil {
		return usecase.SimulateOptions{}, goerr.Wrap(ErrInvalidImpactShape, err.Error())
	}

	opts := usecase.SimulateOptions{
		Iterations: s.iterations,
		Workers:    s.workers,
		Shape:      shape,
	}
	if c.IsSet("seed") {
		seed := s.seed
		opts.Seed = &seed
	}
	return opts, nil
}
