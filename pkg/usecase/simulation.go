package usecase

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/service/analysis"
	"github.com/secmon-lab/riskquant/pkg/service/simulation"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
)

// SimulateOptions overrides the engine defaults for a single run. Zero values keep the
// defaults; a nil Seed draws a fresh one.
type SimulateOptions struct {
	Iterations int
	Seed       *uint64
	Workers    int
	Shape      types.ImpactShape
}

type SimulationUseCase struct {
	clock      func() time.Time
	recorder   interfaces.SimulationRecorder
	engineOpts []simulation.Option
}

func NewSimulationUseCase(clock func() time.Time, recorder interfaces.SimulationRecorder, engineOpts ...simulation.Option) *SimulationUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &SimulationUseCase{
		clock:      clock,
		recorder:   recorder,
		engineOpts: engineOpts,
	}
}

// Validate normalizes scenario and checks it can be simulated. The returned scenario has
// defaults applied and IDs assigned; the argument is not modified.
func (uc *SimulationUseCase) Validate(ctx context.Context, scenario *model.Scenario) (*model.Scenario, error) {
	if scenario == nil {
		return nil, goerr.Wrap(model.ErrValidation, "scenario is required")
	}

	normalized := scenario.Normalize()
	if err := normalized.Validate(); err != nil {
		return nil, goerr.Wrap(err, "scenario validation failed", goerr.V(ScenarioNameKey, scenario.Name))
	}
	if len(normalized.RiskEvents) == 0 {
		return nil, goerr.Wrap(model.ErrEmptyScenario, "scenario validation failed", goerr.V(ScenarioNameKey, scenario.Name))
	}

	logging.From(ctx).Debug("scenario validated",
		"scenario", normalized.Name,
		"components", normalized.Components(),
	)
	return normalized, nil
}

// Simulate validates scenario, runs the Monte Carlo engine and reduces the losses into a
// report. Invalid scenarios never reach the engine.
func (uc *SimulationUseCase) Simulate(ctx context.Context, scenario *model.Scenario, opts SimulateOptions) (*model.Report, error) {
	report, err := uc.simulate(ctx, scenario, opts)
	if err != nil {
		if uc.recorder != nil {
			uc.recorder.ObserveFailure(outcomeOf(err))
		}
		return nil, err
	}
	return report, nil
}

func (uc *SimulationUseCase) simulate(ctx context.Context, scenario *model.Scenario, opts SimulateOptions) (*model.Report, error) {
	if opts.Iterations < 0 {
		return nil, goerr.Wrap(model.ErrValidation, "iterations must not be negative",
			goerr.V(IterationsKey, opts.Iterations))
	}
	if opts.Shape != "" && !opts.Shape.IsValid() {
		return nil, goerr.Wrap(model.ErrValidation, "unknown impact shape",
			goerr.V(model.ValueKey, opts.Shape.String()))
	}

	normalized, err := uc.Validate(ctx, scenario)
	if err != nil {
		return nil, err
	}

	seed := rand.Uint64()
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	engine := simulation.New(uc.engineOptions(opts)...)
	started := time.Now()

	losses, err := engine.Run(ctx, normalized, seed)
	if err != nil {
		return nil, goerr.Wrap(err, "simulation failed",
			goerr.V(ScenarioNameKey, normalized.Name),
			goerr.V(IterationsKey, engine.Iterations()),
			goerr.V(SeedKey, seed))
	}
	elapsed := time.Since(started)

	result, detail := analysis.Aggregate(losses.WithDefenses, losses.WithoutDefenses, losses.Seed, normalized, uc.clock().UTC())

	if uc.recorder != nil {
		uc.recorder.ObserveSuccess(result.Iterations, elapsed, result.RiskScore)
	}

	logging.From(ctx).Info("simulation finished",
		"scenario", normalized.Name,
		"iterations", result.Iterations,
		"seed", seed,
		"expected_annual_loss", result.ExpectedAnnualLoss,
		"value_at_risk_95", result.ValueAtRisk95,
		"risk_score", result.RiskScore,
		"risk_level", result.RiskLevel(),
		"elapsed", elapsed,
	)

	return &model.Report{
		ScenarioName: normalized.Name,
		Result:       result,
		Detail:       detail,
	}, nil
}

func (uc *SimulationUseCase) engineOptions(opts SimulateOptions) []simulation.Option {
	out := append([]simulation.Option{}, uc.engineOpts...)
	if opts.Iterations > 0 {
		out = append(out, simulation.WithIterations(opts.Iterations))
	}
	if opts.Workers > 0 {
		out = append(out, simulation.WithWorkers(opts.Workers))
	}
	if opts.Shape != "" {
		out = append(out, simulation.WithImpactShape(opts.Shape))
	}
	return out
}
