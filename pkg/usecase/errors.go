package usecase

import (
	"errors"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// Context keys for error values
const (
	ScenarioNameKey = "scenario_name"
	IterationsKey   = "iterations"
	SeedKey         = "seed"
)

// IsClientError reports whether err was caused by the submitted scenario or options
// rather than by the engine
func IsClientError(err error) bool {
	return errors.Is(err, model.ErrValidation) || errors.Is(err, model.ErrEmptyScenario)
}

// outcomeOf maps a run error to its metrics outcome label
func outcomeOf(err error) types.RunOutcome {
	switch {
	case err == nil:
		return types.RunOutcomeSuccess
	case errors.Is(err, model.ErrCancelled):
		return types.RunOutcomeCancelled
	case IsClientError(err):
		return types.RunOutcomeInvalid
	default:
		return types.RunOutcomeError
	}
}
