package interfaces

import (
	"time"

	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// SimulationRecorder receives the outcome of every simulation run
type SimulationRecorder interface {
	// ObserveSuccess records a completed run
	ObserveSuccess(iterations int, elapsed time.Duration, riskScore float64)

	// ObserveFailure records a run that did not produce a result
	ObserveFailure(outcome types.RunOutcome)
}
