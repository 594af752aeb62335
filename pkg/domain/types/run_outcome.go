package types

// RunOutcome classifies how a simulation run ended
type RunOutcome string

const (
	RunOutcomeSuccess   RunOutcome = "success"
	RunOutcomeInvalid   RunOutcome = "invalid"
	RunOutcomeCancelled RunOutcome = "cancelled"
	RunOutcomeError     RunOutcome = "error"
)

// AllRunOutcomes returns all run outcomes
func AllRunOutcomes() []RunOutcome {
	return []RunOutcome{
		RunOutcomeSuccess,
		RunOutcomeInvalid,
		RunOutcomeCancelled,
		RunOutcomeError,
	}
}

// String returns the string representation of the run outcome
func (o RunOutcome) String() string {
	return string(o)
}
