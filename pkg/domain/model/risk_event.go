package model

import (
	"math"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500

	MinPercentage = 1.0
	MaxPercentage = 100.0

	DefaultFrequency = 1.0

	// MaxFrequency is the highest accepted expected occurrence count per year, a little
	// over once an hour
	MaxFrequency = 10_000.0
)

// RiskEvent is an adverse event that may cause a monetary loss within a simulated year
type RiskEvent struct {
	ID          string              `json:"id,omitempty" toml:"id,omitempty"`
	Name        string              `json:"name" toml:"name"`
	Type        types.RiskEventType `json:"type" toml:"type"`
	Description string              `json:"description,omitempty" toml:"description,omitempty"`

	// Probability is the percentage chance (1-100) of at least one occurrence per year
	Probability float64 `json:"probability" toml:"probability"`
	ImpactMin   float64 `json:"impact_min" toml:"impact_min"`
	ImpactMax   float64 `json:"impact_max" toml:"impact_max"`

	// Frequency is the expected number of occurrences per year. Above 1 the occurrence
	// count is Poisson distributed and Probability is not consulted.
	Frequency float64 `json:"frequency,omitempty" toml:"frequency,omitempty"`

	// TargetAssets lists the IDs of the business assets this event threatens
	TargetAssets []string `json:"target_assets,omitempty" toml:"target_assets,omitempty"`
}

// Normalize fills defaults for omitted fields
func (e RiskEvent) Normalize() RiskEvent {
	if e.Frequency == 0 {
		e.Frequency = DefaultFrequency
	}
	if e.TargetAssets != nil {
		e.TargetAssets = append([]string(nil), e.TargetAssets...)
	}
	return e
}

// Validate checks field ranges. It expects a normalized event.
func (e *RiskEvent) Validate() error {
	if e.Name == "" {
		return invalidField("name", e.Name, "risk event name is required")
	}
	if utf8.RuneCountInString(e.Name) > MaxNameLength {
		return invalidField("name", e.Name, "risk event name is too long")
	}
	if !e.Type.IsValid() {
		return invalidField("type", e.Type, "unknown risk event type")
	}
	if utf8.RuneCountInString(e.Description) > MaxDescriptionLength {
		return invalidField("description", len(e.Description), "risk event description is too long")
	}
	if !isFinite(e.Probability) || e.Probability < MinPercentage || e.Probability > MaxPercentage {
		return invalidField("probability", e.Probability, "probability must be between 1 and 100")
	}
	if !isFinite(e.ImpactMin) || e.ImpactMin < 0 {
		return invalidField("impact_min", e.ImpactMin, "impact_min must be non-negative")
	}
	if !isFinite(e.ImpactMax) || e.ImpactMax < 0 {
		return invalidField("impact_max", e.ImpactMax, "impact_max must be non-negative")
	}
	if e.ImpactMin > e.ImpactMax {
		return goerr.Wrap(ErrValidation, "impact_min must not exceed impact_max",
			goerr.V(FieldKey, "impact_min"),
			goerr.V("impact_min", e.ImpactMin),
			goerr.V("impact_max", e.ImpactMax))
	}
	if !isFinite(e.Frequency) || e.Frequency <= 0 {
		return invalidField("frequency", e.Frequency, "frequency must be positive")
	}
	if e.Frequency > MaxFrequency {
		return invalidField("frequency", e.Frequency, "frequency exceeds the maximum")
	}
	return nil
}

func invalidField(field string, value any, msg string) error {
	return goerr.Wrap(ErrValidation, msg,
		goerr.V(FieldKey, field),
		goerr.V(ValueKey, value))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
