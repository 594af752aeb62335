package types

import "fmt"

// Criticality represents the business importance of an asset
type Criticality string

const (
	CriticalityLow    Criticality = "low"
	CriticalityMedium Criticality = "medium"
	CriticalityHigh   Criticality = "high"
)

// Impact multipliers applied to a risk event's raw loss per criticality level
const (
	MultiplierLow    = 0.25
	MultiplierMedium = 0.60
	MultiplierHigh   = 1.00
)

// AllCriticalities returns all valid criticality levels
func AllCriticalities() []Criticality {
	return []Criticality{
		CriticalityLow,
		CriticalityMedium,
		CriticalityHigh,
	}
}

// IsValid checks if the criticality is valid
func (c Criticality) IsValid() bool {
	switch c {
	case CriticalityLow,
		CriticalityMedium,
		CriticalityHigh:
		return true
	default:
		return false
	}
}

// Normalize returns the criticality, treating empty as CriticalityMedium.
func (c Criticality) Normalize() Criticality {
	if c == "" {
		return CriticalityMedium
	}
	return c
}

// Multiplier returns the impact multiplier of the criticality level.
// Unknown levels return 0; callers validate before simulating.
func (c Criticality) Multiplier() float64 {
	switch c.Normalize() {
	case CriticalityLow:
		return MultiplierLow
	case CriticalityMedium:
		return MultiplierMedium
	case CriticalityHigh:
		return MultiplierHigh
	default:
		return 0
	}
}

// String returns the string representation of the criticality
func (c Criticality) String() string {
	return string(c)
}

// ParseCriticality parses a string into a Criticality
func ParseCriticality(s string) (Criticality, error) {
	c := Criticality(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid criticality: %s", s)
	}
	return c, nil
}
