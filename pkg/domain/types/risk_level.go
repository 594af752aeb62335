package types

// RiskLevel is the qualitative classification of a risk score
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// Lower bounds (inclusive) of each level on the 0-100 score scale. These are shared by the
// result classification and the per-iteration risk distribution split.
const (
	RiskThresholdMedium   = 30.0
	RiskThresholdHigh     = 60.0
	RiskThresholdCritical = 80.0
)

// AllRiskLevels returns all risk levels ordered from least to most severe
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLevelLow,
		RiskLevelMedium,
		RiskLevelHigh,
		RiskLevelCritical,
	}
}

// ClassifyRiskScore maps a 0-100 score to a RiskLevel
func ClassifyRiskScore(score float64) RiskLevel {
	switch {
	case score >= RiskThresholdCritical:
		return RiskLevelCritical
	case score >= RiskThresholdHigh:
		return RiskLevelHigh
	case score >= RiskThresholdMedium:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// IsValid checks if the risk level is valid
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelLow,
		RiskLevelMedium,
		RiskLevelHigh,
		RiskLevelCritical:
		return true
	default:
		return false
	}
}

// Label returns the display label used by dashboards and exports
func (l RiskLevel) Label() string {
	switch l {
	case RiskLevelLow:
		return "Low"
	case RiskLevelMedium:
		return "Medium"
	case RiskLevelHigh:
		return "High"
	case RiskLevelCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}
