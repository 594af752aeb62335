package types

import "fmt"

// RiskEventType represents the kind of adverse event a RiskEvent models
type RiskEventType string

const (
	RiskEventTypeCyberAttack      RiskEventType = "cyber_attack"
	RiskEventTypeSupplyDisruption RiskEventType = "supply_disruption"
	RiskEventTypeOperationalRisk  RiskEventType = "operational_risk"
	RiskEventTypeLegalAction      RiskEventType = "legal_action"
)

// AllRiskEventTypes returns all valid risk event types
func AllRiskEventTypes() []RiskEventType {
	return []RiskEventType{
		RiskEventTypeCyberAttack,
		RiskEventTypeSupplyDisruption,
		RiskEventTypeOperationalRisk,
		RiskEventTypeLegalAction,
	}
}

// IsValid checks if the risk event type is valid
func (t RiskEventType) IsValid() bool {
	switch t {
	case RiskEventTypeCyberAttack,
		RiskEventTypeSupplyDisruption,
		RiskEventTypeOperationalRisk,
		RiskEventTypeLegalAction:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk event type
func (t RiskEventType) String() string {
	return string(t)
}

// ParseRiskEventType parses a string into a RiskEventType
func ParseRiskEventType(s string) (RiskEventType, error) {
	t := RiskEventType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid risk event type: %s", s)
	}
	return t, nil
}
