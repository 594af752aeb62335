package model

import (
	"unicode/utf8"

	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// DefaultCoveragePercentage applies when a defense does not state its coverage
const DefaultCoveragePercentage = 100.0

// DefenseSystem mitigates a fraction of the loss caused by risk events
type DefenseSystem struct {
	ID          string            `json:"id,omitempty" toml:"id,omitempty"`
	Name        string            `json:"name" toml:"name"`
	Type        types.DefenseType `json:"type,omitempty" toml:"type,omitempty"`
	Description string            `json:"description,omitempty" toml:"description,omitempty"`

	// Effectiveness is the percentage (1-100) of raw impact mitigated
	Effectiveness float64 `json:"effectiveness" toml:"effectiveness"`
	Cost          float64 `json:"cost" toml:"cost"`

	CoveragePercentage float64 `json:"coverage_percentage,omitempty" toml:"coverage_percentage,omitempty"`
	MaintenanceCost    float64 `json:"maintenance_cost,omitempty" toml:"maintenance_cost,omitempty"`

	// ProtectedAssets restricts the defense to events threatening these assets. Empty means all.
	ProtectedAssets []string `json:"protected_assets,omitempty" toml:"protected_assets,omitempty"`
}

// Normalize fills defaults for omitted fields
func (d DefenseSystem) Normalize() DefenseSystem {
	if d.CoveragePercentage == 0 {
		d.CoveragePercentage = DefaultCoveragePercentage
	}
	if d.ProtectedAssets != nil {
		d.ProtectedAssets = append([]string(nil), d.ProtectedAssets...)
	}
	return d
}

// Mitigation returns the fraction (0-1] of loss this defense removes from the events it covers
func (d *DefenseSystem) Mitigation() float64 {
	return d.Effectiveness / 100 * d.CoveragePercentage / 100
}

// AnnualCost is the yearly outlay counted against the defense's benefit
func (d *DefenseSystem) AnnualCost() float64 {
	return d.Cost + d.MaintenanceCost
}

// Validate checks field ranges. It expects a normalized defense.
func (d *DefenseSystem) Validate() error {
	if d.Name == "" {
		return invalidField("name", d.Name, "defense system name is required")
	}
	if utf8.RuneCountInString(d.Name) > MaxNameLength {
		return invalidField("name", d.Name, "defense system name is too long")
	}
	if !d.Type.IsValid() {
		return invalidField("type", d.Type, "unknown defense system type")
	}
	if utf8.RuneCountInString(d.Description) > MaxDescriptionLength {
		return invalidField("description", len(d.Description), "defense system description is too long")
	}
	if !isFinite(d.Effectiveness) || d.Effectiveness < MinPercentage || d.Effectiveness > MaxPercentage {
		return invalidField("effectiveness", d.Effectiveness, "effectiveness must be between 1 and 100")
	}
	if !isFinite(d.Cost) || d.Cost <= 0 {
		return invalidField("cost", d.Cost, "defense cost must be positive")
	}
	if !isFinite(d.CoveragePercentage) || d.CoveragePercentage <= 0 || d.CoveragePercentage > MaxPercentage {
		return invalidField("coverage_percentage", d.CoveragePercentage, "coverage must be within (0, 100]")
	}
	if !isFinite(d.MaintenanceCost) || d.MaintenanceCost < 0 {
		return invalidField("maintenance_cost", d.MaintenanceCost, "maintenance cost must be non-negative")
	}
	return nil
}
