package model

import (
	"unicode/utf8"

	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// MinAssetValue is the smallest accepted asset value
const MinAssetValue = 1000.0

// BusinessAsset is something of value that risk events threaten
type BusinessAsset struct {
	ID          string            `json:"id,omitempty" toml:"id,omitempty"`
	Name        string            `json:"name" toml:"name"`
	Type        types.AssetType   `json:"type,omitempty" toml:"type,omitempty"`
	Value       float64           `json:"value" toml:"value"`
	Criticality types.Criticality `json:"criticality,omitempty" toml:"criticality,omitempty"`
	Location    string            `json:"location,omitempty" toml:"location,omitempty"`
}

// Normalize fills defaults for omitted fields
func (a BusinessAsset) Normalize() BusinessAsset {
	a.Criticality = a.Criticality.Normalize()
	return a
}

// Multiplier returns the impact multiplier of the asset's criticality
func (a *BusinessAsset) Multiplier() float64 {
	return a.Criticality.Multiplier()
}

// Validate checks field ranges. It expects a normalized asset.
func (a *BusinessAsset) Validate() error {
	if a.Name == "" {
		return invalidField("name", a.Name, "business asset name is required")
	}
	if utf8.RuneCountInString(a.Name) > MaxNameLength {
		return invalidField("name", a.Name, "business asset name is too long")
	}
	if !a.Type.IsValid() {
		return invalidField("type", a.Type, "unknown business asset type")
	}
	if !isFinite(a.Value) || a.Value < MinAssetValue {
		return invalidField("value", a.Value, "business asset value must be at least 1000")
	}
	if !a.Criticality.IsValid() {
		return invalidField("criticality", a.Criticality, "criticality must be low, medium or high")
	}
	return nil
}
