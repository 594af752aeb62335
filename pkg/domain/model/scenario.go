package model

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// Scenario is the unit submitted to the simulation engine
type Scenario struct {
	Name           string          `json:"name,omitempty" toml:"name,omitempty"`
	RiskEvents     []RiskEvent     `json:"risk_events" toml:"risk_events"`
	BusinessAssets []BusinessAsset `json:"business_assets" toml:"business_assets"`
	DefenseSystems []DefenseSystem `json:"defense_systems" toml:"defense_systems"`
}

// Normalize returns a deep copy with defaults applied and a fresh UUID assigned to every
// entity that has no ID. The receiver is not modified.
func (s *Scenario) Normalize() *Scenario {
	out := &Scenario{
		Name:           s.Name,
		RiskEvents:     make([]RiskEvent, len(s.RiskEvents)),
		BusinessAssets: make([]BusinessAsset, len(s.BusinessAssets)),
		DefenseSystems: make([]DefenseSystem, len(s.DefenseSystems)),
	}

	for i, e := range s.RiskEvents {
		out.RiskEvents[i] = e.Normalize()
		if out.RiskEvents[i].ID == "" {
			out.RiskEvents[i].ID = uuid.NewString()
		}
	}
	for i, a := range s.BusinessAssets {
		out.BusinessAssets[i] = a.Normalize()
		if out.BusinessAssets[i].ID == "" {
			out.BusinessAssets[i].ID = uuid.NewString()
		}
	}
	for i, d := range s.DefenseSystems {
		out.DefenseSystems[i] = d.Normalize()
		if out.DefenseSystems[i].ID == "" {
			out.DefenseSystems[i].ID = uuid.NewString()
		}
	}

	return out
}

// Validate checks every entity, ID uniqueness within each list and asset references.
// It does not reject a scenario without risk events; see ErrEmptyScenario.
func (s *Scenario) Validate() error {
	assetIDs := make(map[string]bool, len(s.BusinessAssets))
	for i := range s.BusinessAssets {
		a := &s.BusinessAssets[i]
		if err := a.Validate(); err != nil {
			return wrapEntity(err, EntityBusinessAsset, i, a.ID)
		}
		if a.ID != "" {
			if assetIDs[a.ID] {
				return duplicateID(EntityBusinessAsset, i, a.ID)
			}
			assetIDs[a.ID] = true
		}
	}

	eventIDs := make(map[string]bool, len(s.RiskEvents))
	for i := range s.RiskEvents {
		e := &s.RiskEvents[i]
		if err := e.Validate(); err != nil {
			return wrapEntity(err, EntityRiskEvent, i, e.ID)
		}
		if e.ID != "" {
			if eventIDs[e.ID] {
				return duplicateID(EntityRiskEvent, i, e.ID)
			}
			eventIDs[e.ID] = true
		}
		for _, target := range e.TargetAssets {
			if !assetIDs[target] {
				return goerr.Wrap(ErrValidation, "risk event targets an unknown asset",
					goerr.V(EntityKey, EntityRiskEvent),
					goerr.V(IndexKey, i),
					goerr.V(EntityIDKey, e.ID),
					goerr.V(FieldKey, "target_assets"),
					goerr.V(ValueKey, target))
			}
		}
	}

	defenseIDs := make(map[string]bool, len(s.DefenseSystems))
	for i := range s.DefenseSystems {
		d := &s.DefenseSystems[i]
		if err := d.Validate(); err != nil {
			return wrapEntity(err, EntityDefenseSystem, i, d.ID)
		}
		if d.ID != "" {
			if defenseIDs[d.ID] {
				return duplicateID(EntityDefenseSystem, i, d.ID)
			}
			defenseIDs[d.ID] = true
		}
		for _, protected := range d.ProtectedAssets {
			if !assetIDs[protected] {
				return goerr.Wrap(ErrValidation, "defense system protects an unknown asset",
					goerr.V(EntityKey, EntityDefenseSystem),
					goerr.V(IndexKey, i),
					goerr.V(EntityIDKey, d.ID),
					goerr.V(FieldKey, "protected_assets"),
					goerr.V(ValueKey, protected))
			}
		}
	}

	return nil
}

// TotalAssetValue sums the value of every business asset
func (s *Scenario) TotalAssetValue() float64 {
	var total float64
	for _, a := range s.BusinessAssets {
		total += a.Value
	}
	return total
}

// TotalDefenseCost sums the annual cost of every defense system
func (s *Scenario) TotalDefenseCost() float64 {
	var total float64
	for i := range s.DefenseSystems {
		total += s.DefenseSystems[i].AnnualCost()
	}
	return total
}

// Components returns the entity counts reported in a result
func (s *Scenario) Components() ComponentsAnalyzed {
	return ComponentsAnalyzed{
		RiskEvents:     len(s.RiskEvents),
		BusinessAssets: len(s.BusinessAssets),
		DefenseSystems: len(s.DefenseSystems),
	}
}

func wrapEntity(err error, entity string, index int, id string) error {
	return goerr.Wrap(err, "invalid "+entity,
		goerr.V(EntityKey, entity),
		goerr.V(IndexKey, index),
		goerr.V(EntityIDKey, id))
}

func duplicateID(entity string, index int, id string) error {
	return goerr.Wrap(ErrValidation, "duplicate "+entity+" ID",
		goerr.V(EntityKey, entity),
		goerr.V(IndexKey, index),
		goerr.V(EntityIDKey, id))
}
