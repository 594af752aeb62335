package model

import "github.com/m-mizutani/goerr/v2"

// Scenario and simulation errors
var (
	// ErrValidation is returned when a scenario is malformed. No simulation is run.
	ErrValidation = goerr.New("invalid scenario")

	// ErrEmptyScenario is returned when a scenario has no risk events
	ErrEmptyScenario = goerr.New("scenario has no risk events")

	// ErrCancelled is returned when a simulation is cancelled mid-run. No partial result is produced.
	ErrCancelled = goerr.New("simulation cancelled")
)

// Context keys for error values
const (
	EntityKey   = "entity"
	EntityIDKey = "entity_id"
	IndexKey    = "index"
	FieldKey    = "field"
	ValueKey    = "value"
)

// Entity names used with EntityKey
const (
	EntityRiskEvent     = "risk_event"
	EntityBusinessAsset = "business_asset"
	EntityDefenseSystem = "defense_system"
)
