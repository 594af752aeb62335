package model

import (
	"time"

	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// RiskDistribution holds the share (whole percent) of iterations falling in each risk band.
// The four bands always sum to 100. Medium is not serialized; it is 100 minus the others.
type RiskDistribution struct {
	Low      int `json:"low"`
	Medium   int `json:"-"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

// ComponentsAnalyzed counts the scenario entities that took part in a simulation
type ComponentsAnalyzed struct {
	RiskEvents     int `json:"risk_events"`
	BusinessAssets int `json:"business_assets"`
	DefenseSystems int `json:"defense_systems"`
}

// SimulationResult is the summary of one simulation run. It is never mutated after creation.
type SimulationResult struct {
	Iterations         int                `json:"iterations"`
	P50MedianImpact    float64            `json:"p50_median_impact"`
	P90SevereImpact    float64            `json:"p90_severe_impact"`
	WorstCaseScenario  float64            `json:"worst_case_scenario"`
	ExpectedAnnualLoss float64            `json:"expected_annual_loss"`
	ValueAtRisk95      float64            `json:"value_at_risk_95"`
	ConditionalVaR     float64            `json:"conditional_var"`
	SecurityROI        float64            `json:"security_roi"`
	RiskScore          float64            `json:"risk_score"`
	RiskDistribution   RiskDistribution   `json:"risk_distribution"`
	ComponentsAnalyzed ComponentsAnalyzed `json:"components_analyzed"`
	GeneratedAt        time.Time          `json:"generated_at"`
}

// RiskLevel classifies the result's risk score
func (r *SimulationResult) RiskLevel() types.RiskLevel {
	return types.ClassifyRiskScore(r.RiskScore)
}

// DistributionDetail carries the extra statistics of a run that the dashboard result omits
type DistributionDetail struct {
	StandardDeviation                float64 `json:"standard_deviation"`
	MinimumLoss                      float64 `json:"minimum_loss"`
	P10                              float64 `json:"p10"`
	P25                              float64 `json:"p25"`
	P75                              float64 `json:"p75"`
	P95Impact                        float64 `json:"p95_impact"`
	P99WorstCase                     float64 `json:"p99_worst_case"`
	ExpectedAnnualLossWithoutDefense float64 `json:"expected_annual_loss_without_defenses"`
	TotalDefenseCost                 float64 `json:"total_defense_cost"`
	TotalAssetValue                  float64 `json:"total_asset_value"`
	Seed                             uint64  `json:"seed"`
}

// Report bundles a result with its detail and the scenario it was computed for
type Report struct {
	ScenarioName string             `json:"scenario_name"`
	Result       SimulationResult   `json:"result"`
	Detail       DistributionDetail `json:"detail"`
}
