package model_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

func validEvent() model.RiskEvent {
	return model.RiskEvent{
		ID:          "ev-1",
		Name:        "Ransomware",
		Type:        types.RiskEventTypeCyberAttack,
		Probability: 30,
		ImpactMin:   10000,
		ImpactMax:   50000,
		Frequency:   1,
	}
}

func validAsset() model.BusinessAsset {
	return model.BusinessAsset{
		ID:          "asset-1",
		Name:        "Customer DB",
		Value:       250000,
		Criticality: types.CriticalityHigh,
	}
}

func validDefense() model.DefenseSystem {
	return model.DefenseSystem{
		ID:                 "def-1",
		Name:               "EDR",
		Effectiveness:      60,
		Cost:               12000,
		CoveragePercentage: 100,
	}
}

func TestRiskEvent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(e *model.RiskEvent)
		wantErr bool
	}{
		{name: "valid", modify: func(e *model.RiskEvent) {}},
		{name: "empty name", modify: func(e *model.RiskEvent) { e.Name = "" }, wantErr: true},
		{name: "unknown type", modify: func(e *model.RiskEvent) { e.Type = "meteor" }, wantErr: true},
		{name: "probability below 1", modify: func(e *model.RiskEvent) { e.Probability = 0.5 }, wantErr: true},
		{name: "probability above 100", modify: func(e *model.RiskEvent) { e.Probability = 101 }, wantErr: true},
		{name: "probability 100", modify: func(e *model.RiskEvent) { e.Probability = 100 }},
		{name: "negative impact_min", modify: func(e *model.RiskEvent) { e.ImpactMin = -1 }, wantErr: true},
		{name: "min above max", modify: func(e *model.RiskEvent) { e.ImpactMin = 60000 }, wantErr: true},
		{name: "min equals max", modify: func(e *model.RiskEvent) { e.ImpactMin, e.ImpactMax = 1000, 1000 }},
		{name: "negative frequency", modify: func(e *model.RiskEvent) { e.Frequency = -2 }, wantErr: true},
		{name: "maximum frequency", modify: func(e *model.RiskEvent) { e.Frequency = model.MaxFrequency }},
		{name: "frequency above maximum", modify: func(e *model.RiskEvent) { e.Frequency = model.MaxFrequency + 1 }, wantErr: true},
		{name: "huge frequency", modify: func(e *model.RiskEvent) { e.Frequency = 1e20 }, wantErr: true},
		{name: "infinite frequency", modify: func(e *model.RiskEvent) { e.Frequency = math.Inf(1) }, wantErr: true},
		{name: "NaN impact", modify: func(e *model.RiskEvent) { e.ImpactMax = math.NaN() }, wantErr: true},
		{name: "infinite impact", modify: func(e *model.RiskEvent) { e.ImpactMax = math.Inf(1) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := validEvent()
			tt.modify(&ev)
			err := ev.Validate()
			if tt.wantErr {
				gt.Error(t, err).Is(model.ErrValidation)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestRiskEvent_NormalizeDefaultsFrequency(t *testing.T) {
	ev := validEvent()
	ev.Frequency = 0
	gt.V(t, ev.Normalize().Frequency).Equal(model.DefaultFrequency)
}

func TestBusinessAsset_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(a *model.BusinessAsset)
		wantErr bool
	}{
		{name: "valid", modify: func(a *model.BusinessAsset) {}},
		{name: "value at minimum", modify: func(a *model.BusinessAsset) { a.Value = 1000 }},
		{name: "value below minimum", modify: func(a *model.BusinessAsset) { a.Value = 999 }, wantErr: true},
		{name: "empty name", modify: func(a *model.BusinessAsset) { a.Name = "" }, wantErr: true},
		{name: "bad criticality", modify: func(a *model.BusinessAsset) { a.Criticality = "critical" }, wantErr: true},
		{name: "bad type", modify: func(a *model.BusinessAsset) { a.Type = "car" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAsset()
			tt.modify(&a)
			err := a.Validate()
			if tt.wantErr {
				gt.Error(t, err).Is(model.ErrValidation)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestBusinessAsset_NormalizeDefaultsCriticality(t *testing.T) {
	a := validAsset()
	a.Criticality = ""
	n := a.Normalize()
	gt.V(t, n.Criticality).Equal(types.CriticalityMedium)
	gt.V(t, n.Multiplier()).Equal(0.60)
}

func TestDefenseSystem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(d *model.DefenseSystem)
		wantErr bool
	}{
		{name: "valid", modify: func(d *model.DefenseSystem) {}},
		{name: "effectiveness 0", modify: func(d *model.DefenseSystem) { d.Effectiveness = 0 }, wantErr: true},
		{name: "effectiveness above 100", modify: func(d *model.DefenseSystem) { d.Effectiveness = 120 }, wantErr: true},
		{name: "zero cost", modify: func(d *model.DefenseSystem) { d.Cost = 0 }, wantErr: true},
		{name: "negative cost", modify: func(d *model.DefenseSystem) { d.Cost = -5 }, wantErr: true},
		{name: "small positive cost", modify: func(d *model.DefenseSystem) { d.Cost = 500 }},
		{name: "coverage above 100", modify: func(d *model.DefenseSystem) { d.CoveragePercentage = 150 }, wantErr: true},
		{name: "negative maintenance", modify: func(d *model.DefenseSystem) { d.MaintenanceCost = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDefense()
			tt.modify(&d)
			err := d.Validate()
			if tt.wantErr {
				gt.Error(t, err).Is(model.ErrValidation)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestDefenseSystem_MitigationAndCost(t *testing.T) {
	d := model.DefenseSystem{Name: "WAF", Effectiveness: 50, Cost: 1000, MaintenanceCost: 250}.Normalize()
	gt.V(t, d.CoveragePercentage).Equal(100.0)
	gt.V(t, d.Mitigation()).Equal(0.5)
	gt.V(t, d.AnnualCost()).Equal(1250.0)

	d.CoveragePercentage = 50
	gt.V(t, d.Mitigation()).Equal(0.25)
}

func TestScenario_Normalize(t *testing.T) {
	src := &model.Scenario{
		Name:           "baseline",
		RiskEvents:     []model.RiskEvent{{Name: "Flood", Type: types.RiskEventTypeOperationalRisk, Probability: 10}},
		BusinessAssets: []model.BusinessAsset{{Name: "HQ", Value: 5000}},
		DefenseSystems: []model.DefenseSystem{{Name: "Insurance", Effectiveness: 40, Cost: 2000}},
	}

	out := src.Normalize()
	gt.S(t, out.RiskEvents[0].ID).NotEqual("")
	gt.S(t, out.BusinessAssets[0].ID).NotEqual("")
	gt.S(t, out.DefenseSystems[0].ID).NotEqual("")
	gt.V(t, out.RiskEvents[0].Frequency).Equal(1.0)
	gt.V(t, out.BusinessAssets[0].Criticality).Equal(types.CriticalityMedium)
	gt.V(t, out.DefenseSystems[0].CoveragePercentage).Equal(100.0)

	// source is left untouched
	gt.S(t, src.RiskEvents[0].ID).Equal("")
	gt.V(t, src.RiskEvents[0].Frequency).Equal(0.0)
}

func TestScenario_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s := &model.Scenario{
			RiskEvents:     []model.RiskEvent{validEvent()},
			BusinessAssets: []model.BusinessAsset{validAsset()},
			DefenseSystems: []model.DefenseSystem{validDefense()},
		}
		gt.NoError(t, s.Validate())
	})

	t.Run("no risk events is not a validation error", func(t *testing.T) {
		s := &model.Scenario{BusinessAssets: []model.BusinessAsset{validAsset()}}
		gt.NoError(t, s.Validate())
	})

	t.Run("duplicate event ID", func(t *testing.T) {
		s := &model.Scenario{RiskEvents: []model.RiskEvent{validEvent(), validEvent()}}
		gt.Error(t, s.Validate()).Is(model.ErrValidation)
	})

	t.Run("duplicate asset ID", func(t *testing.T) {
		s := &model.Scenario{BusinessAssets: []model.BusinessAsset{validAsset(), validAsset()}}
		gt.Error(t, s.Validate()).Is(model.ErrValidation)
	})

	t.Run("unknown target asset", func(t *testing.T) {
		ev := validEvent()
		ev.TargetAssets = []string{"missing"}
		s := &model.Scenario{RiskEvents: []model.RiskEvent{ev}, BusinessAssets: []model.BusinessAsset{validAsset()}}
		gt.Error(t, s.Validate()).Is(model.ErrValidation)
	})

	t.Run("unknown protected asset", func(t *testing.T) {
		d := validDefense()
		d.ProtectedAssets = []string{"missing"}
		s := &model.Scenario{RiskEvents: []model.RiskEvent{validEvent()}, DefenseSystems: []model.DefenseSystem{d}}
		gt.Error(t, s.Validate()).Is(model.ErrValidation)
	})

	t.Run("invalid nested entity", func(t *testing.T) {
		ev := validEvent()
		ev.Probability = 0
		s := &model.Scenario{RiskEvents: []model.RiskEvent{ev}}
		gt.Error(t, s.Validate()).Is(model.ErrValidation)
	})
}

func TestScenario_Totals(t *testing.T) {
	s := &model.Scenario{
		RiskEvents: []model.RiskEvent{validEvent()},
		BusinessAssets: []model.BusinessAsset{
			{Name: "a", Value: 1000},
			{Name: "b", Value: 4000},
		},
		DefenseSystems: []model.DefenseSystem{
			{Name: "x", Cost: 1000, MaintenanceCost: 500},
			{Name: "y", Cost: 300},
		},
	}
	gt.V(t, s.TotalAssetValue()).Equal(5000.0)
	gt.V(t, s.TotalDefenseCost()).Equal(1800.0)
	gt.V(t, s.Components()).Equal(model.ComponentsAnalyzed{RiskEvents: 1, BusinessAssets: 2, DefenseSystems: 2})
}

func TestSimulationResult_JSONKeys(t *testing.T) {
	r := model.SimulationResult{
		Iterations:       10,
		RiskScore:        65,
		RiskDistribution: model.RiskDistribution{Low: 40, Medium: 30, High: 20, Critical: 10},
	}
	gt.V(t, r.RiskLevel()).Equal(types.RiskLevelHigh)

	data, err := json.Marshal(r)
	gt.NoError(t, err).Required()

	var decoded map[string]any
	gt.NoError(t, json.Unmarshal(data, &decoded)).Required()

	keys := []string{
		"iterations", "p50_median_impact", "p90_severe_impact", "worst_case_scenario",
		"expected_annual_loss", "value_at_risk_95", "conditional_var", "security_roi",
		"risk_score", "risk_distribution", "components_analyzed", "generated_at",
	}
	gt.A(t, keys).Length(len(decoded))
	for _, k := range keys {
		gt.Map(t, decoded).HasKey(k)
	}

	dist, ok := decoded["risk_distribution"].(map[string]any)
	gt.B(t, ok).True()
	gt.A(t, []string{"low", "high", "critical"}).Length(len(dist))
	_, hasMedium := dist["medium"]
	gt.B(t, hasMedium).False()
}
