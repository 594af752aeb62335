package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

func TestParseRiskEventType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.RiskEventType
		wantErr bool
	}{
		{name: "cyber attack", input: "cyber_attack", want: types.RiskEventTypeCyberAttack},
		{name: "supply disruption", input: "supply_disruption", want: types.RiskEventTypeSupplyDisruption},
		{name: "operational risk", input: "operational_risk", want: types.RiskEventTypeOperationalRisk},
		{name: "legal action", input: "legal_action", want: types.RiskEventTypeLegalAction},
		{name: "unknown", input: "earthquake", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong case", input: "CYBER_ATTACK", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseRiskEventType(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
				gt.V(t, got).Equal(tt.want)
			}
		})
	}
}

func TestAllRiskEventTypes(t *testing.T) {
	all := types.AllRiskEventTypes()
	gt.A(t, all).Length(4)
	for _, et := range all {
		gt.B(t, et.IsValid()).
			Describef("type %s should be valid", et).
			True()
	}
}

func TestCriticality_Multiplier(t *testing.T) {
	tests := []struct {
		name        string
		criticality types.Criticality
		want        float64
	}{
		{name: "low", criticality: types.CriticalityLow, want: 0.25},
		{name: "medium", criticality: types.CriticalityMedium, want: 0.60},
		{name: "high", criticality: types.CriticalityHigh, want: 1.00},
		{name: "empty defaults to medium", criticality: "", want: 0.60},
		{name: "unknown", criticality: "extreme", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, tt.criticality.Multiplier()).Equal(tt.want)
		})
	}
}

func TestParseCriticality(t *testing.T) {
	c, err := types.ParseCriticality("high")
	gt.NoError(t, err)
	gt.V(t, c).Equal(types.CriticalityHigh)

	_, err = types.ParseCriticality("critical")
	gt.Error(t, err)
}

func TestParseImpactShape(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.ImpactShape
		wantErr bool
	}{
		{name: "empty is uniform", input: "", want: types.ImpactShapeUniform},
		{name: "uniform", input: "uniform", want: types.ImpactShapeUniform},
		{name: "triangular", input: "triangular", want: types.ImpactShapeTriangular},
		{name: "unsupported", input: "lognormal", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseImpactShape(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
				gt.V(t, got).Equal(tt.want)
			}
		})
	}
}

func TestAssetAndDefenseType_IsValid(t *testing.T) {
	gt.B(t, types.AssetType("").IsValid()).True()
	gt.B(t, types.AssetTypeDataAsset.IsValid()).True()
	gt.B(t, types.AssetType("building").IsValid()).False()

	gt.B(t, types.DefenseType("").IsValid()).True()
	gt.B(t, types.DefenseTypeInsuranceCoverage.IsValid()).True()
	gt.B(t, types.DefenseType("firewall").IsValid()).False()
}

func TestClassifyRiskScore(t *testing.T) {
	tests := []struct {
		score float64
		want  types.RiskLevel
	}{
		{score: 0, want: types.RiskLevelLow},
		{score: 29.999, want: types.RiskLevelLow},
		{score: 30, want: types.RiskLevelMedium},
		{score: 59.9, want: types.RiskLevelMedium},
		{score: 60, want: types.RiskLevelHigh},
		{score: 79.99, want: types.RiskLevelHigh},
		{score: 80, want: types.RiskLevelCritical},
		{score: 100, want: types.RiskLevelCritical},
	}

	for _, tt := range tests {
		gt.V(t, types.ClassifyRiskScore(tt.score)).
			Describef("score %v", tt.score).
			Equal(tt.want)
	}
}

func TestRiskLevel_Label(t *testing.T) {
	gt.S(t, types.RiskLevelLow.Label()).Equal("Low")
	gt.S(t, types.RiskLevelMedium.Label()).Equal("Medium")
	gt.S(t, types.RiskLevelHigh.Label()).Equal("High")
	gt.S(t, types.RiskLevelCritical.Label()).Equal("Critical")
	gt.S(t, types.RiskLevel("x").Label()).Equal("Unknown")
}

func TestAllRiskLevels_OrderedBySeverity(t *testing.T) {
	levels := types.AllRiskLevels()
	gt.A(t, levels).Length(4)
	gt.V(t, levels[0]).Equal(types.RiskLevelLow)
	gt.V(t, levels[3]).Equal(types.RiskLevelCritical)
}

func TestAllRunOutcomes(t *testing.T) {
	labels := make([]string, 0, len(types.AllRunOutcomes()))
	for _, o := range types.AllRunOutcomes() {
		labels = append(labels, o.String())
	}
	gt.V(t, labels).Equal([]string{"success", "invalid", "cancelled", "error"})
}
