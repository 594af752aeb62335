package analysis

import (
	"math"
	"slices"
	"time"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

// ReferenceExposure is the exposure used for the risk score when a scenario has no assets
const ReferenceExposure = 1_000_000.0

// Aggregate reduces the paired loss sequences of a run into the dashboard result and the
// detailed statistics. withDefenses[i] and withoutDefenses[i] belong to iteration i. Neither
// slice is modified.
func Aggregate(withDefenses, withoutDefenses []float64, seed uint64, scenario *model.Scenario, now time.Time) (model.SimulationResult, model.DistributionDetail) {
	with := slices.Clone(withDefenses)
	slices.Sort(with)

	n := len(with)
	eal := mean(with)
	ealWithout := mean(withoutDefenses)
	worst := 0.0
	minimum := 0.0
	if n > 0 {
		worst = with[n-1]
		minimum = with[0]
	}
	var95 := Percentile(with, 0.95)

	defenseCost := scenario.TotalDefenseCost()
	assetValue := scenario.TotalAssetValue()

	result := model.SimulationResult{
		Iterations:         n,
		P50MedianImpact:    Percentile(with, 0.50),
		P90SevereImpact:    Percentile(with, 0.90),
		WorstCaseScenario:  worst,
		ExpectedAnnualLoss: eal,
		ValueAtRisk95:      var95,
		ConditionalVaR:     tailMean(with, var95),
		SecurityROI:        SecurityROI(ealWithout, eal, defenseCost),
		RiskScore:          RiskScore(eal, assetValue),
		RiskDistribution:   Distribute(with, worst),
		ComponentsAnalyzed: scenario.Components(),
		GeneratedAt:        now,
	}

	detail := model.DistributionDetail{
		StandardDeviation:                stdDev(with, eal),
		MinimumLoss:                      minimum,
		P10:                              Percentile(with, 0.10),
		P25:                              Percentile(with, 0.25),
		P75:                              Percentile(with, 0.75),
		P95Impact:                        var95,
		P99WorstCase:                     Percentile(with, 0.99),
		ExpectedAnnualLossWithoutDefense: ealWithout,
		TotalDefenseCost:                 defenseCost,
		TotalAssetValue:                  assetValue,
		Seed:                             seed,
	}

	return result, detail
}

// SecurityROI is the net loss reduction bought by the defenses as a percentage of their
// cost. It is 0 when nothing is spent on defenses.
func SecurityROI(ealWithout, ealWith, defenseCost float64) float64 {
	if defenseCost <= 0 {
		return 0
	}
	return ((ealWithout - ealWith) - defenseCost) / defenseCost * 100
}

// RiskScore expresses the expected annual loss as a percentage of exposure, capped at 100.
// A non-positive exposure falls back to ReferenceExposure.
func RiskScore(eal, exposure float64) float64 {
	if exposure <= 0 {
		exposure = ReferenceExposure
	}
	return min(100, max(0, eal/exposure*100))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation
func stdDev(values []float64, mu float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - mu
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// tailMean is the mean of the values of sorted at or above threshold
func tailMean(sorted []float64, threshold float64) float64 {
	i, _ := slices.BinarySearch(sorted, threshold)
	return mean(sorted[i:])
}
