package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/shopspring/decimal"
)

// Document is the JSON export envelope
type Document struct {
	ScenarioName string                   `json:"scenario_name"`
	ExportedAt   time.Time                `json:"exported_at"`
	Result       model.SimulationResult   `json:"result"`
	Detail       model.DistributionDetail `json:"detail"`
}

// Encode renders report in format. exportedAt stamps the JSON envelope.
func Encode(format Format, report *model.Report, exportedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatCSV:
		err = WriteCSV(&buf, report)
	case FormatJSON, "":
		err = WriteJSON(&buf, report, exportedAt)
	default:
		return nil, goerr.Wrap(model.ErrValidation, "unsupported export format",
			goerr.V(model.ValueKey, format.String()))
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes report wrapped in a Document
func WriteJSON(w io.Writer, report *model.Report, exportedAt time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	doc := Document{
		ScenarioName: report.ScenarioName,
		ExportedAt:   exportedAt,
		Result:       report.Result,
		Detail:       report.Detail,
	}
	if err := enc.Encode(doc); err != nil {
		return goerr.Wrap(err, "failed to encode JSON export")
	}
	return nil
}

// WriteCSV writes report as Metric,Value rows. Money is fixed to two decimals.
func WriteCSV(w io.Writer, report *model.Report) error {
	r := &report.Result
	d := &report.Detail

	rows := [][]string{
		{"Metric", "Value"},
		{"Scenario", report.ScenarioName},
		{"Iterations", strconv.Itoa(r.Iterations)},
		{"P50 Median Impact", money(r.P50MedianImpact)},
		{"P90 Severe Impact", money(r.P90SevereImpact)},
		{"Worst Case Scenario", money(r.WorstCaseScenario)},
		{"Expected Annual Loss", money(r.ExpectedAnnualLoss)},
		{"Value at Risk (95%)", money(r.ValueAtRisk95)},
		{"Conditional VaR", money(r.ConditionalVaR)},
		{"Security ROI (%)", money(r.SecurityROI)},
		{"Risk Score", money(r.RiskScore)},
		{"Risk Level", r.RiskLevel().Label()},
		{"Low Risk (%)", strconv.Itoa(r.RiskDistribution.Low)},
		{"Medium Risk (%)", strconv.Itoa(r.RiskDistribution.Medium)},
		{"High Risk (%)", strconv.Itoa(r.RiskDistribution.High)},
		{"Critical Risk (%)", strconv.Itoa(r.RiskDistribution.Critical)},
		{"Risk Events", strconv.Itoa(r.ComponentsAnalyzed.RiskEvents)},
		{"Business Assets", strconv.Itoa(r.ComponentsAnalyzed.BusinessAssets)},
		{"Defense Systems", strconv.Itoa(r.ComponentsAnalyzed.DefenseSystems)},
		{"Standard Deviation", money(d.StandardDeviation)},
		{"Minimum Loss", money(d.MinimumLoss)},
		{"P10", money(d.P10)},
		{"P25", money(d.P25)},
		{"P75", money(d.P75)},
		{"P95 Impact", money(d.P95Impact)},
		{"P99 Worst Case", money(d.P99WorstCase)},
		{"Expected Annual Loss Without Defenses", money(d.ExpectedAnnualLossWithoutDefense)},
		{"Total Defense Cost", money(d.TotalDefenseCost)},
		{"Total Asset Value", money(d.TotalAssetValue)},
		{"Seed", strconv.FormatUint(d.Seed, 10)},
		{"Generated At", r.GeneratedAt.Format(time.RFC3339)},
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return goerr.Wrap(err, "failed to write CSV export")
	}
	return nil
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
