package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/service/export"
)

func sampleReport() *model.Report {
	return &model.Report{
		ScenarioName: "Ransomware baseline",
		Result: model.SimulationResult{
			Iterations:         10000,
			P50MedianImpact:    1234.567,
			P90SevereImpact:    5000,
			WorstCaseScenario:  9999.999,
			ExpectedAnnualLoss: 2000.1,
			ValueAtRisk95:      7000,
			ConditionalVaR:     8000,
			SecurityROI:        -12.345,
			RiskScore:          65,
			RiskDistribution:   model.RiskDistribution{Low: 50, Medium: 20, High: 20, Critical: 10},
			ComponentsAnalyzed: model.ComponentsAnalyzed{RiskEvents: 2, BusinessAssets: 1, DefenseSystems: 1},
			GeneratedAt:        time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		Detail: model.DistributionDetail{TotalDefenseCost: 1500, Seed: 42},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    export.Format
		wantErr bool
	}{
		{input: "", want: export.FormatJSON},
		{input: "json", want: export.FormatJSON},
		{input: " CSV ", want: export.FormatCSV},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := export.ParseFormat(tt.input)
			if tt.wantErr {
				gt.Error(t, err).Is(model.ErrValidation)
				return
			}
			gt.NoError(t, err).Required()
			gt.V(t, got).Equal(tt.want)
		})
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	gt.NoError(t, export.WriteCSV(&buf, sampleReport())).Required()

	records, err := csv.NewReader(&buf).ReadAll()
	gt.NoError(t, err).Required()
	gt.V(t, records[0]).Equal([]string{"Metric", "Value"})

	values := make(map[string]string, len(records))
	for _, rec := range records[1:] {
		gt.A(t, rec).Length(2)
		values[rec[0]] = rec[1]
	}

	gt.V(t, values["Iterations"]).Equal("10000")
	gt.V(t, values["P50 Median Impact"]).Equal("1234.57")
	gt.V(t, values["P90 Severe Impact"]).Equal("5000.00")
	gt.V(t, values["Worst Case Scenario"]).Equal("10000.00")
	gt.V(t, values["Security ROI (%)"]).Equal("-12.35")
	gt.V(t, values["Risk Level"]).Equal("High")
	gt.V(t, values["Medium Risk (%)"]).Equal("20")
	gt.V(t, values["Total Defense Cost"]).Equal("1500.00")
	gt.V(t, values["Seed"]).Equal("42")
	gt.V(t, values["Generated At"]).Equal("2026-03-01T12:00:00Z")
}

func TestWriteJSON(t *testing.T) {
	exportedAt := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	data, err := export.Encode(export.FormatJSON, sampleReport(), exportedAt)
	gt.NoError(t, err).Required()

	var doc map[string]any
	gt.NoError(t, json.Unmarshal(data, &doc)).Required()
	gt.Map(t, doc).HasKey("scenario_name")
	gt.Map(t, doc).HasKey("exported_at")
	gt.Map(t, doc).HasKey("result")
	gt.Map(t, doc).HasKey("detail")
	gt.V(t, doc["scenario_name"]).Equal("Ransomware baseline")
	gt.V(t, doc["exported_at"]).Equal("2026-03-02T00:00:00Z")
}

func TestEncode_Deterministic(t *testing.T) {
	at := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for _, f := range export.AllFormats() {
		t.Run(f.String(), func(t *testing.T) {
			a, err := export.Encode(f, sampleReport(), at)
			gt.NoError(t, err).Required()
			b, err := export.Encode(f, sampleReport(), at)
			gt.NoError(t, err).Required()
			gt.V(t, a).Equal(b)
		})
	}
}

type failingDestination struct {
	calls int
}

func (f *failingDestination) Name() string { return "broken" }

func (f *failingDestination) Deliver(context.Context, []byte) error {
	f.calls++
	return errors.New("disk full")
}

func TestChain(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to next destination", func(t *testing.T) {
		broken := &failingDestination{}
		var out bytes.Buffer
		chain := export.Chain{broken, &export.Writer{Label: "stdout", W: &out}}

		name, err := chain.Deliver(ctx, []byte("payload"))
		gt.NoError(t, err).Required()
		gt.V(t, name).Equal("stdout")
		gt.V(t, broken.calls).Equal(1)
		gt.V(t, out.String()).Equal("payload")
	})

	t.Run("first success stops the chain", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "report.csv")
		broken := &failingDestination{}
		chain := export.Chain{&export.File{Path: path}, broken}

		name, err := chain.Deliver(ctx, []byte("a,b\n"))
		gt.NoError(t, err).Required()
		gt.S(t, name).Contains("report.csv")
		gt.V(t, broken.calls).Equal(0)

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.V(t, string(data)).Equal("a,b\n")
	})

	t.Run("returns last error when all fail", func(t *testing.T) {
		chain := export.Chain{&export.File{}, &failingDestination{}}
		_, err := chain.Deliver(ctx, []byte("x"))
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("disk full")
	})

	t.Run("empty chain", func(t *testing.T) {
		_, err := export.Chain{}.Deliver(ctx, nil)
		gt.Error(t, err)
	})
}

func TestFile_ReplacesExistingExport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	gt.NoError(t, os.WriteFile(path, []byte("a much longer previous export"), 0o600)).Required()

	dst := &export.File{Path: path}
	gt.NoError(t, dst.Deliver(ctx, []byte("{}"))).Required()

	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	gt.V(t, string(data)).Equal("{}")

	// no temporary files are left next to the export
	entries, err := os.ReadDir(dir)
	gt.NoError(t, err).Required()
	gt.V(t, len(entries)).Equal(1)
}

func TestFile_TargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report.json")
	gt.NoError(t, os.Mkdir(target, 0o750)).Required()

	err := (&export.File{Path: target}).Deliver(context.Background(), []byte("{}"))
	gt.Error(t, err)

	entries, err := os.ReadDir(dir)
	gt.NoError(t, err).Required()
	gt.V(t, len(entries)).Equal(1)
}
