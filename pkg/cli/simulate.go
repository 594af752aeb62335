package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/service/export"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"
)

func scenarioFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "scenario",
		Aliases:     []string{"s"},
		Usage:       "Scenario file (.json or .toml)",
		Required:    true,
		Sources:     cli.EnvVars("RISKQUANT_SCENARIO"),
		Destination: dst,
	}
}

func cmdSimulate() *cli.Command {
	var scenarioPath string
	var format string
	var output string
	var quiet bool
	var simCfg config.Simulation

	flags := []cli.Flag{
		scenarioFlag(&scenarioPath),
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (json, csv)",
			Value:       string(export.FormatJSON),
			Sources:     cli.EnvVars("RISKQUANT_FORMAT"),
			Destination: &format,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file. Falls back to stdout if the file cannot be written",
			Sources:     cli.EnvVars("RISKQUANT_OUTPUT"),
			Destination: &output,
		},
		&cli.BoolFlag{
			Name:        "quiet",
			Aliases:     []string{"q"},
			Usage:       "Do not print the summary to stderr",
			Sources:     cli.EnvVars("RISKQUANT_QUIET"),
			Destination: &quiet,
		},
	}
	flags = append(flags, simCfg.Flags()...)

	return &cli.Command{
		Name:  "simulate",
		Usage: "Run a Monte Carlo simulation of a scenario",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			exportFormat, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			opts, err := simCfg.Configure(c)
			if err != nil {
				return err
			}

			scenario, err := config.LoadScenario(scenarioPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := usecase.New().Simulation.Simulate(ctx, scenario, opts)
			if err != nil {
				return goerr.Wrap(err, "simulation failed")
			}

			data, err := export.Encode(exportFormat, report, time.Now().UTC())
			if err != nil {
				return err
			}

			chain := export.Chain{}
			if output != "" {
				chain = append(chain, &export.File{Path: output})
			}
			chain = append(chain, &export.Writer{Label: "stdout", W: c.Root().Writer})

			dst, err := chain.Deliver(ctx, data)
			if err != nil {
				return goerr.Wrap(err, "failed to export result")
			}
			logging.From(ctx).Debug("Result exported", "destination", dst, "format", exportFormat)

			if !quiet {
				printSummary(c.Root().ErrWriter, report)
			}
			return nil
		},
	}
}

var riskLevelColors = map[types.RiskLevel]*color.Color{
	types.RiskLevelLow:      color.New(color.FgGreen),
	types.RiskLevelMedium:   color.New(color.FgYellow),
	types.RiskLevelHigh:     color.New(color.FgRed),
	types.RiskLevelCritical: color.New(color.FgHiRed, color.Bold),
}

func printSummary(w io.Writer, report *model.Report) {
	if w == nil {
		w = os.Stderr
	}
	r := &report.Result
	level := r.RiskLevel()

	label := level.Label()
	if c, ok := riskLevelColors[level]; ok {
		label = c.Sprint(label)
	}

	fmt.Fprintf(w, "%s (%d iterations, seed %d)\n", report.ScenarioName, r.Iterations, report.Detail.Seed)
	fmt.Fprintf(w, "  Expected annual loss : %s\n", decimal.NewFromFloat(r.ExpectedAnnualLoss).StringFixed(2))
	fmt.Fprintf(w, "  Value at risk (95%%)  : %s\n", decimal.NewFromFloat(r.ValueAtRisk95).StringFixed(2))
	fmt.Fprintf(w, "  Security ROI         : %s%%\n", decimal.NewFromFloat(r.SecurityROI).StringFixed(1))
	fmt.Fprintf(w, "  Risk score           : %s (%s)\n", decimal.NewFromFloat(r.RiskScore).StringFixed(1), label)
}
