package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var scenarioPath string

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a scenario file without running a simulation",
		Flags:   []cli.Flag{scenarioFlag(&scenarioPath)},
		Action: func(ctx context.Context, c *cli.Command) error {
			scenario, err := config.LoadScenario(scenarioPath)
			if err != nil {
				return err
			}

			normalized, err := usecase.New().Simulation.Validate(ctx, scenario)
			if err != nil {
				return goerr.Wrap(err, "scenario validation failed", goerr.V(config.ScenarioPathKey, scenarioPath))
			}

			components := normalized.Components()
			logging.Default().Info("Scenario validation passed",
				"scenario", normalized.Name,
				"risk_events", components.RiskEvents,
				"business_assets", components.BusinessAssets,
				"defense_systems", components.DefenseSystems,
				"total_asset_value", normalized.TotalAssetValue(),
				"total_defense_cost", normalized.TotalDefenseCost(),
			)
			return nil
		},
	}
}
