package simulation

import (
	"math/rand/v2"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

// NeutralMultiplier weights event losses when the scenario has no business assets
const NeutralMultiplier = 1.0

// Compositor turns the sampled event losses of one iteration into the iteration's total
// annual loss, with and without defenses. Weights and residuals are resolved once at
// construction, so a Compositor is read-only and safe to share between workers.
type Compositor struct {
	sampler *Sampler
	events  []compiledEvent
}

type compiledEvent struct {
	event *model.RiskEvent

	// weight is the mean criticality multiplier of the assets the event threatens
	weight float64

	// residual is the fraction of the weighted loss left after applicable defenses
	residual float64
}

// NewCompositor resolves asset weights and defense residuals for every event of scenario.
// The scenario must already be normalized and validated.
func NewCompositor(scenario *model.Scenario, sampler *Sampler) *Compositor {
	assets := make(map[string]*model.BusinessAsset, len(scenario.BusinessAssets))
	for i := range scenario.BusinessAssets {
		assets[scenario.BusinessAssets[i].ID] = &scenario.BusinessAssets[i]
	}
	allAssets := meanMultiplier(scenario.BusinessAssets)

	c := &Compositor{
		sampler: sampler,
		events:  make([]compiledEvent, len(scenario.RiskEvents)),
	}

	for i := range scenario.RiskEvents {
		ev := &scenario.RiskEvents[i]

		weight := allAssets
		if len(ev.TargetAssets) > 0 {
			targets := make([]model.BusinessAsset, 0, len(ev.TargetAssets))
			for _, id := range ev.TargetAssets {
				if a, ok := assets[id]; ok {
					targets = append(targets, *a)
				}
			}
			weight = meanMultiplier(targets)
		}

		var applicable []model.DefenseSystem
		for _, d := range scenario.DefenseSystems {
			if defends(&d, ev) {
				applicable = append(applicable, d)
			}
		}

		c.events[i] = compiledEvent{
			event:    ev,
			weight:   weight,
			residual: 1 - CombinedMitigation(applicable),
		}
	}

	return c
}

// Iterate samples every event once and returns the iteration's loss after defenses and
// the loss the same samples would have caused with no defenses at all
func (c *Compositor) Iterate(rng *rand.Rand) (withDefenses, withoutDefenses float64) {
	for i := range c.events {
		ce := &c.events[i]
		weighted := c.sampler.Sample(rng, ce.event) * ce.weight
		withoutDefenses += weighted
		withDefenses += weighted * ce.residual
	}
	return max(0, withDefenses), max(0, withoutDefenses)
}

// CombinedMitigation composes independent defenses on the residual risk:
// 1 - prod(1 - mitigation_i). It never exceeds 1.
func CombinedMitigation(defenses []model.DefenseSystem) float64 {
	residual := 1.0
	for i := range defenses {
		residual *= 1 - defenses[i].Mitigation()
	}
	return 1 - max(0, residual)
}

func meanMultiplier(assets []model.BusinessAsset) float64 {
	if len(assets) == 0 {
		return NeutralMultiplier
	}
	var sum float64
	for i := range assets {
		sum += assets[i].Multiplier()
	}
	return sum / float64(len(assets))
}

// defends reports whether d covers ev. Defenses without protected assets cover every
// event, and events without targets are covered by every defense.
func defends(d *model.DefenseSystem, ev *model.RiskEvent) bool {
	if len(d.ProtectedAssets) == 0 || len(ev.TargetAssets) == 0 {
		return true
	}
	for _, protected := range d.ProtectedAssets {
		for _, target := range ev.TargetAssets {
			if protected == target {
				return true
			}
		}
	}
	return false
}
