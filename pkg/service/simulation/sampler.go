package simulation

import (
	"math"
	"math/rand/v2"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// poissonRejectionThreshold is the mean above which Poisson counts are drawn by
// transformed rejection instead of Knuth's multiplication method
const poissonRejectionThreshold = 10.0

// sumApproximationThreshold is the occurrence count above which the total impact is drawn
// from the normal approximation of the sum instead of one draw per occurrence
const sumApproximationThreshold = 64

// Sampler draws the annual loss contribution of a single risk event for one iteration
type Sampler struct {
	shape types.ImpactShape
}

// NewSampler creates a Sampler drawing impacts with the given shape. Empty means uniform.
func NewSampler(shape types.ImpactShape) *Sampler {
	return &Sampler{shape: shape.Normalize()}
}

// Sample returns the total impact of ev in one simulated year, 0 when it does not occur
func (s *Sampler) Sample(rng *rand.Rand, ev *model.RiskEvent) float64 {
	n := Occurrences(rng, ev)
	if n > sumApproximationThreshold {
		return s.ImpactSum(rng, n, ev.ImpactMin, ev.ImpactMax)
	}

	var total float64
	for range n {
		total += s.Impact(rng, ev.ImpactMin, ev.ImpactMax)
	}
	return total
}

// ImpactSum draws the total of n impacts within [lo, hi] in one step using the normal
// approximation of the sum. The result stays within [n*lo, n*hi].
func (s *Sampler) ImpactSum(rng *rand.Rand, n int, lo, hi float64) float64 {
	k := float64(n)
	if hi <= lo {
		return k * lo
	}

	width := hi - lo
	variance := width * width / 12
	if s.shape == types.ImpactShapeTriangular {
		variance = width * width / 24
	}

	total := k*(lo+hi)/2 + math.Sqrt(k*variance)*rng.NormFloat64()
	return min(max(total, k*lo), k*hi)
}

// Occurrences draws how many times ev happens in one simulated year. With a frequency
// above 1 the count is Poisson(frequency); otherwise it is a Bernoulli trial at the
// event's probability.
func Occurrences(rng *rand.Rand, ev *model.RiskEvent) int {
	if ev.Frequency > 1 {
		return poisson(rng, ev.Frequency)
	}
	if rng.Float64()*100 < ev.Probability {
		return 1
	}
	return 0
}

// Impact draws one impact magnitude within [lo, hi]
func (s *Sampler) Impact(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}

	u := rng.Float64()
	switch s.shape {
	case types.ImpactShapeTriangular:
		// mode at the midpoint, so the CDF at the mode is 0.5
		width := hi - lo
		if u < 0.5 {
			return lo + math.Sqrt(u*width*width/2)
		}
		return hi - math.Sqrt((1-u)*width*width/2)
	default:
		return lo + u*(hi-lo)
	}
}

func poisson(rng *rand.Rand, lambda float64) int {
	if lambda < poissonRejectionThreshold {
		limit := math.Exp(-lambda)
		k := 0
		p := rng.Float64()
		for p > limit {
			k++
			p *= rng.Float64()
		}
		return k
	}
	return poissonPTRS(rng, lambda)
}

// poissonPTRS implements Hörmann's transformed rejection with squeeze
func poissonPTRS(rng *rand.Rand, lambda float64) int {
	slam := math.Sqrt(lambda)
	loglam := math.Log(lambda)
	b := 0.931 + 2.53*slam
	a := -0.059 + 0.02483*b
	invAlpha := 1.1239 + 1.1328/(b-3.4)
	vr := 0.9277 - 3.6224/(b-2)

	for {
		u := rng.Float64() - 0.5
		v := rng.Float64()
		us := 0.5 - math.Abs(u)
		k := math.Floor((2*a/us+b)*u + lambda + 0.43)
		if us >= 0.07 && v <= vr {
			return int(k)
		}
		if k < 0 || (us < 0.013 && v > us) {
			continue
		}
		lg, _ := math.Lgamma(k + 1)
		if math.Log(v)+math.Log(invAlpha)-math.Log(a/(us*us)+b) <= -lambda+k*loglam-lg {
			return int(k)
		}
	}
}
