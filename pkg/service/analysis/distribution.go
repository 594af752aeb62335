package analysis

import (
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// Distribute classifies every loss relative to worst and returns each band's share in
// whole percent. Shares are allocated by largest remainder so they always sum to 100;
// equal remainders favor the lower severity band. With worst <= 0 every loss is Low.
func Distribute(losses []float64, worst float64) model.RiskDistribution {
	if len(losses) == 0 || worst <= 0 {
		return model.RiskDistribution{Low: 100}
	}

	levels := types.AllRiskLevels()
	counts := make([]int, len(levels))
	for _, loss := range losses {
		level := types.ClassifyRiskScore(loss / worst * 100)
		for i := range levels {
			if levels[i] == level {
				counts[i]++
				break
			}
		}
	}

	shares := largestRemainder(counts, len(losses), 100)
	return model.RiskDistribution{
		Low:      shares[0],
		Medium:   shares[1],
		High:     shares[2],
		Critical: shares[3],
	}
}

// largestRemainder splits total among counts (summing to n) proportionally in integers.
// Remainders are compared exactly as count*total mod n.
func largestRemainder(counts []int, n, total int) []int {
	shares := make([]int, len(counts))
	remainders := make([]int, len(counts))
	allocated := 0
	for i, c := range counts {
		shares[i] = c * total / n
		remainders[i] = c * total % n
		allocated += shares[i]
	}

	for ; allocated < total; allocated++ {
		best := 0
		for i := 1; i < len(remainders); i++ {
			if remainders[i] > remainders[best] {
				best = i
			}
		}
		shares[best]++
		remainders[best] = -1
	}
	return shares
}
