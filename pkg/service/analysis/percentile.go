package analysis

import "math"

// Percentile returns the p-quantile (0 <= p <= 1) of sorted using linear interpolation
// between closest ranks (Hyndman & Fan type 7). sorted must be in ascending order.
// It returns 0 for an empty slice.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	p = min(1, max(0, p))

	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
