package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// LifetimeStats summarizes a batch of ion lifetimes (seconds): mean, median
// and 90th percentile. Returns zeros for an empty batch.
func LifetimeStats(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p50, p90
}
