package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FlowSummary describes the distribution of a discharge series (m3/s).
type FlowSummary struct {
	Count int

	Min  float64
	Max  float64
	Mean float64
	P05  float64
	P95  float64

	// Volume is the sum of the series over all timesteps.
	Volume float64
}

func Summarize(series []float64) FlowSummary {
	s := FlowSummary{Count: len(series)}
	if len(series) == 0 {
		return s
	}
	sorted := make([]float64, len(series))
	copy(sorted, series)
	sort.Float64s(sorted)

	s.Min = floats.Min(series)
	s.Max = floats.Max(series)
	s.Mean = stat.Mean(series, nil)
	s.P05 = quantile(sorted, 0.05)
	s.P95 = quantile(sorted, 0.95)
	s.Volume = floats.Sum(series)
	return s
}

// quantile reads the q-th quantile from an ascending series, interpolating
// linearly between neighbouring ranks (position q*(n-1)).
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return 0
	case q <= 0:
		return sorted[0]
	case q >= 1:
		return sorted[n-1]
	}
	rank, frac := math.Modf(q * float64(n-1))
	i := int(rank)
	if frac == 0 {
		return sorted[i]
	}
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}
