package analysis

import (
	"math"
	"testing"

	"rainrunoff/internal/performance"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{3, 1, 5, 2, 4})

	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.InDelta(t, 3.0, s.Mean, 1e-12)
	assert.InDelta(t, 1.2, s.P05, 1e-12)
	assert.InDelta(t, 4.8, s.P95, 1e-12)
	assert.InDelta(t, 15.0, s.Volume, 1e-12)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, FlowSummary{}, Summarize(nil))
}

func TestRankByNSE(t *testing.T) {
	nan := performance.Indicator{Value: math.NaN(), Reason: performance.ErrZeroObservedVariance}
	in := []Scenario{
		{Name: "undefined-far", Performance: performance.Performance{RMSE: 3, NSE: nan}},
		{Name: "poor", Performance: performance.Performance{RMSE: 2, NSE: performance.Indicator{Value: -0.4}}},
		{Name: "good", Performance: performance.Performance{RMSE: 1, NSE: performance.Indicator{Value: 0.8}}},
		{Name: "undefined-near", Performance: performance.Performance{RMSE: 0.5, NSE: nan}},
	}

	ranked := RankByNSE(in)

	names := make([]string, len(ranked))
	for i, s := range ranked {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"good", "poor", "undefined-near", "undefined-far"}, names)
	assert.Equal(t, "undefined-far", in[0].Name)
}
