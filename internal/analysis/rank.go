package analysis

import (
	"sort"

	"rainrunoff/internal/performance"
)

// Scenario is one named parameter variation scored over shared inputs.
type Scenario struct {
	Name        string
	Performance performance.Performance
	Summary     FlowSummary
}

// RankByNSE sorts scenarios by NSE descending. Scenarios with an undefined
// NSE go last, ordered by RMSE ascending. The input slice is not modified.
func RankByNSE(scenarios []Scenario) []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Performance, out[j].Performance
		switch {
		case a.NSE.Defined() && b.NSE.Defined():
			return a.NSE.Value > b.NSE.Value
		case a.NSE.Defined() != b.NSE.Defined():
			return a.NSE.Defined()
		default:
			return a.RMSE < b.RMSE
		}
	})
	return out
}
