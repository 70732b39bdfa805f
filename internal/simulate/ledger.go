package simulate

import (
	"rainrunoff/internal/analysis"
	"rainrunoff/internal/model"
	"rainrunoff/internal/performance"
)

// LedgerRow is one row of per-timestep output.
// This is the primary artifact for "what happened" in a run.
type LedgerRow struct {
	Index int

	Precipitation      float64
	Evapotranspiration float64
	ObservedDischarge  float64

	Regime model.Regime

	Infiltration           float64
	RealEvapotranspiration float64
	Storage                float64
	SurfaceFlow            float64
	Runoff                 float64

	IntegratedRunoff float64
	SimulatedFlow    float64

	// Residual is SimulatedFlow - ObservedDischarge.
	Residual float64
}

type Result struct {
	Parameters model.Parameters
	Ledger     []LedgerRow

	Balance          model.WaterBalance
	IntegratedRunoff []float64
	SimulatedFlow    []float64

	Performance performance.Performance
	Summary     analysis.FlowSummary
}
