package models

import (
	"math"

	"rainrunoff/internal/performance"
)

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	ID      string          `json:"id,omitempty"`
	Status  string          `json:"status"`
	Summary SimulateSummary `json:"summary"`
	Ledger  []LedgerRow     `json:"ledger,omitempty"`
}

// SimulateSummary contains aggregated run results
type SimulateSummary struct {
	Parameters    ParametersConfig `json:"parameters"`
	Timesteps     int              `json:"timesteps"`
	SeedDischarge float64          `json:"seed_discharge"`
	Performance   Performance      `json:"performance"`
	Flow          FlowSummary      `json:"flow"`
	RunoffVolume  float64          `json:"runoff_volume"`
	SurfaceVolume float64          `json:"surface_flow_volume"`
}

// Performance carries the fit metrics. Undefined metrics are null with a reason.
type Performance struct {
	RMSE  float64   `json:"rmse"`
	NSE   Indicator `json:"nse"`
	PBIAS Indicator `json:"pbias"`
	R2    Indicator `json:"r2"`
}

type Indicator struct {
	Value  *float64 `json:"value"`
	Reason string   `json:"reason,omitempty"`
}

func NewIndicator(i performance.Indicator) Indicator {
	if !i.Defined() || math.IsNaN(i.Value) || math.IsInf(i.Value, 0) {
		reason := "undefined"
		if i.Reason != nil {
			reason = i.Reason.Error()
		}
		return Indicator{Reason: reason}
	}
	v := i.Value
	return Indicator{Value: &v}
}

func NewPerformance(p performance.Performance) Performance {
	return Performance{
		RMSE:  p.RMSE,
		NSE:   NewIndicator(p.NSE),
		PBIAS: NewIndicator(p.PBIAS),
		R2:    NewIndicator(p.R2),
	}
}

// FlowSummary describes the simulated discharge series
type FlowSummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	P05    float64 `json:"p05"`
	P95    float64 `json:"p95"`
	Volume float64 `json:"volume"`
}

// LedgerRow represents one timestep in the run ledger
type LedgerRow struct {
	Index                  int     `json:"index"`
	Precipitation          float64 `json:"precipitation"`
	Evapotranspiration     float64 `json:"evapotranspiration"`
	ObservedDischarge      float64 `json:"observed_discharge"`
	Regime                 string  `json:"regime"` // "DEFICIT", "DRY", "STORING", "SPILLING"
	Infiltration           float64 `json:"infiltration"`
	RealEvapotranspiration float64 `json:"real_evapotranspiration"`
	Storage                float64 `json:"storage"`
	SurfaceFlow            float64 `json:"surface_flow"`
	Runoff                 float64 `json:"runoff"`
	IntegratedRunoff       float64 `json:"integrated_runoff"`
	SimulatedFlow          float64 `json:"simulated_flow"`
	Residual               float64 `json:"residual"`
}

// LedgerResponse is returned for a cached run
type LedgerResponse struct {
	ID     string      `json:"id"`
	Ledger []LedgerRow `json:"ledger"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
	Skipped    []SkippedVariation `json:"skipped,omitempty"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Rank        int              `json:"rank"`
	Name        string           `json:"name"`
	Parameters  ParametersConfig `json:"parameters"`
	Performance Performance      `json:"performance"`
	Flow        FlowSummary      `json:"flow"`
}

// SkippedVariation names a variation that could not run
type SkippedVariation struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ParameterInfo describes a model parameter
type ParameterInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Unit        string  `json:"unit,omitempty"`
	Default     float64 `json:"default"`
	Current     float64 `json:"current"`
	EnvVar      string  `json:"env_var"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
