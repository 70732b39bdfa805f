package models

import "rainrunoff/internal/model"

// SimulateRequest represents the request body for running a simulation
type SimulateRequest struct {
	Observations model.ObservationSet `json:"observations"`
	Parameters   ParametersConfig     `json:"parameters,omitempty"`
	Options      SimulateOptions      `json:"options,omitempty"`
}

// ParametersConfig defines model parameters; zero fields fall back to the
// server's configured parameters.
type ParametersConfig struct {
	Name                        string  `json:"name,omitempty"`
	SoilPorosity                float64 `json:"soil_porosity,omitempty"`
	SoilSaturatedConductivity   float64 `json:"soil_saturated_conductivity,omitempty"`
	SoilGroundwaterConductivity float64 `json:"soil_groundwater_conductivity,omitempty"`
	ChannelConductivity         float64 `json:"channel_conductivity,omitempty"`
	PotentialEvapotranspiration float64 `json:"potential_evapotranspiration,omitempty"`
	ReservoirCapacity           float64 `json:"reservoir_capacity,omitempty"`
}

// SimulateOptions contains optional run parameters
type SimulateOptions struct {
	LimitTimesteps int  `json:"limit_timesteps,omitempty"` // 0 = all
	IncludeLedger  bool `json:"include_ledger,omitempty"`  // default: false
}

// CompareRequest runs several parameter variations over the same observations
type CompareRequest struct {
	Observations   model.ObservationSet `json:"observations"`
	BaseParameters ParametersConfig     `json:"base_parameters,omitempty"`
	Variations     []Variation          `json:"variations" binding:"required,min=1,dive"`
}

// Variation defines a variation to test
type Variation struct {
	Name       string           `json:"name" binding:"required"`
	Parameters ParametersConfig `json:"parameters"`
}
