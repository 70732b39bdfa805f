package model

import "fmt"

// Parameters defines the soil, reservoir and channel constants of the model.
// Units:
// - SoilPorosity: fraction 0..1 of precipitation entering the soil column
// - SoilSaturatedConductivity, SoilGroundwaterConductivity: runoff fractions per timestep
// - ChannelConductivity: linear-reservoir constant, stable in (0, 1)
// - PotentialEvapotranspiration: fraction of precipitation available to evaporate
// - ReservoirCapacity: mm
type Parameters struct {
	SoilPorosity                float64
	SoilSaturatedConductivity   float64
	SoilGroundwaterConductivity float64
	ChannelConductivity         float64
	PotentialEvapotranspiration float64
	ReservoirCapacity           float64
}

// DefaultParameters returns the reference parameter set.
func DefaultParameters() Parameters {
	return Parameters{
		SoilPorosity:                0.3,
		SoilSaturatedConductivity:   0.1,
		SoilGroundwaterConductivity: 0.01,
		ChannelConductivity:         0.02,
		PotentialEvapotranspiration: 0.3,
		ReservoirCapacity:           10,
	}
}

func (p Parameters) Validate() error {
	checks := []struct {
		field string
		value float64
	}{
		{"soil_porosity", p.SoilPorosity},
		{"soil_saturated_conductivity", p.SoilSaturatedConductivity},
		{"soil_groundwater_conductivity", p.SoilGroundwaterConductivity},
		{"potential_evapotranspiration", p.PotentialEvapotranspiration},
		{"reservoir_capacity", p.ReservoirCapacity},
	}
	for _, c := range checks {
		if !(c.value > 0) {
			return &ConfigurationError{Field: c.field, Value: c.value, Reason: "must be > 0"}
		}
	}
	return ValidateChannelConductivity(p.ChannelConductivity)
}

// ValidateChannelConductivity rejects values that make the routing recurrence
// unstable or sign-inconsistent.
func ValidateChannelConductivity(kc float64) error {
	if !(kc > 0 && kc < 1) {
		return &ConfigurationError{Field: "channel_conductivity", Value: kc, Reason: "must be in (0, 1)"}
	}
	return nil
}

func (p Parameters) String() string {
	return fmt.Sprintf("porosity=%g ks=%g kf=%g kc=%g pet=%g capacity=%g",
		p.SoilPorosity,
		p.SoilSaturatedConductivity,
		p.SoilGroundwaterConductivity,
		p.ChannelConductivity,
		p.PotentialEvapotranspiration,
		p.ReservoirCapacity,
	)
}
