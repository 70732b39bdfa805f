package model

import (
	"errors"
	"fmt"
	"math"
)

// ObservedInputs is one batch of forcing and observation series.
// All three series have the same length after construction.
type ObservedInputs struct {
	Precipitation      []float64 // mm
	Evapotranspiration []float64 // mm
	ObservedDischarge  []float64 // m3/s

	// SeedDischarge is the routing boundary condition (m3/s).
	SeedDischarge float64
}

// ObservationSet matches the JSON shape accepted by the loaders and the API.
//
// Example:
//
//	{
//	  "precipitation": [10, 12.5],
//	  "evapotranspiration": [2, 2.1],
//	  "observed_discharge": [1.0, 1.4]
//	}
type ObservationSet struct {
	Precipitation      []float64 `json:"precipitation"`
	Evapotranspiration []float64 `json:"evapotranspiration"`
	ObservedDischarge  []float64 `json:"observed_discharge"`
	SeedDischarge      *float64  `json:"seed_discharge,omitempty"`
}

// NewObservedInputs validates the series and broadcasts any length-1 series
// to the common length. The returned slices are copies.
func NewObservedInputs(precipitation, evapotranspiration, observed []float64) (ObservedInputs, error) {
	fields := []struct {
		name   string
		values []float64
	}{
		{"precipitation", precipitation},
		{"evapotranspiration", evapotranspiration},
		{"observed_discharge", observed},
	}

	n := 0
	for _, f := range fields {
		if len(f.values) == 0 {
			return ObservedInputs{}, &InputError{Field: f.name, Err: ErrEmptySeries}
		}
		for i, v := range f.values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return ObservedInputs{}, &InputError{Field: f.name, Row: i + 1, Err: errors.New("value is not finite")}
			}
		}
		if len(f.values) > n {
			n = len(f.values)
		}
	}

	out := make([][]float64, len(fields))
	for i, f := range fields {
		b, err := Broadcast(f.values, n)
		if err != nil {
			return ObservedInputs{}, &InputError{Field: f.name, Err: err}
		}
		out[i] = b
	}

	return ObservedInputs{
		Precipitation:      out[0],
		Evapotranspiration: out[1],
		ObservedDischarge:  out[2],
		SeedDischarge:      out[2][0],
	}, nil
}

// ScalarInputs builds the single-timestep case.
func ScalarInputs(precipitation, evapotranspiration, observed float64) (ObservedInputs, error) {
	return NewObservedInputs([]float64{precipitation}, []float64{evapotranspiration}, []float64{observed})
}

// ToInputs converts a decoded set, applying an explicit seed if present.
func (s ObservationSet) ToInputs() (ObservedInputs, error) {
	in, err := NewObservedInputs(s.Precipitation, s.Evapotranspiration, s.ObservedDischarge)
	if err != nil {
		return ObservedInputs{}, err
	}
	if s.SeedDischarge != nil {
		if math.IsNaN(*s.SeedDischarge) || math.IsInf(*s.SeedDischarge, 0) {
			return ObservedInputs{}, &InputError{Field: "seed_discharge", Err: errors.New("value is not finite")}
		}
		in.SeedDischarge = *s.SeedDischarge
	}
	return in, nil
}

func (in ObservedInputs) Len() int { return len(in.Precipitation) }

// Head keeps the first n timesteps. n <= 0 or n >= Len returns in unchanged.
// The seed discharge is kept.
func (in ObservedInputs) Head(n int) ObservedInputs {
	if n <= 0 || n >= in.Len() {
		return in
	}
	in.Precipitation = in.Precipitation[:n]
	in.Evapotranspiration = in.Evapotranspiration[:n]
	in.ObservedDischarge = in.ObservedDischarge[:n]
	return in
}

// Broadcast returns a copy of values with length n. A length-1 slice is
// repeated; any other length must already equal n.
func Broadcast(values []float64, n int) ([]float64, error) {
	switch {
	case len(values) == 0:
		return nil, ErrEmptySeries
	case len(values) == n:
		out := make([]float64, n)
		copy(out, values)
		return out, nil
	case len(values) == 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = values[0]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(values), n)
	}
}
