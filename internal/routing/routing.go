// Package routing turns runoff into simulated channel discharge.
//
// The channel is a discretized linear reservoir. Its transfer function,
// discretized with a bilinear approximation, gives a second-order recurrence
// whose coefficients depend only on the channel conductivity Kc:
//
//	denom = Kc² - 4Kc + 4
//	c1 = Kc² / denom
//	c2 = (2Kc - 2) / denom
//	c3 = (Kc² - 2Kc) / denom
//
// denom = (Kc-2)² is positive for every Kc in the accepted range (0, 1).
package routing

import (
	"rainrunoff/internal/model"

	"gonum.org/v1/gonum/floats"
)

// Coefficients are the recurrence weights for one channel conductivity.
type Coefficients struct {
	C1          float64 // weight of the integrated runoff
	C2          float64 // weight of the first runoff sample
	C3          float64 // weight of the current runoff sample
	Denominator float64
}

// NewCoefficients derives the recurrence weights, failing fast on an
// unstable channel conductivity.
func NewCoefficients(kc float64) (Coefficients, error) {
	if err := model.ValidateChannelConductivity(kc); err != nil {
		return Coefficients{}, err
	}
	kc2 := kc * kc
	denom := kc2 - 4*kc + 4
	return Coefficients{
		C1:          kc2 / denom,
		C2:          (2*kc - 2) / denom,
		C3:          (kc2 - 2*kc) / denom,
		Denominator: denom,
	}, nil
}

// CumulativeTrapezoid integrates y over the unit-spaced index 0..N-1.
// The accumulator starts at initial, so out[0] == initial.
func CumulativeTrapezoid(y []float64, initial float64) []float64 {
	if len(y) == 0 {
		return nil
	}
	steps := make([]float64, len(y))
	steps[0] = initial
	for i := 1; i < len(y); i++ {
		steps[i] = (y[i-1] + y[i]) / 2
	}
	return floats.CumSum(make([]float64, len(y)), steps)
}

// Route applies the channel recurrence to runoff, seeding the integral with
// the observed discharge. Negative flows are returned as computed.
func Route(runoff []float64, kc, seed float64) ([]float64, error) {
	flow, _, err := RouteDetailed(runoff, kc, seed)
	return flow, err
}

// RouteDetailed is Route that also returns the integrated runoff.
func RouteDetailed(runoff []float64, kc, seed float64) (flow, integrated []float64, err error) {
	if len(runoff) == 0 {
		return nil, nil, model.ErrEmptySeries
	}
	c, err := NewCoefficients(kc)
	if err != nil {
		return nil, nil, err
	}

	integrated = CumulativeTrapezoid(runoff, seed)
	base := c.C2 * runoff[0]
	flow = make([]float64, len(runoff))
	for i, r := range runoff {
		flow[i] = c.C1*integrated[i] + base + c.C3*r
	}
	return flow, integrated, nil
}
