// Package balance implements the water-balance stage: it splits precipitation
// into infiltration, real evapotranspiration, reservoir storage, surface flow
// and the runoff that feeds the channel.
package balance

import (
	"fmt"
	"math"

	"rainrunoff/internal/model"
)

// Compute runs the water balance elementwise over the forcing series.
//
// Each step uses the clamped result of the previous one:
//   - infiltration = porosity*P - ET (may be negative)
//   - realET = min(potentialET*P, infiltration)
//   - storage = min(infiltration - realET, capacity)
//   - surfaceFlow = max(infiltration - realET - storage, 0)
//   - runoff = Ks*(infiltration - realET - storage) + Kf*surfaceFlow
//
// The first runoff term keeps the unfloored excess.
func Compute(params model.Parameters, precipitation, evapotranspiration []float64) (model.WaterBalance, error) {
	if len(precipitation) != len(evapotranspiration) {
		return model.WaterBalance{}, fmt.Errorf("%w: precipitation=%d evapotranspiration=%d",
			model.ErrLengthMismatch, len(precipitation), len(evapotranspiration))
	}

	n := len(precipitation)
	wb := model.WaterBalance{
		Infiltration:           make([]float64, n),
		RealEvapotranspiration: make([]float64, n),
		Storage:                make([]float64, n),
		SurfaceFlow:            make([]float64, n),
		Runoff:                 make([]float64, n),
	}

	for i := 0; i < n; i++ {
		p := precipitation[i]
		infiltration := params.SoilPorosity*p - evapotranspiration[i]
		realET := math.Min(params.PotentialEvapotranspiration*p, infiltration)
		available := infiltration - realET
		storage := math.Min(available, params.ReservoirCapacity)
		excess := available - storage
		surface := math.Max(excess, 0)

		wb.Infiltration[i] = infiltration
		wb.RealEvapotranspiration[i] = realET
		wb.Storage[i] = storage
		wb.SurfaceFlow[i] = surface
		wb.Runoff[i] = params.SoilSaturatedConductivity*excess + params.SoilGroundwaterConductivity*surface
	}
	return wb, nil
}
