package model

// WaterBalance holds the intermediate series of the water-balance stage.
// Every series has the length of the forcing inputs. Units are mm per timestep.
type WaterBalance struct {
	Infiltration           []float64
	RealEvapotranspiration []float64
	Storage                []float64
	SurfaceFlow            []float64
	Runoff                 []float64
}

func (w WaterBalance) Len() int { return len(w.Runoff) }
