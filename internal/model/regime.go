package model

// Regime is a human-friendly label for the water balance of a timestep.
// Keep these values stable; they are intended for CSV output.
type Regime string

const (
	RegimeDeficit  Regime = "DEFICIT"
	RegimeDry      Regime = "DRY"
	RegimeStoring  Regime = "STORING"
	RegimeSpilling Regime = "SPILLING"
)

// RegimeFromBalance classifies a timestep from its infiltration, storage and surface flow.
func RegimeFromBalance(infiltration, storage, surfaceFlow float64) Regime {
	switch {
	case infiltration < 0:
		return RegimeDeficit
	case surfaceFlow > 0:
		return RegimeSpilling
	case storage > 0:
		return RegimeStoring
	default:
		return RegimeDry
	}
}
