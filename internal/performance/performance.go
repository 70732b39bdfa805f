// Package performance scores simulated discharge against observations.
//
// RMSE is always defined for a non-empty pair of series. NSE, PBIAS and R2
// can be undefined (for example when the observed series is constant); those
// cases are reported through Indicator.Reason instead of a silent Inf or a
// misleading finite number.
package performance

import (
	"errors"
	"fmt"
	"math"

	"rainrunoff/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrZeroObservedVariance  = errors.New("zero observed variance")
	ErrZeroSimulatedVariance = errors.New("zero simulated variance")
	ErrZeroObservedVolume    = errors.New("zero observed volume")
	ErrZeroSimulatedSpread   = errors.New("simulated series equals the observed mean")
)

// varianceTolerance scales the sum of squares below which a variance is
// treated as zero.
const varianceTolerance = 1e-12

// Indicator is a metric value that may be undefined.
type Indicator struct {
	Value  float64
	Reason error // nil when Value is defined
}

func (i Indicator) Defined() bool { return i.Reason == nil }

func (i Indicator) String() string {
	if !i.Defined() {
		return fmt.Sprintf("NaN (%v)", i.Reason)
	}
	return fmt.Sprintf("%g", i.Value)
}

func undefined(reason error) Indicator {
	return Indicator{Value: math.NaN(), Reason: reason}
}

// Performance bundles the goodness-of-fit measures of one run.
type Performance struct {
	RMSE  float64
	NSE   Indicator
	PBIAS Indicator // relative volume error, (Σsim-Σobs)/Σobs
	R2    Indicator // squared Pearson correlation
}

// Compute scores simulated against observed. A single observed value is
// compared against every simulated sample.
func Compute(simulated, observed []float64) (Performance, error) {
	if len(simulated) == 0 {
		return Performance{}, fmt.Errorf("simulated: %w", model.ErrEmptySeries)
	}
	obs, err := model.Broadcast(observed, len(simulated))
	if err != nil {
		return Performance{}, fmt.Errorf("observed: %w", err)
	}

	return Performance{
		RMSE:  RMSE(simulated, obs),
		NSE:   NSE(simulated, obs),
		PBIAS: PBIAS(simulated, obs),
		R2:    R2(simulated, obs),
	}, nil
}

// RMSE is the root-mean-square error. Both series must have the same length.
func RMSE(simulated, observed []float64) float64 {
	return floats.Distance(simulated, observed, 2) / math.Sqrt(float64(len(simulated)))
}

// NSE is the Nash-Sutcliffe efficiency in the form
// 1 - Σ(sim-obs)² / Σ(sim-mean(obs))².
// A constant observed series leaves it undefined.
func NSE(simulated, observed []float64) Indicator {
	if isZeroVariance(sumSquaredDeviations(observed), observed) {
		return undefined(ErrZeroObservedVariance)
	}
	meanObs := stat.Mean(observed, nil)
	spread := 0.0
	for _, v := range simulated {
		d := v - meanObs
		spread += d * d
	}
	if spread == 0 || spread <= varianceTolerance*floats.Dot(observed, observed) {
		return undefined(ErrZeroSimulatedSpread)
	}
	d := floats.Distance(simulated, observed, 2)
	return Indicator{Value: 1 - d*d/spread}
}

// PBIAS is the relative volume error of the simulation.
func PBIAS(simulated, observed []float64) Indicator {
	sumObs := floats.Sum(observed)
	if sumObs == 0 {
		return undefined(ErrZeroObservedVolume)
	}
	return Indicator{Value: (floats.Sum(simulated) - sumObs) / sumObs}
}

// R2 is the coefficient of determination of a linear fit, the squared
// Pearson correlation between the series.
func R2(simulated, observed []float64) Indicator {
	if len(observed) < 2 || isZeroVariance(sumSquaredDeviations(observed), observed) {
		return undefined(ErrZeroObservedVariance)
	}
	if isZeroVariance(sumSquaredDeviations(simulated), simulated) {
		return undefined(ErrZeroSimulatedVariance)
	}
	r := stat.Correlation(simulated, observed, nil)
	return Indicator{Value: r * r}
}

func sumSquaredDeviations(x []float64) float64 {
	mean := stat.Mean(x, nil)
	ss := 0.0
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return ss
}

// isZeroVariance treats ss as zero when it is negligible next to the
// magnitude of the samples, which absorbs rounding in the mean.
func isZeroVariance(ss float64, x []float64) bool {
	if ss == 0 {
		return true
	}
	return ss <= varianceTolerance*floats.Dot(x, x)
}
