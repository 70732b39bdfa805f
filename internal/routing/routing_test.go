package routing

import (
	"errors"
	"testing"

	"rainrunoff/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoefficientsReference(t *testing.T) {
	c, err := NewCoefficients(0.02)
	require.NoError(t, err)

	assert.InDelta(t, 3.9204, c.Denominator, 1e-12)
	assert.InDelta(t, 0.0004/3.9204, c.C1, 1e-15)
	assert.InDelta(t, -1.96/3.9204, c.C2, 1e-12)
	assert.InDelta(t, -0.0396/3.9204, c.C3, 1e-12)
}

func TestNewCoefficientsDenominatorPositive(t *testing.T) {
	for kc := 0.001; kc < 1; kc += 0.001 {
		c, err := NewCoefficients(kc)
		require.NoError(t, err)
		assert.Greater(t, c.Denominator, 0.0, "kc=%g", kc)
	}
}

func TestNewCoefficientsRejectsUnstable(t *testing.T) {
	for _, kc := range []float64{0, -0.1, 1, 1.5} {
		_, err := NewCoefficients(kc)
		var cfgErr *model.ConfigurationError
		assert.True(t, errors.As(err, &cfgErr), "kc=%g", kc)
	}
}

func TestCumulativeTrapezoid(t *testing.T) {
	got := CumulativeTrapezoid([]float64{1, 2, 3}, 0.5)
	assert.InDeltaSlice(t, []float64{0.5, 2.0, 4.5}, got, 1e-12)

	assert.Equal(t, []float64{7}, CumulativeTrapezoid([]float64{3}, 7))
	assert.Nil(t, CumulativeTrapezoid(nil, 1))
}

func TestRouteSinglePoint(t *testing.T) {
	kc, seed, r := 0.02, 1.0, 0.4
	c, err := NewCoefficients(kc)
	require.NoError(t, err)

	flow, err := Route([]float64{r}, kc, seed)
	require.NoError(t, err)
	require.Len(t, flow, 1)
	assert.InDelta(t, c.C1*seed+(c.C2+c.C3)*r, flow[0], 1e-15)
}

func TestRouteReferenceScenario(t *testing.T) {
	flow, err := Route([]float64{0}, 0.02, 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 0.000102, flow[0], 1e-6)
}

func TestRouteSeries(t *testing.T) {
	flow, integrated, err := RouteDetailed([]float64{1, 2, 3}, 0.5, 0.5)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0.5, 2.0, 4.5}, integrated, 1e-12)
	// First runoff sample is a constant term, not a lagged one; the values
	// stay negative because nothing is floored.
	assert.InDeltaSlice(t, []float64{-13.0 / 18, -8.0 / 9, -17.0 / 18}, flow, 1e-12)
}

func TestRouteDeterministic(t *testing.T) {
	runoff := []float64{0.3, 1.7, 0.2, 0, 4.1, 2.2}
	first, err := Route(runoff, 0.37, 2.5)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Route(runoff, 0.37, 2.5)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRouteErrors(t *testing.T) {
	_, err := Route(nil, 0.02, 1)
	assert.ErrorIs(t, err, model.ErrEmptySeries)

	_, err = Route([]float64{1}, 1.2, 1)
	var cfgErr *model.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}
