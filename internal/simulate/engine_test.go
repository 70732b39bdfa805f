package simulate

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"rainrunoff/internal/model"
	"rainrunoff/internal/performance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunReferenceScenario(t *testing.T) {
	in, err := model.ScalarInputs(10, 2, 1.0)
	require.NoError(t, err)

	res, err := New(zap.NewNop()).Run(model.DefaultParameters(), in)
	require.NoError(t, err)
	require.Len(t, res.Ledger, 1)

	row := res.Ledger[0]
	assert.InDelta(t, 1.0, row.Infiltration, 1e-12)
	assert.InDelta(t, 1.0, row.RealEvapotranspiration, 1e-12)
	assert.InDelta(t, 0.0, row.Storage, 1e-12)
	assert.InDelta(t, 0.0, row.SurfaceFlow, 1e-12)
	assert.InDelta(t, 0.0, row.Runoff, 1e-12)
	assert.InDelta(t, 1.0, row.IntegratedRunoff, 1e-12)
	assert.InDelta(t, 0.000102, row.SimulatedFlow, 1e-6)
	assert.Equal(t, model.RegimeDry, row.Regime)

	assert.InDelta(t, 0.9999, res.Performance.RMSE, 1e-4)
	assert.False(t, res.Performance.NSE.Defined())
	assert.ErrorIs(t, res.Performance.NSE.Reason, performance.ErrZeroObservedVariance)
}

func TestRunSeries(t *testing.T) {
	params := model.Parameters{
		SoilPorosity:                0.8,
		SoilSaturatedConductivity:   0.1,
		SoilGroundwaterConductivity: 0.01,
		ChannelConductivity:         0.4,
		PotentialEvapotranspiration: 0.1,
		ReservoirCapacity:           5,
	}
	in, err := model.NewObservedInputs(
		[]float64{20, 5, 0, 40},
		[]float64{2, 1, 3, 1},
		[]float64{1.0, 1.3, 0.9, 2.4},
	)
	require.NoError(t, err)

	res, err := New(nil).Run(params, in)
	require.NoError(t, err)

	require.Len(t, res.SimulatedFlow, 4)
	assert.Equal(t, res.SimulatedFlow[2], res.Ledger[2].SimulatedFlow)
	assert.Equal(t, res.Ledger[3].SimulatedFlow-2.4, res.Ledger[3].Residual)
	assert.Equal(t, model.RegimeSpilling, res.Ledger[0].Regime)
	assert.Equal(t, model.RegimeStoring, res.Ledger[1].Regime)
	assert.Equal(t, model.RegimeDeficit, res.Ledger[2].Regime)
	assert.True(t, res.Performance.NSE.Defined())
	assert.Equal(t, 4, res.Summary.Count)
}

func TestRunRejectsInvalidParameters(t *testing.T) {
	in, err := model.ScalarInputs(10, 2, 1)
	require.NoError(t, err)

	params := model.DefaultParameters()
	params.ChannelConductivity = 1.2

	_, err = New(nil).Run(params, in)
	var cfgErr *model.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestRunRejectsMismatchedInputs(t *testing.T) {
	in := model.ObservedInputs{
		Precipitation:      []float64{1, 2},
		Evapotranspiration: []float64{1},
		ObservedDischarge:  []float64{1, 2},
	}
	_, err := New(nil).Run(model.DefaultParameters(), in)
	assert.ErrorIs(t, err, model.ErrLengthMismatch)

	_, err = New(nil).Run(model.DefaultParameters(), model.ObservedInputs{})
	assert.ErrorIs(t, err, model.ErrEmptySeries)
}

func TestEncodeLedgerCSV(t *testing.T) {
	in, err := model.ScalarInputs(10, 2, 1.0)
	require.NoError(t, err)
	res, err := New(nil).Run(model.DefaultParameters(), in)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeLedgerCSV(&buf, res.Ledger))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "index", records[0][0])
	assert.Equal(t, "simulated_flow", records[0][11])
	assert.Equal(t, "10.000000", records[1][1])
	assert.Equal(t, "DRY", records[1][4])
	assert.Equal(t, "0.000102", records[1][11])
}
