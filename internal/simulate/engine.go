package simulate

import (
	"fmt"

	"rainrunoff/internal/analysis"
	"rainrunoff/internal/balance"
	"rainrunoff/internal/model"
	"rainrunoff/internal/performance"
	"rainrunoff/internal/routing"

	"go.uber.org/zap"
)

type Engine struct {
	log *zap.SugaredLogger
}

// New returns an engine that logs through logger. A nil logger discards output.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{log: logger.Sugar()}
}

// Run executes the water balance, channel routing and scoring stages, in
// that order, over one batch of observations.
func (e *Engine) Run(params model.Parameters, in model.ObservedInputs) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("parameters invalid: %w", err)
	}
	n := in.Len()
	if n == 0 {
		return nil, fmt.Errorf("no observations: %w", model.ErrEmptySeries)
	}
	if len(in.Evapotranspiration) != n || len(in.ObservedDischarge) != n {
		return nil, fmt.Errorf("observations: %w", model.ErrLengthMismatch)
	}

	e.log.Debugw("running water balance", "timesteps", n, "parameters", params.String())
	wb, err := balance.Compute(params, in.Precipitation, in.Evapotranspiration)
	if err != nil {
		return nil, fmt.Errorf("water balance: %w", err)
	}

	e.log.Debugw("routing channel", "kc", params.ChannelConductivity, "seed_discharge", in.SeedDischarge)
	flow, integrated, err := routing.RouteDetailed(wb.Runoff, params.ChannelConductivity, in.SeedDischarge)
	if err != nil {
		return nil, fmt.Errorf("channel routing: %w", err)
	}

	perf, err := performance.Compute(flow, in.ObservedDischarge)
	if err != nil {
		return nil, fmt.Errorf("performance: %w", err)
	}
	if !perf.NSE.Defined() {
		e.log.Warnw("NSE undefined", "reason", perf.NSE.Reason.Error(), "timesteps", n)
	}

	ledger := make([]LedgerRow, 0, n)
	for i := 0; i < n; i++ {
		ledger = append(ledger, LedgerRow{
			Index: i,

			Precipitation:      in.Precipitation[i],
			Evapotranspiration: in.Evapotranspiration[i],
			ObservedDischarge:  in.ObservedDischarge[i],

			Regime: model.RegimeFromBalance(wb.Infiltration[i], wb.Storage[i], wb.SurfaceFlow[i]),

			Infiltration:           wb.Infiltration[i],
			RealEvapotranspiration: wb.RealEvapotranspiration[i],
			Storage:                wb.Storage[i],
			SurfaceFlow:            wb.SurfaceFlow[i],
			Runoff:                 wb.Runoff[i],

			IntegratedRunoff: integrated[i],
			SimulatedFlow:    flow[i],
			Residual:         flow[i] - in.ObservedDischarge[i],
		})
	}

	e.log.Infow("run complete", "timesteps", n, "rmse", perf.RMSE, "nse", perf.NSE.String())

	return &Result{
		Parameters:       params,
		Ledger:           ledger,
		Balance:          wb,
		IntegratedRunoff: integrated,
		SimulatedFlow:    flow,
		Performance:      perf,
		Summary:          analysis.Summarize(flow),
	}, nil
}
