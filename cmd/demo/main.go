package main

import (
	"flag"
	"fmt"
	"os"

	"rainrunoff/internal/config"
	"rainrunoff/internal/model"
	"rainrunoff/internal/routing"
	"rainrunoff/internal/simulate"
)

// Demo:
// - Use the reference parameters (or --config)
// - Run one timestep of precipitation/evapotranspiration/observed discharge
// - Print every stage to show how the pieces fit together
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	p := flag.Float64("p", 10, "Precipitation (mm)")
	e := flag.Float64("e", 2, "Evapotranspiration (mm)")
	q := flag.Float64("q", 1, "Observed discharge (m3/s)")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/demo.csv)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	params := cfg.Parameters.ToModelParams()

	in, err := model.ScalarInputs(*p, *e, *q)
	if err != nil {
		panic(err)
	}

	coef, err := routing.NewCoefficients(params.ChannelConductivity)
	if err != nil {
		panic(err)
	}

	res, err := simulate.New(nil).Run(params, in)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Parameters: %s\n", params)
	fmt.Printf("Routing: denom=%.6f c1=%.7f c2=%.6f c3=%.6f\n", coef.Denominator, coef.C1, coef.C2, coef.C3)
	for _, r := range res.Ledger {
		fmt.Printf(
			"t=%d P=%.2f ET=%.2f Qobs=%.3f infil=%.4f realET=%.4f storage=%.4f surface=%.4f runoff=%.4f Qsim=%.6f regime=%s\n",
			r.Index,
			r.Precipitation,
			r.Evapotranspiration,
			r.ObservedDischarge,
			r.Infiltration,
			r.RealEvapotranspiration,
			r.Storage,
			r.SurfaceFlow,
			r.Runoff,
			r.SimulatedFlow,
			r.Regime,
		)
	}
	fmt.Printf("RMSE = %.6f\n", res.Performance.RMSE)
	fmt.Printf("NSE = %s\n", res.Performance.NSE)

	if *outCSV != "" {
		if err := simulate.WriteLedgerCSV(*outCSV, res.Ledger); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outCSV)
	}
}
