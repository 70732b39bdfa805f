package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rainrunoff/internal/config"
	"rainrunoff/internal/data"
	"rainrunoff/internal/log"
	"rainrunoff/internal/model"
	"rainrunoff/internal/simulate"

	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	debug      bool
	overrides  config.ParametersConfig
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "rainrunoff",
		Short:         "Rainfall-runoff water balance and channel routing",
		Long:          `Computes infiltration, real evapotranspiration, storage, surface flow and runoff from precipitation and evapotranspiration, routes the runoff through a linear-reservoir channel and scores the simulated discharge against observations (RMSE, NSE, PBIAS, R2).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.Init(opts.debug)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Path to YAML config (optional, defaults to reference parameters)")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	pf.Float64Var(&opts.overrides.SoilPorosity, "soil-porosity", 0, "Override soil porosity")
	pf.Float64Var(&opts.overrides.SoilSaturatedConductivity, "soil-saturated-conductivity", 0, "Override soil saturated conductivity")
	pf.Float64Var(&opts.overrides.SoilGroundwaterConductivity, "soil-groundwater-conductivity", 0, "Override soil groundwater conductivity")
	pf.Float64Var(&opts.overrides.ChannelConductivity, "channel-conductivity", 0, "Override channel conductivity, in (0, 1)")
	pf.Float64Var(&opts.overrides.PotentialEvapotranspiration, "potential-evapotranspiration", 0, "Override potential evapotranspiration")
	pf.Float64Var(&opts.overrides.ReservoirCapacity, "reservoir-capacity", 0, "Override reservoir capacity (mm)")

	root.AddCommand(newSimulateCmd(opts), newSingleCmd(opts), newParamsCmd(opts))
	return root
}

// parameters resolves defaults < config file < environment < flags.
func (o *options) parameters() (model.Parameters, error) {
	cfg, err := o.config()
	if err != nil {
		return model.Parameters{}, err
	}
	return cfg.Parameters.ToModelParams(), nil
}

func (o *options) config() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	cfg.Parameters = config.MergeParameters(cfg.Parameters, o.overrides)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSimulateCmd(opts *options) *cobra.Command {
	var dataPath, outPath string
	var n int
	cmd := &cobra.Command{
		Use:     "simulate",
		Short:   "Run the model over an observation file (CSV or JSON)",
		Example: "  rainrunoff simulate --data observations.csv --config examples/config.yaml --out results/flow.csv",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := opts.parameters()
			if err != nil {
				return err
			}
			in, err := data.LoadObservations(dataPath)
			if err != nil {
				return err
			}
			in = in.Head(n)

			res, err := simulate.New(log.Logger()).Run(params, in)
			if err != nil {
				return err
			}

			if outPath != "" {
				// ensure output dir exists
				if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
					return err
				}
				if err := simulate.WriteLedgerCSV(outPath, res.Ledger); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(res.Ledger), outPath)
			}
			printResult(cmd.OutOrStdout(), res, false)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "observations.csv", "Path to observations (.csv or .json)")
	cmd.Flags().StringVar(&outPath, "out", "", "Optional output CSV path for the per-timestep ledger")
	cmd.Flags().IntVar(&n, "n", 0, "Optional: limit to first N timesteps (0=all)")
	return cmd
}

func newSingleCmd(opts *options) *cobra.Command {
	var precipitation, evapotranspiration, observed float64
	cmd := &cobra.Command{
		Use:   "single",
		Short: "Run the model for one timestep",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := opts.parameters()
			if err != nil {
				return err
			}
			in, err := model.ScalarInputs(precipitation, evapotranspiration, observed)
			if err != nil {
				return err
			}
			res, err := simulate.New(log.Logger()).Run(params, in)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res, true)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&precipitation, "precipitation", "p", 0, "Precipitation (mm)")
	cmd.Flags().Float64VarP(&evapotranspiration, "evapotranspiration", "e", 0, "Evapotranspiration (mm)")
	cmd.Flags().Float64VarP(&observed, "observed", "q", 0, "Observed discharge (m3/s)")
	_ = cmd.MarkFlagRequired("precipitation")
	_ = cmd.MarkFlagRequired("evapotranspiration")
	_ = cmd.MarkFlagRequired("observed")
	return cmd
}

func newParamsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			raw, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}
}

func printResult(w io.Writer, res *simulate.Result, stages bool) {
	if stages {
		r := res.Ledger[0]
		fmt.Fprintf(w, "Infiltration            = %.6f\n", r.Infiltration)
		fmt.Fprintf(w, "Real evapotranspiration = %.6f\n", r.RealEvapotranspiration)
		fmt.Fprintf(w, "Storage                 = %.6f\n", r.Storage)
		fmt.Fprintf(w, "Surface flow            = %.6f\n", r.SurfaceFlow)
		fmt.Fprintf(w, "Runoff                  = %.6f\n", r.Runoff)
		fmt.Fprintf(w, "Channel flow            = %.6f\n", r.SimulatedFlow)
	} else {
		s := res.Summary
		fmt.Fprintf(w, "Timesteps=%d flow min=%.6f mean=%.6f max=%.6f\n", s.Count, s.Min, s.Mean, s.Max)
	}
	p := res.Performance
	fmt.Fprintf(w, "RMSE  = %.6f\n", p.RMSE)
	fmt.Fprintf(w, "NSE   = %s\n", p.NSE)
	fmt.Fprintf(w, "PBIAS = %s\n", p.PBIAS)
	fmt.Fprintf(w, "R2    = %s\n", p.R2)
}
