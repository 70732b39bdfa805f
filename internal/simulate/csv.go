package simulate

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return EncodeLedgerCSV(f, ledger)
}

func EncodeLedgerCSV(out io.Writer, ledger []LedgerRow) error {
	w := csv.NewWriter(out)

	header := []string{
		"index",
		"precipitation",
		"evapotranspiration",
		"observed_discharge",
		"regime",
		"infiltration",
		"real_evapotranspiration",
		"storage",
		"surface_flow",
		"runoff",
		"integrated_runoff",
		"simulated_flow",
		"residual",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtFloat(r.Precipitation),
			fmtFloat(r.Evapotranspiration),
			fmtFloat(r.ObservedDischarge),
			string(r.Regime),
			fmtFloat(r.Infiltration),
			fmtFloat(r.RealEvapotranspiration),
			fmtFloat(r.Storage),
			fmtFloat(r.SurfaceFlow),
			fmtFloat(r.Runoff),
			fmtFloat(r.IntegratedRunoff),
			fmtFloat(r.SimulatedFlow),
			fmtFloat(r.Residual),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
