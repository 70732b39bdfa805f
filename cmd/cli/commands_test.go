package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSingleReferenceScenario(t *testing.T) {
	out, err := runCLI(t, "single", "-p", "10", "-e", "2", "-q", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Infiltration            = 1.000000")
	assert.Contains(t, out, "Runoff                  = 0.000000")
	assert.Contains(t, out, "Channel flow            = 0.000102")
	assert.Contains(t, out, "NSE   = NaN (zero observed variance)")
}

func TestSingleRequiresFlags(t *testing.T) {
	_, err := runCLI(t, "single", "-p", "10")
	assert.Error(t, err)
}

func TestSingleRejectsUnstableChannel(t *testing.T) {
	_, err := runCLI(t, "single", "-p", "10", "-e", "2", "-q", "1", "--channel-conductivity", "1.2")
	assert.ErrorContains(t, err, "channel_conductivity")
}

func TestParamsPrintsOverrides(t *testing.T) {
	out, err := runCLI(t, "params", "--reservoir-capacity", "42")
	require.NoError(t, err)

	assert.Contains(t, out, "reservoir_capacity: 42")
	assert.Contains(t, out, "soil_porosity: 0.3")
}

func TestSimulateWritesLedger(t *testing.T) {
	dir := t.TempDir()
	obs := filepath.Join(dir, "obs.csv")
	require.NoError(t, os.WriteFile(obs, []byte("precipitation,evapotranspiration,observed_discharge\n10,2,1\n12,2,1.2\n0,1,0.9\n"), 0o644))
	outPath := filepath.Join(dir, "results", "flow.csv")

	out, err := runCLI(t, "simulate", "--data", obs, "--out", outPath, "--n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 rows")
	assert.Contains(t, out, "Timesteps=2")

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
