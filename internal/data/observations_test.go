package data

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rainrunoff/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadObservationsCSV(t *testing.T) {
	src := `# daily forcing, basin 12
Observed_Discharge, precipitation, evapotranspiration
1.0, 10, 2
1.4, 12.5, 2.1
`
	in, err := ReadObservationsCSV(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 12.5}, in.Precipitation)
	assert.Equal(t, []float64{2, 2.1}, in.Evapotranspiration)
	assert.Equal(t, []float64{1.0, 1.4}, in.ObservedDischarge)
	assert.Equal(t, 1.0, in.SeedDischarge)
}

func TestReadObservationsCSVErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		field  string
		row    int
		column int
	}{
		{
			name:  "missing column",
			src:   "precipitation,evapotranspiration\n1,2\n",
			field: ColObservedDischarge,
			row:   1,
		},
		{
			name:   "not a number",
			src:    "precipitation,evapotranspiration,observed_discharge\n10,2,1\n5,x,1.2\n",
			field:  ColEvapotranspiration,
			row:    3,
			column: 2,
		},
		{
			name:   "short row",
			src:    "precipitation,evapotranspiration,observed_discharge\n10,2\n",
			field:  ColObservedDischarge,
			row:    2,
			column: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadObservationsCSV(strings.NewReader(tt.src))
			var inErr *model.InputError
			require.True(t, errors.As(err, &inErr), "got %v", err)
			assert.Equal(t, tt.field, inErr.Field)
			assert.Equal(t, tt.row, inErr.Row)
			assert.Equal(t, tt.column, inErr.Column)
		})
	}
}

func TestReadObservationsCSVEmpty(t *testing.T) {
	_, err := ReadObservationsCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, model.ErrEmptySeries)

	_, err = ReadObservationsCSV(strings.NewReader("precipitation,evapotranspiration,observed_discharge\n"))
	assert.ErrorIs(t, err, model.ErrEmptySeries)
}

func TestLoadObservationsJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "obs.json")
	body := `{"precipitation":[10,4],"evapotranspiration":[2],"observed_discharge":[1.0,1.2],"seed_discharge":0.8}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	in, err := LoadObservations(path)
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 2}, in.Evapotranspiration)
	assert.Equal(t, 0.8, in.SeedDischarge)
}

func TestLoadObservationsCSVFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "obs.CSV")
	require.NoError(t, os.WriteFile(path, []byte("precipitation,evapotranspiration,observed_discharge\n10,2,1\n"), 0o644))

	in, err := LoadObservations(path)
	require.NoError(t, err)
	assert.Equal(t, 1, in.Len())
}

func TestLoadObservationsUnsupported(t *testing.T) {
	_, err := LoadObservations("obs.parquet")
	assert.ErrorContains(t, err, "unsupported observation file")
}
