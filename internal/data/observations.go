package data

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"rainrunoff/internal/model"
)

// Column names accepted in observation CSV headers.
const (
	ColPrecipitation      = "precipitation"
	ColEvapotranspiration = "evapotranspiration"
	ColObservedDischarge  = "observed_discharge"
)

// LoadObservations reads a CSV or JSON observation file, chosen by extension.
func LoadObservations(path string) (model.ObservedInputs, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadObservationsJSON(path)
	case ".csv", ".txt":
		return LoadObservationsCSV(path)
	default:
		return model.ObservedInputs{}, fmt.Errorf("unsupported observation file %q (want .csv or .json)", path)
	}
}

func LoadObservationsJSON(path string) (model.ObservedInputs, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.ObservedInputs{}, err
	}
	var set model.ObservationSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return model.ObservedInputs{}, fmt.Errorf("failed to parse observations file: %w", err)
	}
	return set.ToInputs()
}

func LoadObservationsCSV(path string) (model.ObservedInputs, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.ObservedInputs{}, err
	}
	defer f.Close()
	return ReadObservationsCSV(f)
}

// ReadObservationsCSV parses a header row naming the three observation
// columns (any order, case-insensitive) followed by one row per timestep.
func ReadObservationsCSV(r io.Reader) (model.ObservedInputs, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.ObservedInputs{}, &model.InputError{Field: "header", Err: model.ErrEmptySeries}
		}
		return model.ObservedInputs{}, err
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	names := []string{ColPrecipitation, ColEvapotranspiration, ColObservedDischarge}
	idx := make([]int, len(names))
	for i, name := range names {
		c, ok := cols[name]
		if !ok {
			return model.ObservedInputs{}, &model.InputError{Field: name, Row: 1, Err: errors.New("missing column")}
		}
		idx[i] = c
	}

	series := make([][]float64, len(names))
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.ObservedInputs{}, err
		}
		row, _ := cr.FieldPos(0)
		for i, c := range idx {
			if c >= len(rec) {
				return model.ObservedInputs{}, &model.InputError{Field: names[i], Row: row, Column: c + 1, Err: errors.New("missing value")}
			}
			cell := strings.TrimSpace(rec[c])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return model.ObservedInputs{}, &model.InputError{Field: names[i], Row: row, Column: c + 1, Value: cell, Err: errors.New("not a number")}
			}
			series[i] = append(series[i], v)
		}
	}
	return model.NewObservedInputs(series[0], series[1], series[2])
}
