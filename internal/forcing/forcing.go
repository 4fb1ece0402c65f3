// Package forcing reads hydrodynamic forcing series from tabular files.
//
// A table has a header row naming the columns time, water_level, wave_height, wave_period and
// wave_direction, in any order. Each following row holds a time step and the values that
// apply until the next time step. The final row holds only the closing time step.
package forcing

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chrissnell/dikeprep/internal/hydro"
)

const (
	ColumnTime          = "time"
	ColumnWaterLevel    = "water_level"
	ColumnWaveHeight    = "wave_height"
	ColumnWavePeriod    = "wave_period"
	ColumnWaveDirection = "wave_direction"
)

// Columns lists the required columns in their conventional order
var Columns = []string{ColumnTime, ColumnWaterLevel, ColumnWaveHeight, ColumnWavePeriod, ColumnWaveDirection}

// ErrUnsupportedFormat is returned by Load for an unknown file extension
var ErrUnsupportedFormat = errors.New("unsupported forcing file format")

// Load reads forcing from a .csv or .xlsx file
func Load(path string) (*hydro.Conditions, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSVFile(path)
	case ".xlsx":
		return ReadXLSXFile(path, "")
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// parseTable converts header and data rows into forcing
func parseTable(rows [][]string) (*hydro.Conditions, error) {
	if len(rows) == 0 {
		return nil, errors.New("forcing table is empty")
	}

	indices := make(map[string]int)
	for i, header := range rows[0] {
		indices[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range Columns {
		if _, ok := indices[col]; !ok {
			return nil, fmt.Errorf("forcing table is missing column %q", col)
		}
	}

	var data [][]string
	for _, row := range rows[1:] {
		if !blank(row) {
			data = append(data, row)
		}
	}
	if len(data) < 2 {
		return nil, hydro.ErrGridTooShort
	}

	n := len(data) - 1
	times := make([]float64, 0, n+1)
	series := map[string][]float64{}
	for r, row := range data {
		t, err := cell(row, indices[ColumnTime])
		if err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", r+2, ColumnTime, err)
		}
		times = append(times, t)

		if r == n {
			break
		}
		for _, col := range Columns[1:] {
			v, err := cell(row, indices[col])
			if err != nil {
				return nil, fmt.Errorf("row %d: %s: %w", r+2, col, err)
			}
			series[col] = append(series[col], v)
		}
	}

	return hydro.NewConditions(times,
		series[ColumnWaterLevel],
		series[ColumnWaveHeight],
		series[ColumnWavePeriod],
		series[ColumnWaveDirection])
}

func cell(row []string, i int) (float64, error) {
	if i >= len(row) || strings.TrimSpace(row[i]) == "" {
		return 0, errors.New("missing value")
	}
	return strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// rows formats forcing as table rows without header; the last row carries only the time
func rows(c *hydro.Conditions) [][]string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

	out := make([][]string, 0, len(c.TimeSteps))
	for i, t := range c.TimeSteps {
		if i == len(c.TimeSteps)-1 {
			out = append(out, []string{format(t), "", "", "", ""})
			break
		}
		out = append(out, []string{
			format(t),
			format(c.WaterLevels[i]),
			format(c.WaveHeights[i]),
			format(c.WavePeriods[i]),
			format(c.WaveDirections[i]),
		})
	}
	return out
}
