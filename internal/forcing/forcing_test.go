package forcing

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/chrissnell/dikeprep/internal/hydro"
)

const table = `time,water_level,wave_height,wave_period,wave_direction
0,1.5,0.5,4,30
3600,1.8,0.7,4.5,35
7200,1.6,0.6,4.2,40
10800
`

func TestReadCSV(t *testing.T) {
	c, err := ReadCSV(strings.NewReader(table))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkConditions(t, c)
}

func checkConditions(t *testing.T, c *hydro.Conditions) {
	t.Helper()
	if c.Intervals() != 3 {
		t.Fatalf("expected 3 intervals, got %d", c.Intervals())
	}
	if c.End() != 10800 {
		t.Errorf("last time step %g, want 10800", c.End())
	}
	if c.WaterLevels[1] != 1.8 || c.WaveHeights[2] != 0.6 || c.WavePeriods[0] != 4 || c.WaveDirections[2] != 40 {
		t.Errorf("unexpected values: %+v", c)
	}
}

func TestReadCSVColumnOrder(t *testing.T) {
	reordered := "wave_direction, time, wave_period, wave_height, water_level\n30,0,4,0.5,1.5\n,10\n"
	c, err := ReadCSV(strings.NewReader(reordered))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.WaterLevels[0] != 1.5 || c.WaveDirections[0] != 30 || c.End() != 10 {
		t.Errorf("unexpected conditions: %+v", c)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"missing column", "time,water_level,wave_height,wave_period\n0,1,1,1\n1\n"},
		{"single row", "time,water_level,wave_height,wave_period,wave_direction\n0,1,1,1,1\n"},
		{"missing value", "time,water_level,wave_height,wave_period,wave_direction\n0,1,,1,1\n10\n"},
		{"not a number", "time,water_level,wave_height,wave_period,wave_direction\n0,1,a,1,1\n10\n"},
		{"decreasing time", "time,water_level,wave_height,wave_period,wave_direction\n10,1,1,1,1\n0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	c, err := ReadCSV(strings.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("failed to read written CSV: %v", err)
	}
	checkConditions(t, again)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"time", "water_level", "wave_height", "wave_period", "wave_direction"},
		{0, 1.5, 0.5, 4, 30},
		{3600, 1.8, 0.7, 4.5, 35},
		{7200, 1.6, 0.6, 4.2, 40},
		{10800},
	}
	for r, row := range rows {
		for c, v := range row {
			name, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue("Sheet1", name, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "forcing.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkConditions(t, c)
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	c, err := ReadCSV(strings.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := ReadXLSX(&buf, "forcing")
	if err != nil {
		t.Fatalf("failed to read written workbook: %v", err)
	}
	checkConditions(t, again)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forcing.CSV")
	if err := os.WriteFile(path, []byte(table), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkConditions(t, c)

	if _, err := Load(filepath.Join(dir, "forcing.txt")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
