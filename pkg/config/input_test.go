package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chrissnell/dikeprep/internal/zones"
	"github.com/chrissnell/dikeprep/pkg/prfl"
)

const testProfile = `VERSIE 4.0
RICHTING 200

DIJK 4
0.000 0.000 1.000
10.000 2.000 1.000
20.000 4.000 0.900
30.000 1.000 1.000
`

const testForcing = `time,water_level,wave_height,wave_period,wave_direction
0,1,0.5,4,0
10,2,0.6,5,10
20,3,0.7,6,20
30
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildInputInline(t *testing.T) {
	in, err := BuildInput(loadTestConfig(t), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.Hydrodynamics == nil || in.Hydrodynamics.Intervals() != 3 {
		t.Fatalf("unexpected forcing: %+v", in.Hydrodynamics)
	}
	if in.Dike == nil || in.Dike.Orientation != 15 || in.Dike.Points.OuterCrest != 20 {
		t.Fatalf("unexpected dike: %+v", in.Dike)
	}
	if len(in.Zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(in.Zones))
	}
	if _, ok := in.Zones[0].Definition.(zones.HorizontalZone); !ok {
		t.Errorf("first zone should be horizontal, got %T", in.Zones[0].Definition)
	}
	if _, ok := in.Zones[1].Definition.(zones.VerticalZone); !ok {
		t.Errorf("second zone should be vertical, got %T", in.Zones[1].Definition)
	}
	if in.StopTime == nil || *in.StopTime != 7200 || len(in.OutputTimes) != 1 {
		t.Errorf("unexpected run window: stop %v output %v", in.StopTime, in.OutputTimes)
	}
}

func TestBuildInputFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dike.prfl", testProfile)
	writeFile(t, dir, "forcing.csv", testForcing)

	crest := 10.0
	cfg := &ConfigData{
		Forcing: ForcingData{File: "forcing.csv"},
		Dike:    DikeData{File: "dike.prfl", OuterCrest: &crest},
	}

	in, err := BuildInput(cfg, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Hydrodynamics.End() != 30 || in.Hydrodynamics.WaterLevels[2] != 3 {
		t.Errorf("unexpected forcing: %+v", in.Hydrodynamics)
	}
	if in.Dike.Orientation != 200 {
		t.Errorf("orientation %g, want 200", in.Dike.Orientation)
	}
	if in.Dike.Points.OuterCrest != 10 {
		t.Errorf("configured outer crest should override the file, got %g", in.Dike.Points.OuterCrest)
	}
	if in.Dike.Points.OuterToe != 0 {
		t.Errorf("outer toe %g, want 0", in.Dike.Points.OuterToe)
	}
}

func TestBuildInputErrors(t *testing.T) {
	dir := t.TempDir()
	toe, crest := 0.0, 20.0

	tests := []struct {
		name    string
		cfg     ConfigData
		wantErr error
	}{
		{
			name:    "missing profile file",
			cfg:     ConfigData{Dike: DikeData{File: "missing.prfl"}},
			wantErr: prfl.ErrFileNotFound,
		},
		{
			name: "zone with both definitions",
			cfg: ConfigData{Zones: []ZoneData{{
				Horizontal: &zones.HorizontalZone{XMin: 0, XMax: 1},
				Vertical:   &zones.VerticalZone{ZMin: 0, ZMax: 1},
			}}},
			wantErr: ErrZoneDefinition,
		},
		{
			name:    "zone without definition",
			cfg:     ConfigData{Zones: []ZoneData{{}}},
			wantErr: ErrZoneDefinition,
		},
		{
			name: "inline profile without crest",
			cfg: ConfigData{Dike: DikeData{
				XPositions: []float64{0, 10}, ZPositions: []float64{0, 1}, Roughnesses: []float64{1},
				OuterToe: &toe,
			}},
		},
		{
			name: "inline profile with crest outside",
			cfg: ConfigData{Dike: DikeData{
				XPositions: []float64{0, 10}, ZPositions: []float64{0, 1}, Roughnesses: []float64{1},
				OuterToe: &toe, OuterCrest: &crest,
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildInput(&tt.cfg, dir)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBuildInputEmpty(t *testing.T) {
	in, err := BuildInput(&ConfigData{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Hydrodynamics != nil || in.Dike != nil {
		t.Errorf("empty configuration should leave forcing and dike unset: %+v", in)
	}
}
