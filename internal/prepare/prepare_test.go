package prepare

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/chrissnell/dikeprep/internal/hydro"
	"github.com/chrissnell/dikeprep/internal/profile"
	"github.com/chrissnell/dikeprep/internal/revetment"
	"github.com/chrissnell/dikeprep/internal/zones"
)

func ptr(v float64) *float64 { return &v }

func count(n int) *int { return &n }

var grassImpact = revetment.TopLayer{Type: revetment.GrassClosedSod, Method: revetment.MethodGrassWaveImpact}

func testInput(t *testing.T) *Input {
	t.Helper()
	conditions, err := hydro.NewConditions(
		[]float64{0, 10, 20, 30},
		[]float64{1, 2, 3},
		[]float64{0.5, 0.6, 0.7},
		[]float64{4, 5, 6},
		[]float64{0, 10, 20},
	)
	if err != nil {
		t.Fatal(err)
	}
	dike, err := profile.New(0,
		[]float64{0, 10, 20, 30},
		[]float64{0, 2, 4, 1},
		[]float64{1, 1, 1},
		profile.CharacteristicPoints{OuterToe: 0, OuterCrest: 20},
	)
	if err != nil {
		t.Fatal(err)
	}

	return &Input{
		Hydrodynamics: conditions,
		Dike:          dike,
		Locations:     []revetment.Location{{XPosition: 15, TopLayer: grassImpact}},
		Zones: []zones.RevetmentZone{
			{TopLayer: grassImpact, Definition: zones.HorizontalZone{XMin: 2, XMax: 4, Count: count(3)}},
			{TopLayer: grassImpact, Definition: zones.VerticalZone{ZMin: 1, ZMax: 3, Count: count(2)}},
		},
		Settings: []revetment.CalculationSettings{*revetment.DefaultSettings(revetment.MethodGrassWaveImpact)},
	}
}

func TestPrepare(t *testing.T) {
	in := testInput(t)
	in.StartTime = ptr(5)
	in.StopTime = ptr(25)

	p := NewPreparer(zap.NewNop().Sugar())
	p.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	b, err := p.Prepare(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.RunID == "" {
		t.Error("expected a run id")
	}
	if !b.CreatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("unexpected creation time %v", b.CreatedAt)
	}

	wantGrid := []float64{5, 10, 20, 25}
	if len(b.TimeSteps) != len(wantGrid) {
		t.Fatalf("grid %v, want %v", b.TimeSteps, wantGrid)
	}
	for i := range wantGrid {
		if b.TimeSteps[i] != wantGrid[i] {
			t.Errorf("grid %v, want %v", b.TimeSteps, wantGrid)
			break
		}
	}

	wantLevels := []float64{1, 2, 3}
	for i, want := range wantLevels {
		if b.Forcing.WaterLevels[i] != want {
			t.Errorf("water levels %v, want %v", b.Forcing.WaterLevels, wantLevels)
			break
		}
	}

	// explicit location first, then the horizontal zone, then the vertical zone
	wantX := []float64{15, 2, 3, 4, 5, 15}
	if len(b.Locations) != len(wantX) {
		t.Fatalf("expected %d locations, got %d", len(wantX), len(b.Locations))
	}
	for i, want := range wantX {
		if math.Abs(b.Locations[i].XPosition-want) > 1e-9 {
			t.Errorf("location %d at %g, want %g", i, b.Locations[i].XPosition, want)
		}
		if b.Locations[i].Resolved.Settings == nil || b.Locations[i].Resolved.TopLayer == nil {
			t.Errorf("location %d has unresolved settings", i)
		}
	}
}

func TestPrepareRecordsMisses(t *testing.T) {
	in := testInput(t)
	in.Settings = nil

	b, err := NewPreparer(nil).Prepare(context.Background(), in)
	if err != nil {
		t.Fatalf("misses should not be fatal: %v", err)
	}
	if b.Missing() != len(b.Locations) {
		t.Errorf("expected every location to miss settings, got %d of %d", b.Missing(), len(b.Locations))
	}
}

func TestPrepareFailsFast(t *testing.T) {
	in := testInput(t)
	in.Zones = append(in.Zones, zones.RevetmentZone{
		TopLayer:   grassImpact,
		Definition: zones.HorizontalZone{XMin: 3, XMax: 1, Count: count(2)},
	})

	b, err := NewPreparer(nil).Prepare(context.Background(), in)
	if err == nil {
		t.Fatal("expected an error")
	}
	if b != nil {
		t.Error("expected no bundle for invalid input")
	}
	var cfgErr *zones.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Parameter != "x_max" {
		t.Errorf("expected the zone configuration error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *Input)
		want   []error
		errors int
	}{
		{"valid", func(in *Input) {}, nil, 0},
		{"no hydrodynamics", func(in *Input) { in.Hydrodynamics = nil }, []error{ErrNoHydrodynamics}, 1},
		{"no dike", func(in *Input) { in.Dike = nil }, []error{ErrNoDike}, 1},
		{"no locations", func(in *Input) { in.Locations, in.Zones = nil, nil }, []error{ErrNoLocations}, 1},
		{
			"all problems reported",
			func(in *Input) { in.Dike, in.Locations, in.Zones = nil, nil, nil },
			[]error{ErrNoDike, ErrNoLocations},
			2,
		},
		{"start after last step", func(in *Input) { in.StartTime = ptr(31) }, nil, 1},
		{"stop before start", func(in *Input) { in.StartTime, in.StopTime = ptr(20), ptr(10) }, nil, 1},
		{"output time out of range", func(in *Input) { in.OutputTimes = []float64{-1, 15, 40} }, nil, 2},
		{"output time before start", func(in *Input) { in.StartTime, in.OutputTimes = ptr(12), []float64{5} }, nil, 1},
		{"start on last step", func(in *Input) { in.StartTime = ptr(30) }, []error{ErrRunGridTooShort}, 1},
		{
			"shape error",
			func(in *Input) { in.Hydrodynamics.WaveHeights = []float64{1} },
			nil,
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := testInput(t)
			tt.modify(in)

			err := Validate(in)
			if got := len(multierr.Errors(err)); got != tt.errors {
				t.Errorf("expected %d errors, got %d: %v", tt.errors, got, err)
			}
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("expected %v in %v", want, err)
				}
			}
		})
	}
}

func TestValidateShapeError(t *testing.T) {
	in := testInput(t)
	in.Hydrodynamics.WavePeriods = []float64{1, 2}

	var shapeErr *hydro.ShapeError
	if !errors.As(Validate(in), &shapeErr) {
		t.Fatal("expected a ShapeError")
	}
	if shapeErr.Quantity != "wave_periods" || shapeErr.Length != 2 || shapeErr.Expected != 3 {
		t.Errorf("unexpected shape error: %+v", shapeErr)
	}
}
