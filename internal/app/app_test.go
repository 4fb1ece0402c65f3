package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chrissnell/dikeprep/internal/engine"
	"github.com/chrissnell/dikeprep/internal/revetment"
	"github.com/chrissnell/dikeprep/internal/zones"
	"github.com/chrissnell/dikeprep/pkg/bundleformat"
	"github.com/chrissnell/dikeprep/pkg/config"
)

func ptr(v float64) *float64 { return &v }

func count(n int) *int { return &n }

func testConfig() *config.ConfigData {
	grass := revetment.TopLayer{Type: revetment.GrassClosedSod, Method: revetment.MethodGrassWaveImpact}
	return &config.ConfigData{
		Forcing: config.ForcingData{
			TimeSteps:      []float64{0, 10, 20, 30},
			WaterLevels:    []float64{1, 2, 3},
			WaveHeights:    []float64{0.5, 0.6, 0.7},
			WavePeriods:    []float64{4, 5, 6},
			WaveDirections: []float64{0, 10, 20},
		},
		Dike: config.DikeData{
			XPositions:  []float64{0, 10, 20, 30},
			ZPositions:  []float64{0, 2, 4, 1},
			Roughnesses: []float64{1, 1, 1},
			OuterToe:    ptr(0),
			OuterCrest:  ptr(20),
		},
		Locations: []revetment.Location{{XPosition: 15, TopLayer: grass}},
		Zones: []config.ZoneData{{
			TopLayer:   grass,
			Horizontal: &zones.HorizontalZone{XMin: 2, XMax: 4, Count: count(3)},
		}},
		Settings: []revetment.CalculationSettings{*revetment.DefaultSettings(revetment.MethodGrassWaveImpact)},
	}
}

type fakeEngine struct {
	bundle *engine.Bundle
	err    error
}

func (f *fakeEngine) Calculate(_ context.Context, b *engine.Bundle) (*engine.Result, error) {
	f.bundle = b
	if f.err != nil {
		return nil, f.err
	}
	result := &engine.Result{RunID: b.RunID}
	for _, loc := range b.Locations {
		result.Locations = append(result.Locations, engine.LocationResult{XPosition: loc.XPosition})
	}
	return result, nil
}

func TestRunWritesBundle(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		format string
		want   bundleformat.Format
	}{
		{"json by extension", "bundle.json", "", bundleformat.JSON},
		{"msgpack by extension", "bundle.mpk", "", bundleformat.MsgPack},
		{"explicit format", "bundle.out", "msgpack", bundleformat.MsgPack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			a := New(testConfig(), Options{OutputPath: path, Format: tt.format}, nil)
			if err := a.Run(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			var bundle engine.Bundle
			if err := bundleformat.NewFormatter(tt.want, false).Decode(f, &bundle); err != nil {
				t.Fatalf("failed to decode bundle: %v", err)
			}
			if len(bundle.Locations) != 4 {
				t.Errorf("expected 4 locations, got %d", len(bundle.Locations))
			}
			if bundle.RunID == "" || len(bundle.TimeSteps) != 4 {
				t.Errorf("unexpected bundle: %+v", bundle)
			}
		})
	}
}

func TestRunStdout(t *testing.T) {
	var out bytes.Buffer
	a := New(testConfig(), Options{}, nil)
	a.stdout = &out

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var bundle engine.Bundle
	if err := bundleformat.NewFormatter(bundleformat.JSON, false).Decode(&out, &bundle); err != nil {
		t.Fatalf("stdout should carry a JSON bundle: %v", err)
	}
	if bundle.Locations[0].XPosition != 15 {
		t.Errorf("explicit location should come first, got x=%g", bundle.Locations[0].XPosition)
	}
}

func TestRunEngine(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeEngine{}
	opts := Options{
		OutputPath: filepath.Join(dir, "bundle.json"),
		ResultPath: filepath.Join(dir, "result.json"),
		Engine:     fake,
	}

	if err := New(testConfig(), opts, nil).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.bundle == nil {
		t.Fatal("engine was not called")
	}

	f, err := os.Open(opts.ResultPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var result engine.Result
	if err := bundleformat.NewFormatter(bundleformat.JSON, false).Decode(f, &result); err != nil {
		t.Fatal(err)
	}
	if result.RunID != fake.bundle.RunID || len(result.Locations) != 4 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestRunErrors(t *testing.T) {
	engineErr := errors.New("engine crashed")

	tests := []struct {
		name   string
		modify func(*config.ConfigData, *Options)
	}{
		{"invalid input", func(c *config.ConfigData, _ *Options) { c.Locations = nil; c.Zones = nil }},
		{"unknown format", func(_ *config.ConfigData, o *Options) { o.Format = "xml" }},
		{"engine failure", func(_ *config.ConfigData, o *Options) { o.Engine = &fakeEngine{err: engineErr} }},
		{"zone without definition", func(c *config.ConfigData, _ *Options) { c.Zones[0].Horizontal = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			opts := Options{OutputPath: filepath.Join(t.TempDir(), "bundle.json")}
			tt.modify(cfg, &opts)
			if err := New(cfg, opts, nil).Run(context.Background()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSkipEngine(t *testing.T) {
	fake := &fakeEngine{}
	opts := Options{OutputPath: filepath.Join(t.TempDir(), "bundle.json"), Engine: fake, SkipEngine: true}
	if err := New(testConfig(), opts, nil).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if fake.bundle != nil {
		t.Error("engine should not run when skipped")
	}
}
