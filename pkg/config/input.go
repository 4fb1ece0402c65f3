package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/chrissnell/dikeprep/internal/forcing"
	"github.com/chrissnell/dikeprep/internal/hydro"
	"github.com/chrissnell/dikeprep/internal/prepare"
	"github.com/chrissnell/dikeprep/internal/profile"
	"github.com/chrissnell/dikeprep/internal/zones"
	"github.com/chrissnell/dikeprep/pkg/prfl"
)

// ErrZoneDefinition is returned for a zone that does not set exactly one of horizontal or vertical
var ErrZoneDefinition = errors.New("zone should define exactly one of horizontal or vertical")

// BuildInput turns a run configuration into calculation input. Relative file references are
// resolved against baseDir.
func BuildInput(cfg *ConfigData, baseDir string) (*prepare.Input, error) {
	conditions, err := buildForcing(&cfg.Forcing, baseDir)
	if err != nil {
		return nil, fmt.Errorf("forcing: %w", err)
	}

	dike, err := buildDike(&cfg.Dike, baseDir)
	if err != nil {
		return nil, fmt.Errorf("dike: %w", err)
	}

	in := &prepare.Input{
		Hydrodynamics: conditions,
		Dike:          dike,
		Locations:     cfg.Locations,
		Settings:      cfg.Settings,
		StartTime:     cfg.StartTime,
		StopTime:      cfg.StopTime,
		OutputTimes:   cfg.OutputTimes,
	}

	for i, z := range cfg.Zones {
		zone, err := z.RevetmentZone()
		if err != nil {
			return nil, fmt.Errorf("zone %d: %w", i, err)
		}
		in.Zones = append(in.Zones, zone)
	}
	return in, nil
}

// RevetmentZone returns the zone with its definition selected
func (z ZoneData) RevetmentZone() (zones.RevetmentZone, error) {
	zone := zones.RevetmentZone{TopLayer: z.TopLayer, Settings: z.Settings}
	switch {
	case z.Horizontal != nil && z.Vertical == nil:
		zone.Definition = *z.Horizontal
	case z.Vertical != nil && z.Horizontal == nil:
		zone.Definition = *z.Vertical
	default:
		return zones.RevetmentZone{}, ErrZoneDefinition
	}
	return zone, nil
}

func buildForcing(f *ForcingData, baseDir string) (*hydro.Conditions, error) {
	if f.File == "" {
		if len(f.TimeSteps) == 0 {
			return nil, nil
		}
		return hydro.NewConditions(f.TimeSteps, f.WaterLevels, f.WaveHeights, f.WavePeriods, f.WaveDirections)
	}

	path := resolvePath(baseDir, f.File)
	if f.Sheet != "" {
		return forcing.ReadXLSXFile(path, f.Sheet)
	}
	return forcing.Load(path)
}

func buildDike(d *DikeData, baseDir string) (*profile.Schematization, error) {
	if d.File == "" {
		if len(d.XPositions) == 0 {
			return nil, nil
		}
		if d.OuterToe == nil || d.OuterCrest == nil {
			return nil, errors.New("an inline profile needs outer_toe and outer_crest")
		}
		return profile.New(d.Orientation, d.XPositions, d.ZPositions, d.Roughnesses, d.points(profile.CharacteristicPoints{}))
	}

	dike, err := prfl.Read(resolvePath(baseDir, d.File))
	if err != nil {
		return nil, err
	}
	if d.Orientation != 0 {
		dike.Orientation = d.Orientation
	}
	return profile.New(dike.Orientation, dike.XPositions, dike.ZPositions, dike.Roughnesses, d.points(dike.Points))
}

// points overlays the configured characteristic points on base
func (d *DikeData) points(base profile.CharacteristicPoints) profile.CharacteristicPoints {
	if d.OuterToe != nil {
		base.OuterToe = *d.OuterToe
	}
	if d.OuterCrest != nil {
		base.OuterCrest = *d.OuterCrest
	}
	if d.CrestOuterBerm != nil {
		base.CrestOuterBerm = d.CrestOuterBerm
	}
	if d.NotchOuterBerm != nil {
		base.NotchOuterBerm = d.NotchOuterBerm
	}
	if d.InnerCrest != nil {
		base.InnerCrest = d.InnerCrest
	}
	if d.InnerToe != nil {
		base.InnerToe = d.InnerToe
	}
	return base
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
