package zones

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/chrissnell/dikeprep/internal/hydro"
	"github.com/chrissnell/dikeprep/internal/profile"
)

// VerticalZone spans the elevations from ZMin to ZMax on one side of the dike. The generated
// elevations are mapped onto cross-shore positions along the slope.
type VerticalZone struct {
	ZMin       float64           `json:"z_min" yaml:"z_min"`
	ZMax       float64           `json:"z_max" yaml:"z_max"`
	Count      *int              `json:"nz,omitempty" yaml:"nz,omitempty"`
	MaxSpacing *float64          `json:"dz_max,omitempty" yaml:"dz_max,omitempty"`
	Side       profile.SlopeSide `json:"side,omitempty" yaml:"side,omitempty"`
	// IncludeProfilePoints merges the slope positions with an elevation inside the zone
	IncludeProfilePoints bool `json:"include_profile_points,omitempty" yaml:"include_profile_points,omitempty"`
}

func (z VerticalZone) Validate() error {
	if err := greaterThan("z_max", z.ZMax, "z_min", z.ZMin); err != nil {
		return err
	}
	if z.Side != "" && z.Side != profile.OuterSlope && z.Side != profile.InnerSlope {
		return &ConfigError{Parameter: "side", Message: fmt.Sprintf("unknown slope side: %q", z.Side)}
	}
	return oneOf("nz", z.Count, "dz_max", z.MaxSpacing, z.ZMax-z.ZMin)
}

// Coordinates returns the positions on the slope at evenly spaced elevations. Elevations
// beyond the slope clamp to its lowest or highest point.
func (z VerticalZone) Coordinates(dike *profile.Schematization) ([]float64, error) {
	if err := z.Validate(); err != nil {
		return nil, err
	}
	if dike == nil {
		return nil, ErrNoProfile
	}

	xSlope, zSlope := dike.SlopePoints(z.Side)
	if z.Side == profile.InnerSlope {
		// inner slope descends landwards; fit against rising elevation
		floats.Reverse(xSlope)
		floats.Reverse(zSlope)
	}
	if len(zSlope) < 2 {
		return nil, fmt.Errorf("%s slope: %w", z.side(), profile.ErrTooFewPoints)
	}
	for i := 1; i < len(zSlope); i++ {
		if !(zSlope[i] > zSlope[i-1]) {
			return nil, fmt.Errorf("%s slope at x=%g: %w", z.side(), xSlope[i], ErrNonMonotonicSlope)
		}
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(zSlope, xSlope); err != nil {
		return nil, err
	}

	n := pointCount(z.Count, z.MaxSpacing, z.ZMax-z.ZMin)
	levels := floats.Span(make([]float64, n), z.ZMin, z.ZMax)
	xs := make([]float64, 0, n+len(xSlope))
	for _, level := range levels {
		xs = append(xs, pl.Predict(level))
	}

	if z.IncludeProfilePoints {
		for i, x := range xSlope {
			if zSlope[i] >= z.ZMin && zSlope[i] <= z.ZMax {
				xs = append(xs, x)
			}
		}
	}
	return hydro.SortUnique(xs), nil
}

func (z VerticalZone) side() profile.SlopeSide {
	if z.Side == "" {
		return profile.OuterSlope
	}
	return z.Side
}
