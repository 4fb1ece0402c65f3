package zones

import (
	"gonum.org/v1/gonum/floats"

	"github.com/chrissnell/dikeprep/internal/hydro"
	"github.com/chrissnell/dikeprep/internal/profile"
)

// HorizontalZone spans the cross-shore positions from XMin to XMax
type HorizontalZone struct {
	XMin       float64  `json:"x_min" yaml:"x_min"`
	XMax       float64  `json:"x_max" yaml:"x_max"`
	Count      *int     `json:"nx,omitempty" yaml:"nx,omitempty"`
	MaxSpacing *float64 `json:"dx_max,omitempty" yaml:"dx_max,omitempty"`
	// IncludeProfilePoints merges the profile positions strictly inside the zone
	IncludeProfilePoints bool `json:"include_profile_points,omitempty" yaml:"include_profile_points,omitempty"`
}

func (z HorizontalZone) Validate() error {
	if err := greaterThan("x_max", z.XMax, "x_min", z.XMin); err != nil {
		return err
	}
	return oneOf("nx", z.Count, "dx_max", z.MaxSpacing, z.XMax-z.XMin)
}

// Coordinates returns the evenly spaced positions of the zone. The schematization is only
// consulted when profile points are merged; with a nil schematization nothing is merged.
func (z HorizontalZone) Coordinates(dike *profile.Schematization) ([]float64, error) {
	if err := z.Validate(); err != nil {
		return nil, err
	}

	n := pointCount(z.Count, z.MaxSpacing, z.XMax-z.XMin)
	xs := floats.Span(make([]float64, n), z.XMin, z.XMax)

	if z.IncludeProfilePoints && dike != nil {
		for _, x := range dike.XPositions {
			if x > z.XMin && x < z.XMax {
				xs = append(xs, x)
			}
		}
	}
	return hydro.SortUnique(xs), nil
}
