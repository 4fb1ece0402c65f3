// Package profile describes the cross-shore schematization of a dike.
package profile

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"
)

var (
	// ErrTooFewPoints is returned when a profile has fewer than two points
	ErrTooFewPoints = errors.New("dike profile needs at least two points")

	// ErrDuplicatePosition is returned when two profile points share a cross-shore position
	ErrDuplicatePosition = errors.New("dike profile contains duplicate cross-shore positions")
)

// SlopeSide selects the part of the profile on one side of the outer crest
type SlopeSide string

const (
	// OuterSlope is the part of the profile up to and including the outer crest
	OuterSlope SlopeSide = "outer"
	// InnerSlope is the part of the profile from the inner crest onwards, or from the outer
	// crest when no inner crest is set
	InnerSlope SlopeSide = "inner"
)

// CharacteristicPoints are named cross-shore positions on the profile
type CharacteristicPoints struct {
	OuterToe       float64  `json:"outer_toe" msgpack:"outer_toe"`
	OuterCrest     float64  `json:"outer_crest" msgpack:"outer_crest"`
	CrestOuterBerm *float64 `json:"crest_outer_berm,omitempty" msgpack:"crest_outer_berm,omitempty"`
	NotchOuterBerm *float64 `json:"notch_outer_berm,omitempty" msgpack:"notch_outer_berm,omitempty"`
	InnerCrest     *float64 `json:"inner_crest,omitempty" msgpack:"inner_crest,omitempty"`
	InnerToe       *float64 `json:"inner_toe,omitempty" msgpack:"inner_toe,omitempty"`
}

// Schematization is a dike cross-section: positions with elevations, a roughness per segment
// and the characteristic points
type Schematization struct {
	// Orientation of the dike normal relative to north, in degrees
	Orientation float64              `json:"orientation" msgpack:"orientation"`
	XPositions  []float64            `json:"x_positions" msgpack:"x_positions"`
	ZPositions  []float64            `json:"z_positions" msgpack:"z_positions"`
	Roughnesses []float64            `json:"roughnesses" msgpack:"roughnesses"`
	Points      CharacteristicPoints `json:"characteristic_points" msgpack:"characteristic_points"`
}

// New validates the profile and returns it with its points ordered by cross-shore position.
// Positions, elevations and segment roughnesses are re-sorted together when needed.
func New(orientation float64, x, z, roughnesses []float64, points CharacteristicPoints) (*Schematization, error) {
	s := &Schematization{
		Orientation: orientation,
		XPositions:  append([]float64(nil), x...),
		ZPositions:  append([]float64(nil), z...),
		Roughnesses: append([]float64(nil), roughnesses...),
		Points:      points,
	}

	if err := s.checkShape(); err != nil {
		return nil, err
	}

	s.sortByPosition()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schematization) checkShape() error {
	if len(s.XPositions) < 2 {
		return ErrTooFewPoints
	}
	if len(s.ZPositions) != len(s.XPositions) {
		return fmt.Errorf("number of elevations (%d) should equal the number of positions (%d)",
			len(s.ZPositions), len(s.XPositions))
	}
	if len(s.Roughnesses) != len(s.XPositions)-1 {
		return fmt.Errorf("number of roughnesses (%d) should be one less than the number of positions (%d)",
			len(s.Roughnesses), len(s.XPositions))
	}
	return nil
}

// Validate checks the shape, ordering, orientation and characteristic points of the profile
func (s *Schematization) Validate() error {
	if err := s.checkShape(); err != nil {
		return err
	}

	for i := 1; i < len(s.XPositions); i++ {
		if s.XPositions[i] == s.XPositions[i-1] {
			return fmt.Errorf("%w: x = %g", ErrDuplicatePosition, s.XPositions[i])
		}
		if s.XPositions[i] < s.XPositions[i-1] {
			return fmt.Errorf("cross-shore positions should be increasing (x[%d] = %g, x[%d] = %g)",
				i-1, s.XPositions[i-1], i, s.XPositions[i])
		}
	}

	if s.Orientation < 0 || s.Orientation > 360 {
		return fmt.Errorf("dike orientation (%g) should be between 0 and 360 degrees", s.Orientation)
	}

	xMin, xMax := s.XPositions[0], s.XPositions[len(s.XPositions)-1]
	for name, p := range s.Points.named() {
		if p < xMin || p > xMax {
			return fmt.Errorf("characteristic point %s (%g) should lie within the profile [%g, %g]", name, p, xMin, xMax)
		}
	}
	if s.Points.OuterToe > s.Points.OuterCrest {
		return fmt.Errorf("outer toe (%g) should not lie beyond the outer crest (%g)", s.Points.OuterToe, s.Points.OuterCrest)
	}

	return nil
}

func (p CharacteristicPoints) named() map[string]float64 {
	named := map[string]float64{
		"outer_toe":   p.OuterToe,
		"outer_crest": p.OuterCrest,
	}
	optional := map[string]*float64{
		"crest_outer_berm": p.CrestOuterBerm,
		"notch_outer_berm": p.NotchOuterBerm,
		"inner_crest":      p.InnerCrest,
		"inner_toe":        p.InnerToe,
	}
	for name, v := range optional {
		if v != nil {
			named[name] = *v
		}
	}
	return named
}

// sortByPosition orders the profile by x. The roughness of a segment stays with its
// start point.
func (s *Schematization) sortByPosition() {
	if sort.Float64sAreSorted(s.XPositions) {
		return
	}

	n := len(s.XPositions)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.XPositions[order[a]] < s.XPositions[order[b]]
	})

	x := make([]float64, n)
	z := make([]float64, n)
	r := make([]float64, 0, n-1)
	for i, k := range order {
		x[i] = s.XPositions[k]
		z[i] = s.ZPositions[k]
		if i < n-1 {
			r = append(r, s.segmentRoughness(k, order[i+1]))
		}
	}

	s.XPositions, s.ZPositions, s.Roughnesses = x, z, r
}

// segmentRoughness is the roughness for the sorted segment between original points a and b.
// Points that were neighbours keep the roughness of their segment; otherwise the segment takes
// the roughness of the segment that started at a.
func (s *Schematization) segmentRoughness(a, b int) float64 {
	lo, hi := min(a, b), max(a, b)
	if hi-lo == 1 {
		return s.Roughnesses[lo]
	}
	if a < len(s.Roughnesses) {
		return s.Roughnesses[a]
	}
	return s.Roughnesses[len(s.Roughnesses)-1]
}

// SlopePoints returns the profile points on one side of the crest. The outer slope ends at the
// outer crest; the inner slope starts at the inner crest, or at the outer crest when the profile
// has no inner crest. A crest point belongs to its slope.
func (s *Schematization) SlopePoints(side SlopeSide) (x, z []float64) {
	crest := s.Points.OuterCrest
	if side == InnerSlope && s.Points.InnerCrest != nil {
		crest = *s.Points.InnerCrest
	}
	for i, xi := range s.XPositions {
		if (side == InnerSlope && xi >= crest) || (side != InnerSlope && xi <= crest) {
			x = append(x, xi)
			z = append(z, s.ZPositions[i])
		}
	}
	return x, z
}

// ElevationAt returns the profile elevation at cross-shore position x by linear interpolation.
// Positions outside the profile take the elevation of the nearest end point.
func (s *Schematization) ElevationAt(x float64) (float64, error) {
	zs, err := s.Elevations([]float64{x})
	if err != nil {
		return 0, err
	}
	return zs[0], nil
}

// Elevations interpolates the profile elevation at each position in xs
func (s *Schematization) Elevations(xs []float64) ([]float64, error) {
	if len(s.ZPositions) != len(s.XPositions) {
		return nil, fmt.Errorf("number of elevations (%d) should equal the number of positions (%d)",
			len(s.ZPositions), len(s.XPositions))
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(s.XPositions, s.ZPositions); err != nil {
		return nil, fmt.Errorf("dike profile: %w", err)
	}

	zs := make([]float64, len(xs))
	for i, x := range xs {
		zs[i] = pl.Predict(x)
	}
	return zs, nil
}
