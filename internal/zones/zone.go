// Package zones expands compact revetment zone definitions into explicit output locations.
//
// A zone spans either a range of cross-shore positions (HorizontalZone) or a range of
// elevations on one side of the dike (VerticalZone). The points in the range are given by an
// explicit count or by a maximum spacing, and the profile's own breakpoints in range can be
// merged in.
package zones

import (
	"errors"
	"fmt"
	"math"

	"github.com/chrissnell/dikeprep/internal/profile"
	"github.com/chrissnell/dikeprep/internal/revetment"
)

// ErrNonMonotonicSlope is returned when a vertical zone is mapped onto a slope whose
// elevation does not strictly rise towards the crest
var ErrNonMonotonicSlope = errors.New("slope elevations are not strictly monotonic")

// ErrNoProfile is returned when a zone needs the dike schematization and none is given
var ErrNoProfile = errors.New("zone needs a dike schematization")

// MaxPoints is the largest number of evenly spaced points a single zone may generate
const MaxPoints = 1_000_000

// Definition generates the cross-shore positions of a zone
type Definition interface {
	Validate() error
	Coordinates(dike *profile.Schematization) ([]float64, error)
}

// ConfigError reports an invalid zone parameter
type ConfigError struct {
	Parameter string
	Message   string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func greaterThan(maxName string, max float64, minName string, min float64) error {
	for _, bound := range []struct {
		name  string
		value float64
	}{{minName, min}, {maxName, max}} {
		if math.IsInf(bound.value, 0) {
			return &ConfigError{
				Parameter: bound.name,
				Message:   fmt.Sprintf("%s (%g) should be finite", bound.name, bound.value),
			}
		}
	}
	if max > min {
		return nil
	}
	return &ConfigError{
		Parameter: maxName,
		Message:   fmt.Sprintf("%s (%g) should be greater than %s (%g)", maxName, max, minName, min),
	}
}

func oneOf(countName string, count *int, spacingName string, spacing *float64, span float64) error {
	switch {
	case count != nil && spacing != nil:
		return &ConfigError{
			Parameter: countName,
			Message:   fmt.Sprintf("either %s or %s should be specified, not both", countName, spacingName),
		}
	case count == nil && spacing == nil:
		return &ConfigError{
			Parameter: countName,
			Message:   fmt.Sprintf("one of %s or %s should be specified", countName, spacingName),
		}
	case count != nil && *count < 2:
		return &ConfigError{
			Parameter: countName,
			Message:   fmt.Sprintf("%s (%d) should be at least 2", countName, *count),
		}
	case count != nil && *count > MaxPoints:
		return &ConfigError{
			Parameter: countName,
			Message:   fmt.Sprintf("%s (%d) should be at most %d", countName, *count, MaxPoints),
		}
	case spacing != nil && !(*spacing > 0):
		return &ConfigError{
			Parameter: spacingName,
			Message:   fmt.Sprintf("%s (%g) should be greater than 0", spacingName, *spacing),
		}
	case spacing != nil:
		if n := spacedCount(span, *spacing); math.IsNaN(n) || n > MaxPoints {
			return &ConfigError{
				Parameter: spacingName,
				Message: fmt.Sprintf("%s (%g) is too small for a span of %g: more than %d points",
					spacingName, *spacing, span, MaxPoints),
			}
		}
	}
	return nil
}

func spacedCount(span, spacing float64) float64 {
	return math.Ceil(span/spacing) + 1
}

// pointCount returns the explicit count, or the number of points needed to keep the spacing
// below the given maximum. The parameters must have passed oneOf.
func pointCount(count *int, spacing *float64, span float64) int {
	if count != nil {
		return *count
	}
	return int(spacedCount(span, *spacing))
}

// RevetmentZone is a stretch of dike with one top layer. Every generated position becomes an
// output location sharing the zone's top layer and optional settings.
type RevetmentZone struct {
	TopLayer   revetment.TopLayer
	Definition Definition
	Settings   *revetment.CalculationSettings
}

// Validate checks the zone definition and the top layer
func (z RevetmentZone) Validate() error {
	if z.Definition == nil {
		return errors.New("revetment zone has no zone definition")
	}
	if err := z.Definition.Validate(); err != nil {
		return err
	}
	if err := z.TopLayer.Validate(); err != nil {
		return err
	}
	if z.Settings != nil {
		return z.Settings.Validate()
	}
	return nil
}

// Locations generates the output locations of the zone in cross-shore order
func (z RevetmentZone) Locations(dike *profile.Schematization) ([]revetment.Location, error) {
	if z.Definition == nil {
		return nil, errors.New("revetment zone has no zone definition")
	}
	xs, err := z.Definition.Coordinates(dike)
	if err != nil {
		return nil, err
	}

	locations := make([]revetment.Location, len(xs))
	for i, x := range xs {
		locations[i] = revetment.Location{
			XPosition: x,
			TopLayer:  z.TopLayer,
			Settings:  z.Settings,
		}
	}
	return locations, nil
}
