package prepare

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrNoHydrodynamics = errors.New("no hydrodynamic conditions specified")
	ErrNoDike          = errors.New("no dike schematization specified")
	ErrNoLocations     = errors.New("no output locations or revetment zones specified")

	// ErrRunGridTooShort is returned when the time bounds leave fewer than two time steps
	ErrRunGridTooShort = errors.New("start and stop time leave fewer than two time steps to calculate")
)

// Validate checks the complete input and reports every problem found, not just the first.
// Use multierr.Errors to list them.
func Validate(in *Input) error {
	var errs error

	if in.Hydrodynamics == nil {
		errs = multierr.Append(errs, ErrNoHydrodynamics)
	} else if err := in.Hydrodynamics.Validate(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("hydrodynamic conditions: %w", err))
	} else {
		errs = multierr.Append(errs, validateTimes(in))
	}

	if in.Dike == nil {
		errs = multierr.Append(errs, ErrNoDike)
	} else if err := in.Dike.Validate(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("dike schematization: %w", err))
	}

	if len(in.Locations) == 0 && len(in.Zones) == 0 {
		errs = multierr.Append(errs, ErrNoLocations)
	}
	for i, loc := range in.Locations {
		if err := loc.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("output location %d: %w", i, err))
		}
	}
	for i, z := range in.Zones {
		if err := z.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("revetment zone %d: %w", i, err))
		}
	}
	for i := range in.Settings {
		if err := in.Settings[i].Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("calculation settings %d: %w", i, err))
		}
	}

	return errs
}

// validateTimes checks the time bounds and output times against valid forcing
func validateTimes(in *Input) error {
	var errs error
	steps := in.Hydrodynamics.TimeSteps
	first, last := floats.Min(steps), floats.Max(steps)

	if in.StartTime != nil && *in.StartTime > last {
		errs = multierr.Append(errs, fmt.Errorf("start time (%g) should not be after the last time step (%g)", *in.StartTime, last))
	}
	if in.StartTime != nil && in.StopTime != nil && !(*in.StopTime > *in.StartTime) {
		errs = multierr.Append(errs, fmt.Errorf("stop time (%g) should be greater than start time (%g)", *in.StopTime, *in.StartTime))
	}

	for _, t := range in.OutputTimes {
		if t < first || t > last {
			errs = multierr.Append(errs, fmt.Errorf("output time %g is outside the range of the time steps [%g, %g]", t, first, last))
		}
		if in.StartTime != nil && t < *in.StartTime {
			errs = multierr.Append(errs, fmt.Errorf("output time %g is before the start time (%g)", t, *in.StartTime))
		}
	}

	if errs == nil && len(in.TimeGrid()) < 2 {
		errs = ErrRunGridTooShort
	}
	return errs
}
