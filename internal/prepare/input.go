// Package prepare assembles and validates the input of an erosion calculation and turns it
// into the bundle handed to the calculation engine.
package prepare

import (
	"github.com/chrissnell/dikeprep/internal/hydro"
	"github.com/chrissnell/dikeprep/internal/profile"
	"github.com/chrissnell/dikeprep/internal/revetment"
	"github.com/chrissnell/dikeprep/internal/zones"
)

// Input describes a complete calculation run
type Input struct {
	Hydrodynamics *hydro.Conditions
	Dike          *profile.Schematization

	// Locations are explicit output locations; Zones generate more of them
	Locations []revetment.Location
	Zones     []zones.RevetmentZone

	// Settings is the general settings pool, searched in order
	Settings []revetment.CalculationSettings

	StartTime   *float64
	StopTime    *float64
	OutputTimes []float64
}

// TimeGrid returns the grid the calculation runs on
func (in *Input) TimeGrid() []float64 {
	if in.Hydrodynamics == nil {
		return nil
	}
	return hydro.UnifyTimeGrid(in.Hydrodynamics.TimeSteps, in.OutputTimes, in.StartTime, in.StopTime)
}
