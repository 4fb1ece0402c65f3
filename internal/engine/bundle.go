// Package engine is the boundary between input preparation and the external erosion
// calculation engine.
package engine

import (
	"time"

	"github.com/chrissnell/dikeprep/internal/hydro"
	"github.com/chrissnell/dikeprep/internal/profile"
	"github.com/chrissnell/dikeprep/internal/revetment"
)

// Bundle is everything the engine needs for one run. The forcing is already on the run grid.
type Bundle struct {
	RunID       string                  `json:"run_id" msgpack:"run_id"`
	CreatedAt   time.Time               `json:"created_at" msgpack:"created_at"`
	TimeSteps   []float64               `json:"time_steps" msgpack:"time_steps"`
	OutputTimes []float64               `json:"output_times,omitempty" msgpack:"output_times,omitempty"`
	Forcing     *hydro.Conditions       `json:"forcing" msgpack:"forcing"`
	Dike        *profile.Schematization `json:"dike" msgpack:"dike"`
	Locations   []Location              `json:"locations" msgpack:"locations"`
}

// Location is an output location together with the settings resolved for it
type Location struct {
	revetment.Location `msgpack:",inline"`
	Resolved           revetment.Resolution `json:"resolved" msgpack:"resolved"`
}

// Missing returns the number of locations with unresolved settings
func (b *Bundle) Missing() int {
	var n int
	for _, loc := range b.Locations {
		if len(loc.Resolved.Missing) > 0 {
			n++
		}
	}
	return n
}
