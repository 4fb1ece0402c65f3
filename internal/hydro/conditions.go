// Package hydro holds the hydrodynamic forcing of a calculation and the routines that put it on
// the time grid the calculation engine runs on.
package hydro

import "fmt"

// Conditions is interval-valued hydrodynamic forcing. Every quantity holds one value per
// interval between consecutive time steps.
type Conditions struct {
	TimeSteps      []float64 `json:"time_steps" msgpack:"time_steps"`
	WaterLevels    []float64 `json:"water_levels" msgpack:"water_levels"`
	WaveHeights    []float64 `json:"wave_heights" msgpack:"wave_heights"`
	WavePeriods    []float64 `json:"wave_periods" msgpack:"wave_periods"`
	WaveDirections []float64 `json:"wave_directions" msgpack:"wave_directions"`
}

// NewConditions builds forcing from its series and rejects any series whose length does not
// match the time grid
func NewConditions(timeSteps, waterLevels, waveHeights, wavePeriods, waveDirections []float64) (*Conditions, error) {
	c := &Conditions{
		TimeSteps:      timeSteps,
		WaterLevels:    waterLevels,
		WaveHeights:    waveHeights,
		WavePeriods:    wavePeriods,
		WaveDirections: waveDirections,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the time grid and the length of every quantity
func (c *Conditions) Validate() error {
	if len(c.TimeSteps) < 2 {
		return ErrGridTooShort
	}
	if !StrictlyIncreasing(c.TimeSteps) {
		return ErrNotIncreasing
	}

	expected := len(c.TimeSteps) - 1
	for _, q := range c.quantities() {
		if len(q.values) != expected {
			return &ShapeError{Quantity: q.name, Length: len(q.values), Expected: expected}
		}
	}
	return nil
}

// Intervals returns the number of forcing intervals
func (c *Conditions) Intervals() int {
	return len(c.TimeSteps) - 1
}

// Start returns the first time step
func (c *Conditions) Start() float64 {
	return c.TimeSteps[0]
}

// End returns the last time step
func (c *Conditions) End() float64 {
	return c.TimeSteps[len(c.TimeSteps)-1]
}

// Resample returns the forcing projected onto the target grid
func (c *Conditions) Resample(target []float64) (*Conditions, error) {
	out := &Conditions{TimeSteps: append([]float64(nil), target...)}

	dst := []*[]float64{&out.WaterLevels, &out.WaveHeights, &out.WavePeriods, &out.WaveDirections}
	for k, q := range c.quantities() {
		resampled, err := ResampleSteps(c.TimeSteps, q.values, target)
		if err != nil {
			return nil, fmt.Errorf("failed to resample %s: %w", q.name, err)
		}
		*dst[k] = resampled
	}

	return out, nil
}

type quantity struct {
	name   string
	values []float64
}

func (c *Conditions) quantities() []quantity {
	return []quantity{
		{"water_levels", c.WaterLevels},
		{"wave_heights", c.WaveHeights},
		{"wave_periods", c.WavePeriods},
		{"wave_directions", c.WaveDirections},
	}
}
