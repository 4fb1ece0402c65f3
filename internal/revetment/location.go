package revetment

import "fmt"

// Location is an output location of the calculation. Settings, when set, overrides the general
// settings pool for this location.
type Location struct {
	XPosition float64              `json:"x_position" yaml:"x_position" msgpack:"x_position"`
	TopLayer  TopLayer             `json:"top_layer" yaml:"top_layer" msgpack:"top_layer"`
	Settings  *CalculationSettings `json:"settings,omitempty" yaml:"settings,omitempty" msgpack:"settings,omitempty"`
}

// Method returns the calculation method of the location
func (l Location) Method() CalculationMethod {
	return l.TopLayer.Method
}

// Validate checks the top layer and the location-specific settings
func (l Location) Validate() error {
	if err := l.TopLayer.Validate(); err != nil {
		return fmt.Errorf("location x=%g: %w", l.XPosition, err)
	}
	if l.Settings != nil {
		if err := l.Settings.Validate(); err != nil {
			return fmt.Errorf("location x=%g: %w", l.XPosition, err)
		}
	}
	return nil
}
