// Package revetment describes what is calculated at an output location: the top layer, the
// calculation method that applies to it and the calculation settings for that method.
package revetment

import "fmt"

// TopLayerType identifies the revetment surface at a location
type TopLayerType string

const (
	GrassOpenSod   TopLayerType = "grasOpenZode"
	GrassClosedSod TopLayerType = "grasGeslotenZode"
	NordicStone    TopLayerType = "noorseSteen"
	Asphalt        TopLayerType = "waterbouwAsfaltBeton"
)

// CalculationMethod identifies the physics model family used for a top layer
type CalculationMethod string

const (
	MethodAsphaltWaveImpact    CalculationMethod = "asfaltGolfklap"
	MethodNaturalStone         CalculationMethod = "natuursteen"
	MethodGrassWaveImpact      CalculationMethod = "grasGolfklap"
	MethodGrassWaveOvertopping CalculationMethod = "grasGolfoverslag"
	MethodGrassWaveRunup       CalculationMethod = "grasGolfoploop"
)

var topLayerTypes = []TopLayerType{GrassOpenSod, GrassClosedSod, NordicStone, Asphalt}

var methods = []CalculationMethod{
	MethodAsphaltWaveImpact,
	MethodNaturalStone,
	MethodGrassWaveImpact,
	MethodGrassWaveOvertopping,
	MethodGrassWaveRunup,
}

// ParseTopLayerType validates a top layer type name
func ParseTopLayerType(s string) (TopLayerType, error) {
	for _, t := range topLayerTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown top layer type: %q", s)
}

// ParseCalculationMethod validates a calculation method name
func ParseCalculationMethod(s string) (CalculationMethod, error) {
	for _, m := range methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown calculation method: %q", s)
}

// Supports reports whether the method can be applied to the given top layer type
func (m CalculationMethod) Supports(t TopLayerType) bool {
	switch m {
	case MethodAsphaltWaveImpact:
		return t == Asphalt
	case MethodNaturalStone:
		return t == NordicStone
	case MethodGrassWaveImpact, MethodGrassWaveOvertopping, MethodGrassWaveRunup:
		return t == GrassOpenSod || t == GrassClosedSod
	}
	return false
}
