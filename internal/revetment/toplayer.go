package revetment

import "fmt"

// TopLayer specifies the top layer at a location and, through its method, what is calculated
// there. Only the property block of the method is set.
type TopLayer struct {
	Type          TopLayerType      `json:"type" yaml:"type" msgpack:"type"`
	Method        CalculationMethod `json:"method" yaml:"method" msgpack:"method"`
	InitialDamage *float64          `json:"initial_damage,omitempty" yaml:"initial_damage,omitempty" msgpack:"initial_damage,omitempty"`

	Asphalt          *AsphaltLayer          `json:"asphalt,omitempty" yaml:"asphalt,omitempty" msgpack:"asphalt,omitempty"`
	NordicStone      *NordicStoneLayer      `json:"nordic_stone,omitempty" yaml:"nordic_stone,omitempty" msgpack:"nordic_stone,omitempty"`
	GrassOvertopping *GrassOvertoppingLayer `json:"grass_overtopping,omitempty" yaml:"grass_overtopping,omitempty" msgpack:"grass_overtopping,omitempty"`
	GrassRunup       *GrassRunupLayer       `json:"grass_runup,omitempty" yaml:"grass_runup,omitempty" msgpack:"grass_runup,omitempty"`
}

// AsphaltLayer holds the construction properties of an asphalt top layer
type AsphaltLayer struct {
	FlexuralStrength            float64  `json:"flexural_strength" yaml:"flexural_strength" msgpack:"flexural_strength"`
	SoilElasticity              float64  `json:"soil_elasticity" yaml:"soil_elasticity" msgpack:"soil_elasticity"`
	UpperLayerThickness         float64  `json:"upper_layer_thickness" yaml:"upper_layer_thickness" msgpack:"upper_layer_thickness"`
	UpperLayerElasticityModulus float64  `json:"upper_layer_elasticity_modulus" yaml:"upper_layer_elasticity_modulus" msgpack:"upper_layer_elasticity_modulus"`
	SubLayerThickness           *float64 `json:"sub_layer_thickness,omitempty" yaml:"sub_layer_thickness,omitempty" msgpack:"sub_layer_thickness,omitempty"`
	SubLayerElasticModulus      *float64 `json:"sub_layer_elastic_modulus,omitempty" yaml:"sub_layer_elastic_modulus,omitempty" msgpack:"sub_layer_elastic_modulus,omitempty"`
	FatigueAlpha                *float64 `json:"fatigue_alpha,omitempty" yaml:"fatigue_alpha,omitempty" msgpack:"fatigue_alpha,omitempty"`
	FatigueBeta                 *float64 `json:"fatigue_beta,omitempty" yaml:"fatigue_beta,omitempty" msgpack:"fatigue_beta,omitempty"`
	StiffnessRatioNu            *float64 `json:"stiffness_ratio_nu,omitempty" yaml:"stiffness_ratio_nu,omitempty" msgpack:"stiffness_ratio_nu,omitempty"`
}

// NordicStoneLayer holds the construction properties of a nordic stone top layer
type NordicStoneLayer struct {
	Thickness       float64 `json:"thickness" yaml:"thickness" msgpack:"thickness"`
	RelativeDensity float64 `json:"relative_density" yaml:"relative_density" msgpack:"relative_density"`
}

// GrassCalculationType selects between the analytical and discrete grass cover solutions
type GrassCalculationType string

const (
	CalculationAnalytical GrassCalculationType = "analytical"
	CalculationDiscrete   GrassCalculationType = "discrete"
)

// GrassOvertoppingLayer holds the properties of a grass cover loaded by overtopping waves
type GrassOvertoppingLayer struct {
	CalculationType                GrassCalculationType `json:"calculation_type,omitempty" yaml:"calculation_type,omitempty" msgpack:"calculation_type,omitempty"`
	IncreasedLoadTransitionAlphaM  *float64             `json:"increased_load_transition_alpha_m,omitempty" yaml:"increased_load_transition_alpha_m,omitempty" msgpack:"increased_load_transition_alpha_m,omitempty"`
	ReducedStrengthTransitionAlpha *float64             `json:"reduced_strength_transition_alpha_s,omitempty" yaml:"reduced_strength_transition_alpha_s,omitempty" msgpack:"reduced_strength_transition_alpha_s,omitempty"`
}

// GrassRunupLayer holds the properties of a grass cover loaded by wave runup
type GrassRunupLayer struct {
	CalculationType                GrassCalculationType `json:"calculation_type,omitempty" yaml:"calculation_type,omitempty" msgpack:"calculation_type,omitempty"`
	OuterSlope                     float64              `json:"outer_slope" yaml:"outer_slope" msgpack:"outer_slope"`
	IncreasedLoadTransitionAlphaM  *float64             `json:"increased_load_transition_alpha_m,omitempty" yaml:"increased_load_transition_alpha_m,omitempty" msgpack:"increased_load_transition_alpha_m,omitempty"`
	ReducedStrengthTransitionAlpha *float64             `json:"reduced_strength_transition_alpha_s,omitempty" yaml:"reduced_strength_transition_alpha_s,omitempty" msgpack:"reduced_strength_transition_alpha_s,omitempty"`
}

// Validate checks that the method fits the top layer type and that the matching property
// block, and only that block, is present
func (tl TopLayer) Validate() error {
	if !tl.Method.Supports(tl.Type) {
		return fmt.Errorf("calculation method %q cannot be applied to top layer type %q", tl.Method, tl.Type)
	}
	if tl.InitialDamage != nil && *tl.InitialDamage < 0 {
		return fmt.Errorf("initial_damage (%g) should not be negative", *tl.InitialDamage)
	}

	blocks := map[CalculationMethod]bool{
		MethodAsphaltWaveImpact:    tl.Asphalt != nil,
		MethodNaturalStone:         tl.NordicStone != nil,
		MethodGrassWaveOvertopping: tl.GrassOvertopping != nil,
		MethodGrassWaveRunup:       tl.GrassRunup != nil,
	}
	for method, set := range blocks {
		if set && method != tl.Method {
			return fmt.Errorf("top layer for %q carries properties for %q", tl.Method, method)
		}
	}

	switch tl.Method {
	case MethodAsphaltWaveImpact:
		if tl.Asphalt == nil {
			return fmt.Errorf("asphalt top layer needs its layer properties")
		}
	case MethodNaturalStone:
		if tl.NordicStone == nil {
			return fmt.Errorf("nordic stone top layer needs its thickness and relative density")
		}
	case MethodGrassWaveRunup:
		if tl.GrassRunup == nil {
			return fmt.Errorf("grass wave runup top layer needs its outer slope")
		}
	}
	return nil
}
