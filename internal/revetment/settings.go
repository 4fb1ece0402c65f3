package revetment

import "fmt"

// CalculationSettings holds the method-wide parameters of one calculation method and the
// parameters per top layer type. Method is the discriminator: only the parameter block of
// that method may be set. Settings are built once and shared read-only by every location
// that resolves to them.
type CalculationSettings struct {
	Method        CalculationMethod `json:"method" yaml:"method" msgpack:"method"`
	FailureNumber *float64          `json:"failure_number,omitempty" yaml:"failure_number,omitempty" msgpack:"failure_number,omitempty"`

	Asphalt          *AsphaltSettings          `json:"asphalt,omitempty" yaml:"asphalt,omitempty" msgpack:"asphalt,omitempty"`
	NaturalStone     *NaturalStoneSettings     `json:"natural_stone,omitempty" yaml:"natural_stone,omitempty" msgpack:"natural_stone,omitempty"`
	GrassWaveImpact  *GrassWaveImpactSettings  `json:"grass_wave_impact,omitempty" yaml:"grass_wave_impact,omitempty" msgpack:"grass_wave_impact,omitempty"`
	GrassOvertopping *GrassOvertoppingSettings `json:"grass_overtopping,omitempty" yaml:"grass_overtopping,omitempty" msgpack:"grass_overtopping,omitempty"`
	GrassRunup       *GrassRunupSettings       `json:"grass_runup,omitempty" yaml:"grass_runup,omitempty" msgpack:"grass_runup,omitempty"`

	TopLayers []TopLayerSettings `json:"top_layers,omitempty" yaml:"top_layers,omitempty" msgpack:"top_layers,omitempty"`
}

// AsphaltSettings are the asphalt wave impact parameters. Factor tables are (value, weight) pairs.
type AsphaltSettings struct {
	DensityOfWater *float64     `json:"density_of_water,omitempty" yaml:"density_of_water,omitempty" msgpack:"density_of_water,omitempty"`
	FactorCtm      *float64     `json:"factor_ctm,omitempty" yaml:"factor_ctm,omitempty" msgpack:"factor_ctm,omitempty"`
	ImpactNumberC  *float64     `json:"impact_number_c,omitempty" yaml:"impact_number_c,omitempty" msgpack:"impact_number_c,omitempty"`
	WidthFactors   [][2]float64 `json:"width_factors,omitempty" yaml:"width_factors,omitempty" msgpack:"width_factors,omitempty"`
	DepthFactors   [][2]float64 `json:"depth_factors,omitempty" yaml:"depth_factors,omitempty" msgpack:"depth_factors,omitempty"`
	ImpactFactors  [][2]float64 `json:"impact_factors,omitempty" yaml:"impact_factors,omitempty" msgpack:"impact_factors,omitempty"`
}

// NaturalStoneSettings are the natural stone wave impact parameters
type NaturalStoneSettings struct {
	DistanceMaximumWaveElevationA *float64 `json:"distance_maximum_wave_elevation_a,omitempty" yaml:"distance_maximum_wave_elevation_a,omitempty" msgpack:"distance_maximum_wave_elevation_a,omitempty"`
	DistanceMaximumWaveElevationB *float64 `json:"distance_maximum_wave_elevation_b,omitempty" yaml:"distance_maximum_wave_elevation_b,omitempty" msgpack:"distance_maximum_wave_elevation_b,omitempty"`
	SlopeUpperLevel               *float64 `json:"slope_upper_level,omitempty" yaml:"slope_upper_level,omitempty" msgpack:"slope_upper_level,omitempty"`
	SlopeLowerLevel               *float64 `json:"slope_lower_level,omitempty" yaml:"slope_lower_level,omitempty" msgpack:"slope_lower_level,omitempty"`
	NormativeWidthOfWaveImpactA   *float64 `json:"normative_width_of_wave_impact_a,omitempty" yaml:"normative_width_of_wave_impact_a,omitempty" msgpack:"normative_width_of_wave_impact_a,omitempty"`
	NormativeWidthOfWaveImpactB   *float64 `json:"normative_width_of_wave_impact_b,omitempty" yaml:"normative_width_of_wave_impact_b,omitempty" msgpack:"normative_width_of_wave_impact_b,omitempty"`
	UpperLimitLoadingA            *float64 `json:"upper_limit_loading_a,omitempty" yaml:"upper_limit_loading_a,omitempty" msgpack:"upper_limit_loading_a,omitempty"`
	UpperLimitLoadingB            *float64 `json:"upper_limit_loading_b,omitempty" yaml:"upper_limit_loading_b,omitempty" msgpack:"upper_limit_loading_b,omitempty"`
	UpperLimitLoadingC            *float64 `json:"upper_limit_loading_c,omitempty" yaml:"upper_limit_loading_c,omitempty" msgpack:"upper_limit_loading_c,omitempty"`
	LowerLimitLoadingA            *float64 `json:"lower_limit_loading_a,omitempty" yaml:"lower_limit_loading_a,omitempty" msgpack:"lower_limit_loading_a,omitempty"`
	LowerLimitLoadingB            *float64 `json:"lower_limit_loading_b,omitempty" yaml:"lower_limit_loading_b,omitempty" msgpack:"lower_limit_loading_b,omitempty"`
	LowerLimitLoadingC            *float64 `json:"lower_limit_loading_c,omitempty" yaml:"lower_limit_loading_c,omitempty" msgpack:"lower_limit_loading_c,omitempty"`
	WaveAngleImpactBetaMax        *float64 `json:"wave_angle_impact_beta_max,omitempty" yaml:"wave_angle_impact_beta_max,omitempty" msgpack:"wave_angle_impact_beta_max,omitempty"`
}

// GrassWaveImpactSettings are the grass cover wave impact parameters
type GrassWaveImpactSettings struct {
	LoadingUpperLimit *float64 `json:"loading_upper_limit,omitempty" yaml:"loading_upper_limit,omitempty" msgpack:"loading_upper_limit,omitempty"`
	LoadingLowerLimit *float64 `json:"loading_lower_limit,omitempty" yaml:"loading_lower_limit,omitempty" msgpack:"loading_lower_limit,omitempty"`
	WaveAngleImpactN  *float64 `json:"wave_angle_impact_n,omitempty" yaml:"wave_angle_impact_n,omitempty" msgpack:"wave_angle_impact_n,omitempty"`
	WaveAngleImpactQ  *float64 `json:"wave_angle_impact_q,omitempty" yaml:"wave_angle_impact_q,omitempty" msgpack:"wave_angle_impact_q,omitempty"`
	WaveAngleImpactR  *float64 `json:"wave_angle_impact_r,omitempty" yaml:"wave_angle_impact_r,omitempty" msgpack:"wave_angle_impact_r,omitempty"`
	// TeMax and TeMin bound the grass resistance time
	TeMax *float64 `json:"te_max,omitempty" yaml:"te_max,omitempty" msgpack:"te_max,omitempty"`
	TeMin *float64 `json:"te_min,omitempty" yaml:"te_min,omitempty" msgpack:"te_min,omitempty"`
}

// GrassOvertoppingSettings are the grass cover wave overtopping parameters
type GrassOvertoppingSettings struct {
	AccelerationAlphaAForCrest      *float64 `json:"acceleration_alpha_a_for_crest,omitempty" yaml:"acceleration_alpha_a_for_crest,omitempty" msgpack:"acceleration_alpha_a_for_crest,omitempty"`
	AccelerationAlphaAForInnerSlope *float64 `json:"acceleration_alpha_a_for_inner_slope,omitempty" yaml:"acceleration_alpha_a_for_inner_slope,omitempty" msgpack:"acceleration_alpha_a_for_inner_slope,omitempty"`
	FixedNumberOfWaves              *int     `json:"fixed_number_of_waves,omitempty" yaml:"fixed_number_of_waves,omitempty" msgpack:"fixed_number_of_waves,omitempty"`
	FrontVelocityCwo                *float64 `json:"front_velocity_c_wo,omitempty" yaml:"front_velocity_c_wo,omitempty" msgpack:"front_velocity_c_wo,omitempty"`
	AverageNumberOfWavesCtm         *float64 `json:"average_number_of_waves_ctm,omitempty" yaml:"average_number_of_waves_ctm,omitempty" msgpack:"average_number_of_waves_ctm,omitempty"`
	DikeHeight                      *float64 `json:"dike_height,omitempty" yaml:"dike_height,omitempty" msgpack:"dike_height,omitempty"`
}

// GrassRunupSettings are the grass cover wave runup parameters
type GrassRunupSettings struct {
	AverageNumberOfWavesCtm        *float64 `json:"average_number_of_waves_ctm,omitempty" yaml:"average_number_of_waves_ctm,omitempty" msgpack:"average_number_of_waves_ctm,omitempty"`
	RepresentativeWaveRunup2PAru   *float64 `json:"representative_wave_runup_2p_aru,omitempty" yaml:"representative_wave_runup_2p_aru,omitempty" msgpack:"representative_wave_runup_2p_aru,omitempty"`
	RepresentativeWaveRunup2PBru   *float64 `json:"representative_wave_runup_2p_bru,omitempty" yaml:"representative_wave_runup_2p_bru,omitempty" msgpack:"representative_wave_runup_2p_bru,omitempty"`
	RepresentativeWaveRunup2PCru   *float64 `json:"representative_wave_runup_2p_cru,omitempty" yaml:"representative_wave_runup_2p_cru,omitempty" msgpack:"representative_wave_runup_2p_cru,omitempty"`
	WaveAngleImpactABeta           *float64 `json:"wave_angle_impact_a_beta,omitempty" yaml:"wave_angle_impact_a_beta,omitempty" msgpack:"wave_angle_impact_a_beta,omitempty"`
	WaveAngleImpactBetaMax         *float64 `json:"wave_angle_impact_beta_max,omitempty" yaml:"wave_angle_impact_beta_max,omitempty" msgpack:"wave_angle_impact_beta_max,omitempty"`
	FixedNumberOfWaves             *int     `json:"fixed_number_of_waves,omitempty" yaml:"fixed_number_of_waves,omitempty" msgpack:"fixed_number_of_waves,omitempty"`
	FrontVelocityCu                *float64 `json:"front_velocity_cu,omitempty" yaml:"front_velocity_cu,omitempty" msgpack:"front_velocity_cu,omitempty"`
}

// TopLayerSettings are the parameters for one top layer type within a calculation method
type TopLayerSettings struct {
	Type TopLayerType `json:"type" yaml:"type" msgpack:"type"`

	Stability          *StoneStability     `json:"stability,omitempty" yaml:"stability,omitempty" msgpack:"stability,omitempty"`
	StanceTimeLine     *StanceTimeLine     `json:"stance_time_line,omitempty" yaml:"stance_time_line,omitempty" msgpack:"stance_time_line,omitempty"`
	CumulativeOverload *CumulativeOverload `json:"cumulative_overload,omitempty" yaml:"cumulative_overload,omitempty" msgpack:"cumulative_overload,omitempty"`
}

// StoneStability holds the plunging and surging stability constants of a stone top layer
type StoneStability struct {
	PlungingA *float64 `json:"plunging_a,omitempty" yaml:"plunging_a,omitempty" msgpack:"plunging_a,omitempty"`
	PlungingB *float64 `json:"plunging_b,omitempty" yaml:"plunging_b,omitempty" msgpack:"plunging_b,omitempty"`
	PlungingC *float64 `json:"plunging_c,omitempty" yaml:"plunging_c,omitempty" msgpack:"plunging_c,omitempty"`
	PlungingN *float64 `json:"plunging_n,omitempty" yaml:"plunging_n,omitempty" msgpack:"plunging_n,omitempty"`
	SurgingA  *float64 `json:"surging_a,omitempty" yaml:"surging_a,omitempty" msgpack:"surging_a,omitempty"`
	SurgingB  *float64 `json:"surging_b,omitempty" yaml:"surging_b,omitempty" msgpack:"surging_b,omitempty"`
	SurgingC  *float64 `json:"surging_c,omitempty" yaml:"surging_c,omitempty" msgpack:"surging_c,omitempty"`
	SurgingN  *float64 `json:"surging_n,omitempty" yaml:"surging_n,omitempty" msgpack:"surging_n,omitempty"`
	Xib       *float64 `json:"xib,omitempty" yaml:"xib,omitempty" msgpack:"xib,omitempty"`
}

// StanceTimeLine holds the grass wave impact time line constants
type StanceTimeLine struct {
	A *float64 `json:"a,omitempty" yaml:"a,omitempty" msgpack:"a,omitempty"`
	B *float64 `json:"b,omitempty" yaml:"b,omitempty" msgpack:"b,omitempty"`
	C *float64 `json:"c,omitempty" yaml:"c,omitempty" msgpack:"c,omitempty"`
}

// CumulativeOverload holds the grass cover cumulative overload constants
type CumulativeOverload struct {
	CriticalCumulativeOverload *float64 `json:"critical_cumulative_overload,omitempty" yaml:"critical_cumulative_overload,omitempty" msgpack:"critical_cumulative_overload,omitempty"`
	CriticalFrontVelocity      *float64 `json:"critical_front_velocity,omitempty" yaml:"critical_front_velocity,omitempty" msgpack:"critical_front_velocity,omitempty"`
}

// Validate checks that the settings carry only the parameter block of their own method and
// that every top layer entry fits the method
func (s *CalculationSettings) Validate() error {
	if _, err := ParseCalculationMethod(string(s.Method)); err != nil {
		return err
	}
	if s.FailureNumber != nil && *s.FailureNumber <= 0 {
		return fmt.Errorf("failure_number (%g) should be greater than 0", *s.FailureNumber)
	}

	blocks := map[CalculationMethod]bool{
		MethodAsphaltWaveImpact:    s.Asphalt != nil,
		MethodNaturalStone:         s.NaturalStone != nil,
		MethodGrassWaveImpact:      s.GrassWaveImpact != nil,
		MethodGrassWaveOvertopping: s.GrassOvertopping != nil,
		MethodGrassWaveRunup:       s.GrassRunup != nil,
	}
	for method, set := range blocks {
		if set && method != s.Method {
			return fmt.Errorf("settings for %q carry parameters for %q", s.Method, method)
		}
	}

	for i, tl := range s.TopLayers {
		if !s.Method.Supports(tl.Type) {
			return fmt.Errorf("settings for %q: top layer %d has type %q, which the method does not support", s.Method, i, tl.Type)
		}
		if err := tl.validateFor(s.Method); err != nil {
			return fmt.Errorf("settings for %q: top layer %d: %w", s.Method, i, err)
		}
	}
	return nil
}

func (tl TopLayerSettings) validateFor(method CalculationMethod) error {
	switch {
	case tl.Stability != nil && method != MethodNaturalStone:
		return fmt.Errorf("stability constants only apply to %q", MethodNaturalStone)
	case tl.StanceTimeLine != nil && method != MethodGrassWaveImpact:
		return fmt.Errorf("stance time line constants only apply to %q", MethodGrassWaveImpact)
	case tl.CumulativeOverload != nil && method != MethodGrassWaveOvertopping && method != MethodGrassWaveRunup:
		return fmt.Errorf("cumulative overload constants only apply to grass overtopping and runup")
	}
	return nil
}
