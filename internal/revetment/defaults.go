package revetment

func f(v float64) *float64 { return &v }

func n(v int) *int { return &v }

// DefaultSettings returns the standard settings of a calculation method with the default top
// layer constants for every top layer type the method supports. The asphalt depth factor table
// is left to the engine. It returns nil for an unknown method.
func DefaultSettings(method CalculationMethod) *CalculationSettings {
	switch method {
	case MethodAsphaltWaveImpact:
		return &CalculationSettings{
			Method:        method,
			FailureNumber: f(1),
			Asphalt: &AsphaltSettings{
				DensityOfWater: f(1000),
				FactorCtm:      f(1),
				ImpactNumberC:  f(1),
				WidthFactors: [][2]float64{
					{0.1, 0.0392}, {0.2, 0.0738}, {0.3, 0.1002}, {0.4, 0.1162}, {0.5, 0.1213},
					{0.6, 0.1168}, {0.7, 0.1051}, {0.8, 0.089}, {0.9, 0.0712}, {1.0, 0.0541},
					{1.1, 0.0391}, {1.2, 0.0269}, {1.3, 0.0216}, {1.4, 0.015}, {1.5, 0.0105},
				},
				ImpactFactors: [][2]float64{
					{2.0, 0.039}, {2.4, 0.1}, {2.8, 0.18}, {3.2, 0.235}, {3.6, 0.2}, {4.0, 0.13},
					{4.4, 0.08}, {4.8, 0.02}, {5.2, 0.01}, {5.6, 0.005}, {6.0, 0.001},
				},
			},
			TopLayers: []TopLayerSettings{{Type: Asphalt}},
		}
	case MethodNaturalStone:
		return &CalculationSettings{
			Method:        method,
			FailureNumber: f(1),
			NaturalStone: &NaturalStoneSettings{
				DistanceMaximumWaveElevationA: f(0.42),
				DistanceMaximumWaveElevationB: f(0.9),
				SlopeUpperLevel:               f(0.05),
				SlopeLowerLevel:               f(1.5),
				NormativeWidthOfWaveImpactA:   f(0.96),
				NormativeWidthOfWaveImpactB:   f(0.11),
				UpperLimitLoadingA:            f(0.1),
				UpperLimitLoadingB:            f(0.6),
				UpperLimitLoadingC:            f(4),
				LowerLimitLoadingA:            f(0.1),
				LowerLimitLoadingB:            f(0.2),
				LowerLimitLoadingC:            f(4),
				WaveAngleImpactBetaMax:        f(78),
			},
			TopLayers: []TopLayerSettings{{
				Type: NordicStone,
				Stability: &StoneStability{
					PlungingA: f(4), PlungingB: f(0), PlungingC: f(0), PlungingN: f(-0.9),
					SurgingA: f(0.8), SurgingB: f(0), SurgingC: f(0), SurgingN: f(0.6),
					Xib: f(2.9),
				},
			}},
		}
	case MethodGrassWaveImpact:
		timeLine := func(t TopLayerType) TopLayerSettings {
			return TopLayerSettings{
				Type:           t,
				StanceTimeLine: &StanceTimeLine{A: f(1), B: f(-0.000009722), C: f(0.25)},
			}
		}
		return &CalculationSettings{
			Method:        method,
			FailureNumber: f(1),
			GrassWaveImpact: &GrassWaveImpactSettings{
				LoadingUpperLimit: f(0),
				LoadingLowerLimit: f(0.5),
				WaveAngleImpactN:  f(2.0 / 3.0),
				WaveAngleImpactQ:  f(0.35),
				WaveAngleImpactR:  f(10),
				TeMax:             f(3600000),
				TeMin:             f(3.6),
			},
			TopLayers: []TopLayerSettings{timeLine(GrassClosedSod), timeLine(GrassOpenSod)},
		}
	case MethodGrassWaveOvertopping:
		return &CalculationSettings{
			Method:        method,
			FailureNumber: f(1),
			GrassOvertopping: &GrassOvertoppingSettings{
				AccelerationAlphaAForCrest:      f(1),
				AccelerationAlphaAForInnerSlope: f(1.4),
				FixedNumberOfWaves:              n(10000),
				FrontVelocityCwo:                f(1.45),
				AverageNumberOfWavesCtm:         f(0.92),
			},
			TopLayers: overloadLayers(),
		}
	case MethodGrassWaveRunup:
		// the runup parameters have no standard values; the engine applies its own
		return &CalculationSettings{
			Method:        method,
			FailureNumber: f(1),
			TopLayers:     overloadLayers(),
		}
	}
	return nil
}

func overloadLayers() []TopLayerSettings {
	return []TopLayerSettings{
		{
			Type:               GrassClosedSod,
			CumulativeOverload: &CumulativeOverload{CriticalCumulativeOverload: f(7000), CriticalFrontVelocity: f(6.6)},
		},
		{
			Type:               GrassOpenSod,
			CumulativeOverload: &CumulativeOverload{CriticalCumulativeOverload: f(7000), CriticalFrontVelocity: f(6.6)},
		},
	}
}
