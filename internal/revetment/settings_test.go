package revetment

import (
	"math"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	for _, m := range methods {
		t.Run(string(m), func(t *testing.T) {
			s := DefaultSettings(m)
			if s == nil {
				t.Fatal("expected default settings")
			}
			if s.Method != m {
				t.Errorf("method %q, want %q", s.Method, m)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("default settings should be valid: %v", err)
			}
			if len(s.TopLayers) == 0 {
				t.Error("expected top layer defaults")
			}
		})
	}

	if DefaultSettings("unknown") != nil {
		t.Error("expected nil for an unknown method")
	}
}

func TestDefaultSettingsValues(t *testing.T) {
	impact := DefaultSettings(MethodGrassWaveImpact)
	if math.Abs(*impact.GrassWaveImpact.WaveAngleImpactN-0.6666666666666667) > 1e-12 {
		t.Errorf("unexpected wave angle impact n: %g", *impact.GrassWaveImpact.WaveAngleImpactN)
	}
	tl := ResolveTopLayer(impact, GrassOpenSod)
	if tl == nil || *tl.StanceTimeLine.B != -0.000009722 {
		t.Errorf("unexpected stance time line: %+v", tl)
	}

	stone := ResolveTopLayer(DefaultSettings(MethodNaturalStone), NordicStone)
	if stone == nil || *stone.Stability.PlungingN != -0.9 || *stone.Stability.Xib != 2.9 {
		t.Errorf("unexpected stone stability: %+v", stone)
	}

	overtopping := DefaultSettings(MethodGrassWaveOvertopping)
	if *overtopping.GrassOvertopping.FixedNumberOfWaves != 10000 {
		t.Errorf("unexpected number of waves: %d", *overtopping.GrassOvertopping.FixedNumberOfWaves)
	}
	overload := ResolveTopLayer(overtopping, GrassClosedSod).CumulativeOverload
	if *overload.CriticalCumulativeOverload != 7000 || *overload.CriticalFrontVelocity != 6.6 {
		t.Errorf("unexpected cumulative overload: %+v", overload)
	}
}

func TestCalculationSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       CalculationSettings
		wantErr bool
	}{
		{"minimal", CalculationSettings{Method: MethodAsphaltWaveImpact}, false},
		{"unknown method", CalculationSettings{Method: "golfklap"}, true},
		{"foreign block", CalculationSettings{Method: MethodAsphaltWaveImpact, GrassRunup: &GrassRunupSettings{}}, true},
		{"zero failure number", CalculationSettings{Method: MethodNaturalStone, FailureNumber: f(0)}, true},
		{"unsupported top layer", CalculationSettings{Method: MethodNaturalStone, TopLayers: []TopLayerSettings{{Type: Asphalt}}}, true},
		{
			"foreign top layer constants",
			CalculationSettings{
				Method:    MethodGrassWaveOvertopping,
				TopLayers: []TopLayerSettings{{Type: GrassOpenSod, StanceTimeLine: &StanceTimeLine{}}},
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTopLayerValidate(t *testing.T) {
	tests := []struct {
		name    string
		tl      TopLayer
		wantErr bool
	}{
		{"grass impact", TopLayer{Type: GrassOpenSod, Method: MethodGrassWaveImpact}, false},
		{"stone", TopLayer{Type: NordicStone, Method: MethodNaturalStone, NordicStone: &NordicStoneLayer{Thickness: 0.3, RelativeDensity: 2.4}}, false},
		{"stone without properties", TopLayer{Type: NordicStone, Method: MethodNaturalStone}, true},
		{"method does not fit type", TopLayer{Type: Asphalt, Method: MethodGrassWaveImpact}, true},
		{"negative initial damage", TopLayer{Type: GrassOpenSod, Method: MethodGrassWaveImpact, InitialDamage: f(-0.1)}, true},
		{"foreign properties", TopLayer{Type: GrassOpenSod, Method: MethodGrassWaveImpact, GrassRunup: &GrassRunupLayer{OuterSlope: 0.3}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tl.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if got, err := ParseTopLayerType("noorseSteen"); err != nil || got != NordicStone {
		t.Errorf("ParseTopLayerType = %q, %v", got, err)
	}
	if _, err := ParseTopLayerType("stone"); err == nil {
		t.Error("expected error for unknown top layer type")
	}
	if got, err := ParseCalculationMethod("grasGolfoploop"); err != nil || got != MethodGrassWaveRunup {
		t.Errorf("ParseCalculationMethod = %q, %v", got, err)
	}
}
