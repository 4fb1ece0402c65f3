package revetment

// ResolveSettings picks the calculation settings for a location. Location-specific settings win
// when their method matches the location's method. Otherwise the first pool entry with that
// method is used. A nil result means no settings apply and the engine falls back to its
// built-in defaults.
func ResolveSettings(loc Location, pool []CalculationSettings) *CalculationSettings {
	method := loc.Method()
	if loc.Settings != nil && loc.Settings.Method == method {
		return loc.Settings
	}
	for i := range pool {
		if pool[i].Method == method {
			return &pool[i]
		}
	}
	return nil
}

// ResolveTopLayer returns the first top layer settings of the given type, or nil
func ResolveTopLayer(s *CalculationSettings, t TopLayerType) *TopLayerSettings {
	if s == nil {
		return nil
	}
	for i := range s.TopLayers {
		if s.TopLayers[i].Type == t {
			return &s.TopLayers[i]
		}
	}
	return nil
}

// Resolution is the outcome of resolving the settings for one location
type Resolution struct {
	Settings *CalculationSettings `json:"settings,omitempty" msgpack:"settings,omitempty"`
	TopLayer *TopLayerSettings    `json:"top_layer,omitempty" msgpack:"top_layer,omitempty"`
	// Missing lists what could not be resolved, for diagnostics only
	Missing []string `json:"missing,omitempty" msgpack:"missing,omitempty"`
}

// Resolve resolves both the method settings and the top layer settings for a location
func Resolve(loc Location, pool []CalculationSettings) Resolution {
	var r Resolution
	r.Settings = ResolveSettings(loc, pool)
	if r.Settings == nil {
		r.Missing = append(r.Missing, "calculation settings for "+string(loc.Method()))
		return r
	}
	r.TopLayer = ResolveTopLayer(r.Settings, loc.TopLayer.Type)
	if r.TopLayer == nil {
		r.Missing = append(r.Missing, "top layer settings for "+string(loc.TopLayer.Type))
	}
	return r
}
