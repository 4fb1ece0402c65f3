package config

import (
	"github.com/chrissnell/dikeprep/internal/revetment"
	"github.com/chrissnell/dikeprep/internal/zones"
)

// ConfigProvider defines the interface for run configuration sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetZones() ([]ZoneData, error)
	GetSettings() ([]revetment.CalculationSettings, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData is the complete configuration of a calculation run
type ConfigData struct {
	Name        string                          `json:"name,omitempty" yaml:"name,omitempty"`
	Forcing     ForcingData                     `json:"forcing" yaml:"forcing"`
	Dike        DikeData                        `json:"dike" yaml:"dike"`
	StartTime   *float64                        `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	StopTime    *float64                        `json:"stop_time,omitempty" yaml:"stop_time,omitempty"`
	OutputTimes []float64                       `json:"output_times,omitempty" yaml:"output_times,omitempty"`
	Locations   []revetment.Location            `json:"locations,omitempty" yaml:"locations,omitempty"`
	Zones       []ZoneData                      `json:"zones,omitempty" yaml:"zones,omitempty"`
	Settings    []revetment.CalculationSettings `json:"settings,omitempty" yaml:"settings,omitempty"`
	Output      OutputData                      `json:"output,omitempty" yaml:"output,omitempty"`
	Engine      *EngineData                     `json:"engine,omitempty" yaml:"engine,omitempty"`
}

// ForcingData points at a forcing file or carries the series inline. Each series holds one
// value per interval between consecutive time steps.
type ForcingData struct {
	File           string    `json:"file,omitempty" yaml:"file,omitempty"`
	Sheet          string    `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	TimeSteps      []float64 `json:"time_steps,omitempty" yaml:"time_steps,omitempty"`
	WaterLevels    []float64 `json:"water_levels,omitempty" yaml:"water_levels,omitempty"`
	WaveHeights    []float64 `json:"wave_heights,omitempty" yaml:"wave_heights,omitempty"`
	WavePeriods    []float64 `json:"wave_periods,omitempty" yaml:"wave_periods,omitempty"`
	WaveDirections []float64 `json:"wave_directions,omitempty" yaml:"wave_directions,omitempty"`
}

// DikeData points at a PRFL file or carries the profile inline. Characteristic points given
// here override the ones derived from a PRFL file.
type DikeData struct {
	File           string    `json:"file,omitempty" yaml:"file,omitempty"`
	Orientation    float64   `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	XPositions     []float64 `json:"x_positions,omitempty" yaml:"x_positions,omitempty"`
	ZPositions     []float64 `json:"z_positions,omitempty" yaml:"z_positions,omitempty"`
	Roughnesses    []float64 `json:"roughnesses,omitempty" yaml:"roughnesses,omitempty"`
	OuterToe       *float64  `json:"outer_toe,omitempty" yaml:"outer_toe,omitempty"`
	OuterCrest     *float64  `json:"outer_crest,omitempty" yaml:"outer_crest,omitempty"`
	CrestOuterBerm *float64  `json:"crest_outer_berm,omitempty" yaml:"crest_outer_berm,omitempty"`
	NotchOuterBerm *float64  `json:"notch_outer_berm,omitempty" yaml:"notch_outer_berm,omitempty"`
	InnerCrest     *float64  `json:"inner_crest,omitempty" yaml:"inner_crest,omitempty"`
	InnerToe       *float64  `json:"inner_toe,omitempty" yaml:"inner_toe,omitempty"`
}

// ZoneData is a revetment zone with exactly one of Horizontal or Vertical set
type ZoneData struct {
	TopLayer   revetment.TopLayer             `json:"top_layer" yaml:"top_layer"`
	Horizontal *zones.HorizontalZone          `json:"horizontal,omitempty" yaml:"horizontal,omitempty"`
	Vertical   *zones.VerticalZone            `json:"vertical,omitempty" yaml:"vertical,omitempty"`
	Settings   *revetment.CalculationSettings `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// OutputData holds where the prepared bundle is written
type OutputData struct {
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// EngineData holds the external calculation engine command
type EngineData struct {
	Command string   `json:"command" yaml:"command"`
	Args    []string `json:"args,omitempty" yaml:"args,omitempty"`
}
