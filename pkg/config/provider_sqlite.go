package config

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/chrissnell/dikeprep/internal/profile"
	"github.com/chrissnell/dikeprep/internal/revetment"
	"github.com/chrissnell/dikeprep/internal/zones"
	"github.com/chrissnell/dikeprep/pkg/migrate"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DefaultConfigName is the configuration loaded when no name is selected
const DefaultConfigName = "default"

// ErrConfigNotFound is returned when the database holds no configuration of the selected name
var ErrConfigNotFound = errors.New("configuration not found")

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
	name   string
}

// NewSQLiteProvider creates a new SQLite configuration provider reading the default configuration
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
		name:   DefaultConfigName,
	}, nil
}

// UseConfig selects the named configuration for loading and saving
func (s *SQLiteProvider) UseConfig(name string) {
	if name == "" {
		name = DefaultConfigName
	}
	s.name = name
}

// MigrationProvider returns the embedded configuration schema migrations
func MigrationProvider() *migrate.FSProvider {
	return migrate.NewFSProvider(migrations, "migrations", "")
}

// Migrate brings the schema up to date
func (s *SQLiteProvider) Migrate(ctx context.Context, logger *zap.SugaredLogger) error {
	return migrate.NewMigrator(s.db, MigrationProvider(), logger).MigrateUp(ctx)
}

// ConfigNames lists the stored configurations
func (s *SQLiteProvider) ConfigNames() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM configs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query configs: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// LoadConfig loads the selected configuration from the database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	return s.LoadNamedConfig(s.name)
}

// LoadNamedConfig loads the configuration stored under name without changing the selection
func (s *SQLiteProvider) LoadNamedConfig(name string) (*ConfigData, error) {
	configID, config, err := s.loadRun(name)
	if err != nil {
		return nil, err
	}

	if err := s.loadForcing(configID, &config.Forcing); err != nil {
		return nil, fmt.Errorf("failed to load forcing: %w", err)
	}
	if err := s.loadDike(configID, &config.Dike); err != nil {
		return nil, fmt.Errorf("failed to load dike: %w", err)
	}
	if config.OutputTimes, err = s.loadOutputTimes(configID); err != nil {
		return nil, fmt.Errorf("failed to load output times: %w", err)
	}
	if config.Locations, err = s.loadLocations(configID); err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}
	if config.Zones, err = s.loadZones(configID); err != nil {
		return nil, fmt.Errorf("failed to load zones: %w", err)
	}
	if config.Settings, err = s.loadSettings(configID); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return config, nil
}

// GetZones returns the revetment zones of the selected configuration
func (s *SQLiteProvider) GetZones() ([]ZoneData, error) {
	configID, err := s.configID()
	if err != nil {
		return nil, err
	}
	return s.loadZones(configID)
}

// GetSettings returns the settings pool of the selected configuration
func (s *SQLiteProvider) GetSettings() ([]revetment.CalculationSettings, error) {
	configID, err := s.configID()
	if err != nil {
		return nil, err
	}
	return s.loadSettings(configID)
}

// IsReadOnly returns false since SQLite configuration can be modified
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteProvider) configID() (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM configs WHERE name = ?`, s.name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrConfigNotFound, s.name)
	}
	return id, err
}

func (s *SQLiteProvider) loadRun(name string) (int64, *ConfigData, error) {
	query := `
		SELECT id, name, start_time, stop_time, output_path, output_format, engine_command, engine_args
		FROM configs
		WHERE name = ?
	`

	var id int64
	config := &ConfigData{}
	var start, stop sql.NullFloat64
	var outputPath, outputFormat, engineCommand, engineArgs sql.NullString

	err := s.db.QueryRow(query, name).Scan(
		&id, &config.Name, &start, &stop,
		&outputPath, &outputFormat, &engineCommand, &engineArgs,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil, fmt.Errorf("%w: %s", ErrConfigNotFound, name)
	}
	if err != nil {
		return 0, nil, fmt.Errorf("failed to query config: %w", err)
	}

	config.StartTime = floatPtr(start)
	config.StopTime = floatPtr(stop)
	config.Output = OutputData{Path: outputPath.String, Format: outputFormat.String}

	if engineCommand.Valid && engineCommand.String != "" {
		config.Engine = &EngineData{Command: engineCommand.String}
		if engineArgs.Valid && engineArgs.String != "" {
			if err := json.Unmarshal([]byte(engineArgs.String), &config.Engine.Args); err != nil {
				return 0, nil, fmt.Errorf("failed to decode engine arguments: %w", err)
			}
		}
	}
	return id, config, nil
}

func (s *SQLiteProvider) loadForcing(configID int64, forcing *ForcingData) error {
	var file, sheet sql.NullString
	err := s.db.QueryRow(`SELECT file, sheet FROM forcing WHERE config_id = ?`, configID).Scan(&file, &sheet)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	forcing.File = file.String
	forcing.Sheet = sheet.String

	rows, err := s.db.Query(`
		SELECT time, water_level, wave_height, wave_period, wave_direction
		FROM forcing_steps
		WHERE config_id = ?
		ORDER BY step
	`, configID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t float64
		var level, height, period, direction sql.NullFloat64
		if err := rows.Scan(&t, &level, &height, &period, &direction); err != nil {
			return fmt.Errorf("failed to scan forcing step: %w", err)
		}
		forcing.TimeSteps = append(forcing.TimeSteps, t)
		if level.Valid {
			forcing.WaterLevels = append(forcing.WaterLevels, level.Float64)
			forcing.WaveHeights = append(forcing.WaveHeights, height.Float64)
			forcing.WavePeriods = append(forcing.WavePeriods, period.Float64)
			forcing.WaveDirections = append(forcing.WaveDirections, direction.Float64)
		}
	}
	return rows.Err()
}

func (s *SQLiteProvider) loadDike(configID int64, dike *DikeData) error {
	query := `
		SELECT file, orientation, outer_toe, outer_crest,
		       crest_outer_berm, notch_outer_berm, inner_crest, inner_toe
		FROM dikes
		WHERE config_id = ?
	`
	var file sql.NullString
	var toe, crest, bermCrest, bermNotch, innerCrest, innerToe sql.NullFloat64
	err := s.db.QueryRow(query, configID).Scan(
		&file, &dike.Orientation, &toe, &crest,
		&bermCrest, &bermNotch, &innerCrest, &innerToe,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	dike.File = file.String
	dike.OuterToe = floatPtr(toe)
	dike.OuterCrest = floatPtr(crest)
	dike.CrestOuterBerm = floatPtr(bermCrest)
	dike.NotchOuterBerm = floatPtr(bermNotch)
	dike.InnerCrest = floatPtr(innerCrest)
	dike.InnerToe = floatPtr(innerToe)

	rows, err := s.db.Query(`SELECT x, z, roughness FROM dike_points WHERE config_id = ? ORDER BY point`, configID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var x, z float64
		var roughness sql.NullFloat64
		if err := rows.Scan(&x, &z, &roughness); err != nil {
			return fmt.Errorf("failed to scan dike point: %w", err)
		}
		dike.XPositions = append(dike.XPositions, x)
		dike.ZPositions = append(dike.ZPositions, z)
		if roughness.Valid {
			dike.Roughnesses = append(dike.Roughnesses, roughness.Float64)
		}
	}
	return rows.Err()
}

func (s *SQLiteProvider) loadOutputTimes(configID int64) ([]float64, error) {
	rows, err := s.db.Query(`SELECT time FROM output_times WHERE config_id = ? ORDER BY position`, configID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []float64
	for rows.Next() {
		var t float64
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func (s *SQLiteProvider) loadLocations(configID int64) ([]revetment.Location, error) {
	rows, err := s.db.Query(`
		SELECT x_position, top_layer, settings
		FROM locations
		WHERE config_id = ?
		ORDER BY position
	`, configID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []revetment.Location
	for rows.Next() {
		var loc revetment.Location
		var topLayer string
		var settings sql.NullString
		if err := rows.Scan(&loc.XPosition, &topLayer, &settings); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		if err := json.Unmarshal([]byte(topLayer), &loc.TopLayer); err != nil {
			return nil, fmt.Errorf("failed to decode top layer of location x=%g: %w", loc.XPosition, err)
		}
		if loc.Settings, err = decodeSettings(settings); err != nil {
			return nil, fmt.Errorf("failed to decode settings of location x=%g: %w", loc.XPosition, err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (s *SQLiteProvider) loadZones(configID int64) ([]ZoneData, error) {
	rows, err := s.db.Query(`
		SELECT kind, range_min, range_max, point_count, max_spacing, side,
		       include_profile_points, top_layer, settings
		FROM zones
		WHERE config_id = ?
		ORDER BY position
	`, configID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ZoneData
	for rows.Next() {
		var kind, topLayer string
		var lower, upper float64
		var count sql.NullInt64
		var spacing sql.NullFloat64
		var side, settings sql.NullString
		var includePoints bool

		err := rows.Scan(&kind, &lower, &upper, &count, &spacing, &side, &includePoints, &topLayer, &settings)
		if err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}

		var zone ZoneData
		var n *int
		if count.Valid {
			v := int(count.Int64)
			n = &v
		}
		switch kind {
		case "horizontal":
			zone.Horizontal = &zones.HorizontalZone{
				XMin: lower, XMax: upper,
				Count: n, MaxSpacing: floatPtr(spacing),
				IncludeProfilePoints: includePoints,
			}
		case "vertical":
			zone.Vertical = &zones.VerticalZone{
				ZMin: lower, ZMax: upper,
				Count: n, MaxSpacing: floatPtr(spacing),
				Side:                 profile.SlopeSide(side.String),
				IncludeProfilePoints: includePoints,
			}
		default:
			return nil, fmt.Errorf("unknown zone kind %q", kind)
		}

		if err := json.Unmarshal([]byte(topLayer), &zone.TopLayer); err != nil {
			return nil, fmt.Errorf("failed to decode zone top layer: %w", err)
		}
		if zone.Settings, err = decodeSettings(settings); err != nil {
			return nil, fmt.Errorf("failed to decode zone settings: %w", err)
		}
		result = append(result, zone)
	}
	return result, rows.Err()
}

func (s *SQLiteProvider) loadSettings(configID int64) ([]revetment.CalculationSettings, error) {
	rows, err := s.db.Query(`SELECT settings FROM calculation_settings WHERE config_id = ? ORDER BY position`, configID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pool []revetment.CalculationSettings
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, err
		}
		var settings revetment.CalculationSettings
		if err := json.Unmarshal([]byte(encoded), &settings); err != nil {
			return nil, fmt.Errorf("failed to decode calculation settings: %w", err)
		}
		pool = append(pool, settings)
	}
	return pool, rows.Err()
}

// Write methods for configuration management

// SaveConfig stores the configuration under the selected name, replacing what was there
func (s *SQLiteProvider) SaveConfig(configData *ConfigData) error {
	// Start transaction
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	configID, err := s.upsertConfig(tx, configData)
	if err != nil {
		return fmt.Errorf("failed to insert config: %w", err)
	}

	if err := s.clearExistingConfig(tx, configID); err != nil {
		return fmt.Errorf("failed to clear existing config: %w", err)
	}
	if err := s.insertForcing(tx, configID, &configData.Forcing); err != nil {
		return fmt.Errorf("failed to insert forcing: %w", err)
	}
	if err := s.insertDike(tx, configID, &configData.Dike); err != nil {
		return fmt.Errorf("failed to insert dike: %w", err)
	}
	for i, t := range configData.OutputTimes {
		if _, err := tx.Exec(`INSERT INTO output_times (config_id, position, time) VALUES (?, ?, ?)`, configID, i, t); err != nil {
			return fmt.Errorf("failed to insert output time %g: %w", t, err)
		}
	}
	for i := range configData.Locations {
		if err := s.insertLocation(tx, configID, i, &configData.Locations[i]); err != nil {
			return fmt.Errorf("failed to insert location %d: %w", i, err)
		}
	}
	for i := range configData.Zones {
		if err := s.insertZone(tx, configID, i, &configData.Zones[i]); err != nil {
			return fmt.Errorf("failed to insert zone %d: %w", i, err)
		}
	}
	for i := range configData.Settings {
		encoded, err := json.Marshal(&configData.Settings[i])
		if err != nil {
			return err
		}
		_, err = tx.Exec(`INSERT INTO calculation_settings (config_id, position, method, settings) VALUES (?, ?, ?, ?)`,
			configID, i, string(configData.Settings[i].Method), string(encoded))
		if err != nil {
			return fmt.Errorf("failed to insert settings %d: %w", i, err)
		}
	}

	// Commit transaction
	return tx.Commit()
}

func (s *SQLiteProvider) upsertConfig(tx *sql.Tx, configData *ConfigData) (int64, error) {
	var engineCommand, engineArgs sql.NullString
	if configData.Engine != nil {
		engineCommand = nullString(configData.Engine.Command)
		if len(configData.Engine.Args) > 0 {
			encoded, err := json.Marshal(configData.Engine.Args)
			if err != nil {
				return 0, err
			}
			engineArgs = nullString(string(encoded))
		}
	}

	query := `
		INSERT INTO configs (name, start_time, stop_time, output_path, output_format, engine_command, engine_args)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			start_time = excluded.start_time,
			stop_time = excluded.stop_time,
			output_path = excluded.output_path,
			output_format = excluded.output_format,
			engine_command = excluded.engine_command,
			engine_args = excluded.engine_args,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := tx.Exec(query, s.name,
		nullFloat64(configData.StartTime), nullFloat64(configData.StopTime),
		nullString(configData.Output.Path), nullString(configData.Output.Format),
		engineCommand, engineArgs,
	)
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRow(`SELECT id FROM configs WHERE name = ?`, s.name).Scan(&id)
	return id, err
}

func (s *SQLiteProvider) clearExistingConfig(tx *sql.Tx, configID int64) error {
	tables := []string{
		"forcing", "forcing_steps", "dikes", "dike_points",
		"output_times", "locations", "zones", "calculation_settings",
	}

	for _, table := range tables {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE config_id = ?", configID); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteProvider) insertForcing(tx *sql.Tx, configID int64, forcing *ForcingData) error {
	_, err := tx.Exec(`INSERT INTO forcing (config_id, file, sheet) VALUES (?, ?, ?)`,
		configID, nullString(forcing.File), nullString(forcing.Sheet))
	if err != nil {
		return err
	}

	query := `
		INSERT INTO forcing_steps (config_id, step, time, water_level, wave_height, wave_period, wave_direction)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for i, t := range forcing.TimeSteps {
		_, err := tx.Exec(query, configID, i, t,
			nullAt(forcing.WaterLevels, i), nullAt(forcing.WaveHeights, i),
			nullAt(forcing.WavePeriods, i), nullAt(forcing.WaveDirections, i),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteProvider) insertDike(tx *sql.Tx, configID int64, dike *DikeData) error {
	query := `
		INSERT INTO dikes (
			config_id, file, orientation, outer_toe, outer_crest,
			crest_outer_berm, notch_outer_berm, inner_crest, inner_toe
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.Exec(query, configID, nullString(dike.File), dike.Orientation,
		nullFloat64(dike.OuterToe), nullFloat64(dike.OuterCrest),
		nullFloat64(dike.CrestOuterBerm), nullFloat64(dike.NotchOuterBerm),
		nullFloat64(dike.InnerCrest), nullFloat64(dike.InnerToe),
	)
	if err != nil {
		return err
	}

	for i, x := range dike.XPositions {
		var z float64
		if i < len(dike.ZPositions) {
			z = dike.ZPositions[i]
		}
		_, err := tx.Exec(`INSERT INTO dike_points (config_id, point, x, z, roughness) VALUES (?, ?, ?, ?, ?)`,
			configID, i, x, z, nullAt(dike.Roughnesses, i))
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteProvider) insertLocation(tx *sql.Tx, configID int64, position int, loc *revetment.Location) error {
	topLayer, err := json.Marshal(&loc.TopLayer)
	if err != nil {
		return err
	}
	settings, err := encodeSettings(loc.Settings)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT INTO locations (config_id, position, x_position, top_layer, settings) VALUES (?, ?, ?, ?, ?)`,
		configID, position, loc.XPosition, string(topLayer), settings)
	return err
}

func (s *SQLiteProvider) insertZone(tx *sql.Tx, configID int64, position int, zone *ZoneData) error {
	var kind, side string
	var lower, upper float64
	var count *int
	var spacing *float64
	var includePoints bool

	switch {
	case zone.Horizontal != nil && zone.Vertical == nil:
		h := zone.Horizontal
		kind, lower, upper, count, spacing, includePoints = "horizontal", h.XMin, h.XMax, h.Count, h.MaxSpacing, h.IncludeProfilePoints
	case zone.Vertical != nil && zone.Horizontal == nil:
		v := zone.Vertical
		kind, lower, upper, count, spacing, includePoints = "vertical", v.ZMin, v.ZMax, v.Count, v.MaxSpacing, v.IncludeProfilePoints
		side = string(v.Side)
	default:
		return ErrZoneDefinition
	}

	var pointCount sql.NullInt64
	if count != nil {
		pointCount = sql.NullInt64{Int64: int64(*count), Valid: true}
	}

	topLayer, err := json.Marshal(&zone.TopLayer)
	if err != nil {
		return err
	}
	settings, err := encodeSettings(zone.Settings)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO zones (
			config_id, position, kind, range_min, range_max, point_count, max_spacing,
			side, include_profile_points, top_layer, settings
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(query, configID, position, kind, lower, upper, pointCount, nullFloat64(spacing),
		nullString(side), includePoints, string(topLayer), settings)
	return err
}

// Helper functions for handling nullable fields
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullAt(values []float64, i int) sql.NullFloat64 {
	if i >= len(values) {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: values[i], Valid: true}
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func encodeSettings(settings *revetment.CalculationSettings) (sql.NullString, error) {
	if settings == nil {
		return sql.NullString{Valid: false}, nil
	}
	encoded, err := json.Marshal(settings)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(encoded), Valid: true}, nil
}

func decodeSettings(encoded sql.NullString) (*revetment.CalculationSettings, error) {
	if !encoded.Valid || strings.TrimSpace(encoded.String) == "" {
		return nil, nil
	}
	var settings revetment.CalculationSettings
	if err := json.Unmarshal([]byte(encoded.String), &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
