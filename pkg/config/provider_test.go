package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/chrissnell/dikeprep/internal/profile"
	"github.com/chrissnell/dikeprep/internal/revetment"
)

func loadTestConfig(t *testing.T) *ConfigData {
	t.Helper()
	cfg, err := NewYAMLProvider(filepath.Join("testdata", "run.yaml")).LoadConfig()
	if err != nil {
		t.Fatalf("failed to load test configuration: %v", err)
	}
	return cfg
}

func TestLoadYAML(t *testing.T) {
	cfg := loadTestConfig(t)

	if cfg.Name != "default" {
		t.Errorf("name %q, want default", cfg.Name)
	}
	if len(cfg.Forcing.TimeSteps) != 4 || len(cfg.Forcing.WaterLevels) != 3 {
		t.Errorf("unexpected forcing: %+v", cfg.Forcing)
	}
	if cfg.StopTime == nil || *cfg.StopTime != 7200 || cfg.StartTime != nil {
		t.Errorf("unexpected run window: start %v stop %v", cfg.StartTime, cfg.StopTime)
	}
	if len(cfg.Zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(cfg.Zones))
	}
	h := cfg.Zones[0].Horizontal
	if h == nil || h.XMin != 2 || h.XMax != 4 || h.Count == nil || *h.Count != 3 || h.MaxSpacing != nil {
		t.Errorf("unexpected horizontal zone: %+v", h)
	}
	v := cfg.Zones[1].Vertical
	if v == nil || v.Side != profile.OuterSlope || !v.IncludeProfilePoints || v.MaxSpacing == nil || *v.MaxSpacing != 0.5 {
		t.Errorf("unexpected vertical zone: %+v", v)
	}
	if cfg.Zones[1].TopLayer.NordicStone == nil || cfg.Zones[1].TopLayer.NordicStone.RelativeDensity != 1.65 {
		t.Errorf("unexpected zone top layer: %+v", cfg.Zones[1].TopLayer)
	}
	if len(cfg.Settings) != 1 || cfg.Settings[0].Method != revetment.MethodGrassWaveImpact {
		t.Errorf("unexpected settings pool: %+v", cfg.Settings)
	}
	if cfg.Engine == nil || cfg.Engine.Command != "dikerosion" || len(cfg.Engine.Args) != 1 {
		t.Errorf("unexpected engine: %+v", cfg.Engine)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "configuration is empty"},
		{"unknown key", "forcing:\n  tide: 3\n", "field tide not found"},
		{"wrong type", "output_times: soon\n", "cannot unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := loadTestConfig(t)

	var buf bytes.Buffer
	if err := WriteYAML(&buf, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := ParseYAML(buf.Bytes())
	if err != nil {
		t.Fatalf("failed to parse written configuration: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("written configuration differs:\n got %+v\nwant %+v", got, cfg)
	}
}

func openTestDB(t *testing.T) *SQLiteProvider {
	t.Helper()
	provider, err := NewSQLiteProvider(filepath.Join(t.TempDir(), "config.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { provider.Close() })

	if err := provider.Migrate(context.Background(), nil); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return provider
}

func TestSQLiteRoundTrip(t *testing.T) {
	cfg := loadTestConfig(t)
	provider := openTestDB(t)

	if err := provider.SaveConfig(cfg); err != nil {
		t.Fatalf("failed to save configuration: %v", err)
	}
	got, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("failed to load configuration: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("stored configuration differs:\n got %+v\nwant %+v", got, cfg)
	}

	zones, err := provider.GetZones()
	if err != nil || len(zones) != 2 {
		t.Errorf("GetZones returned %d zones, err %v", len(zones), err)
	}
	settings, err := provider.GetSettings()
	if err != nil || len(settings) != 1 {
		t.Errorf("GetSettings returned %d settings, err %v", len(settings), err)
	}
}

func TestSQLiteSaveReplaces(t *testing.T) {
	cfg := loadTestConfig(t)
	provider := openTestDB(t)

	if err := provider.SaveConfig(cfg); err != nil {
		t.Fatal(err)
	}
	cfg.Zones = cfg.Zones[:1]
	cfg.OutputTimes = nil
	cfg.Engine = nil
	if err := provider.SaveConfig(cfg); err != nil {
		t.Fatal(err)
	}

	got, err := provider.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Zones) != 1 || got.OutputTimes != nil || got.Engine != nil {
		t.Errorf("save did not replace the stored configuration: %+v", got)
	}

	names, err := provider.ConfigNames()
	if err != nil || !reflect.DeepEqual(names, []string{DefaultConfigName}) {
		t.Errorf("config names %v, err %v", names, err)
	}
}

func TestSQLiteNamedConfigs(t *testing.T) {
	provider := openTestDB(t)

	provider.UseConfig("storm")
	if _, err := provider.LoadConfig(); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}

	cfg := loadTestConfig(t)
	cfg.Name = "storm"
	if err := provider.SaveConfig(cfg); err != nil {
		t.Fatal(err)
	}
	got, err := provider.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "storm" {
		t.Errorf("name %q, want storm", got.Name)
	}

	provider.UseConfig("")
	if _, err := provider.GetZones(); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound for the default configuration, got %v", err)
	}
}

func TestProvidersReadOnly(t *testing.T) {
	if !NewYAMLProvider("run.yaml").IsReadOnly() {
		t.Error("YAML provider should be read-only")
	}
	if openTestDB(t).IsReadOnly() {
		t.Error("SQLite provider should be writable")
	}
}

func TestMissingYAML(t *testing.T) {
	_, err := NewYAMLProvider(filepath.Join(t.TempDir(), "missing.yaml")).LoadConfig()
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}
