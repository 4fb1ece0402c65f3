package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrissnell/dikeprep/internal/log"
	"github.com/chrissnell/dikeprep/pkg/config"
)

func main() {
	var (
		yamlFile   = flag.String("yaml", "", "Path to YAML configuration file (required)")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite database file (required)")
		name       = flag.String("name", "", "Name to store the configuration under (default: name from the YAML file, or 'default')")
		force      = flag.Bool("force", false, "Overwrite existing SQLite database")
		dryRun     = flag.Bool("dry-run", false, "Show what would be done without executing")
	)
	flag.Parse()

	if *yamlFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <run.yaml> -sqlite <runs.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Check if YAML file exists
	if _, err := os.Stat(*yamlFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: YAML file does not exist: %s\n", *yamlFile)
		os.Exit(1)
	}

	// Check if SQLite file already exists
	if _, err := os.Stat(*sqliteFile); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: SQLite file already exists: %s\n", *sqliteFile)
		fmt.Fprintf(os.Stderr, "Use -force to overwrite or choose a different filename\n")
		os.Exit(1)
	}

	fmt.Printf("Converting YAML configuration to SQLite...\n")
	fmt.Printf("  Source: %s\n", *yamlFile)
	fmt.Printf("  Target: %s\n", *sqliteFile)

	if *dryRun {
		fmt.Println("DRY RUN - No changes will be made")
	}

	// Load YAML configuration
	fmt.Printf("Loading YAML configuration...\n")
	configData, err := config.NewYAMLProvider(*yamlFile).LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading YAML configuration: %v\n", err)
		os.Exit(1)
	}

	configName := *name
	if configName == "" {
		configName = configData.Name
	}
	if configName == "" {
		configName = config.DefaultConfigName
	}
	configData.Name = configName

	fmt.Printf("  Loaded %d locations, %d zones, %d settings\n",
		len(configData.Locations), len(configData.Zones), len(configData.Settings))

	if *dryRun {
		printConfigSummary(configData)
		fmt.Println("DRY RUN complete - no database created")
		return
	}

	// Remove existing SQLite file if force is specified
	if *force {
		if err := os.Remove(*sqliteFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error removing existing SQLite file: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Creating SQLite database...\n")
	if err := convert(*sqliteFile, configData); err != nil {
		fmt.Fprintf(os.Stderr, "Error converting configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Conversion completed successfully!\n")
	fmt.Printf("You can now use the SQLite backend with: -config-backend sqlite -config %s -name %s\n", *sqliteFile, configName)
}

func convert(dbPath string, configData *config.ConfigData) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	provider, err := config.NewSQLiteProvider(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create SQLite provider: %w", err)
	}
	defer provider.Close()

	// Run database migrations from the embedded schema
	if err := provider.Migrate(context.Background(), log.GetSugaredLogger()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	provider.UseConfig(configData.Name)
	if err := provider.SaveConfig(configData); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("  Configuration %q successfully inserted into database\n", configData.Name)
	return nil
}

func printConfigSummary(configData *config.ConfigData) {
	fmt.Println("\nConfiguration Summary:")
	fmt.Printf("Name: %s\n", configData.Name)

	switch {
	case configData.Forcing.File != "":
		fmt.Printf("Forcing: %s\n", configData.Forcing.File)
	default:
		fmt.Printf("Forcing: %d inline time steps\n", len(configData.Forcing.TimeSteps))
	}
	switch {
	case configData.Dike.File != "":
		fmt.Printf("Dike: %s\n", configData.Dike.File)
	default:
		fmt.Printf("Dike: %d inline points\n", len(configData.Dike.XPositions))
	}

	fmt.Printf("\nLocations (%d):\n", len(configData.Locations))
	for _, loc := range configData.Locations {
		fmt.Printf("  - x=%g %s (%s)\n", loc.XPosition, loc.TopLayer.Type, loc.TopLayer.Method)
	}

	fmt.Printf("\nZones (%d):\n", len(configData.Zones))
	for _, zone := range configData.Zones {
		switch {
		case zone.Horizontal != nil:
			fmt.Printf("  - horizontal x=[%g, %g] %s\n", zone.Horizontal.XMin, zone.Horizontal.XMax, zone.TopLayer.Type)
		case zone.Vertical != nil:
			fmt.Printf("  - vertical z=[%g, %g] %s %s\n", zone.Vertical.ZMin, zone.Vertical.ZMax, zone.Vertical.Side, zone.TopLayer.Type)
		}
	}

	fmt.Printf("\nSettings (%d):\n", len(configData.Settings))
	for _, s := range configData.Settings {
		fmt.Printf("  - %s\n", s.Method)
	}
}
