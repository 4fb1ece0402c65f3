package main

import (
	"flag"
	"fmt"
	"os"
	"reflect"

	"github.com/chrissnell/dikeprep/pkg/config"
)

func main() {
	var (
		yamlFile   = flag.String("yaml", "", "Path to YAML configuration file")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite configuration file")
		name       = flag.String("name", "", "Name of the stored configuration (default: name from the YAML file, or 'default')")
	)
	flag.Parse()

	if *yamlFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <run.yaml> -sqlite <runs.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	fmt.Println("Configuration Comparison Test")
	fmt.Println("===========================")

	// Load YAML configuration
	fmt.Printf("Loading YAML configuration: %s\n", *yamlFile)
	yamlConfig, err := config.NewYAMLProvider(*yamlFile).LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading YAML config: %v\n", err)
		os.Exit(1)
	}

	configName := *name
	if configName == "" {
		configName = yamlConfig.Name
	}
	if configName == "" {
		configName = config.DefaultConfigName
	}
	yamlConfig.Name = configName

	// Load SQLite configuration
	fmt.Printf("Loading SQLite configuration: %s (%s)\n", *sqliteFile, configName)
	sqliteProvider, err := config.NewSQLiteProvider(*sqliteFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating SQLite provider: %v\n", err)
		os.Exit(1)
	}
	defer sqliteProvider.Close()
	sqliteProvider.UseConfig(configName)

	sqliteConfig, err := sqliteProvider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading SQLite config: %v\n", err)
		os.Exit(1)
	}

	// Compare configurations
	fmt.Println("\nComparison Results:")
	fmt.Println("==================")

	sections := []struct {
		name         string
		yaml, sqlite any
	}{
		{"Forcing", yamlConfig.Forcing, sqliteConfig.Forcing},
		{"Dike", yamlConfig.Dike, sqliteConfig.Dike},
		{"Start time", yamlConfig.StartTime, sqliteConfig.StartTime},
		{"Stop time", yamlConfig.StopTime, sqliteConfig.StopTime},
		{"Output times", yamlConfig.OutputTimes, sqliteConfig.OutputTimes},
		{"Locations", yamlConfig.Locations, sqliteConfig.Locations},
		{"Zones", yamlConfig.Zones, sqliteConfig.Zones},
		{"Settings", yamlConfig.Settings, sqliteConfig.Settings},
		{"Output", yamlConfig.Output, sqliteConfig.Output},
		{"Engine", yamlConfig.Engine, sqliteConfig.Engine},
	}

	differences := 0
	for _, s := range sections {
		if reflect.DeepEqual(s.yaml, s.sqlite) {
			fmt.Printf("✓ %s matches\n", s.name)
			continue
		}
		differences++
		fmt.Printf("✗ %s differs\n", s.name)
		fmt.Printf("  YAML:   %+v\n", s.yaml)
		fmt.Printf("  SQLite: %+v\n", s.sqlite)
	}

	if differences > 0 {
		fmt.Printf("\n%d section(s) differ\n", differences)
		os.Exit(1)
	}
	fmt.Println("\nConfigurations are identical")
}
