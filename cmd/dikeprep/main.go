package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/chrissnell/dikeprep/internal/app"
	"github.com/chrissnell/dikeprep/internal/log"
	"github.com/chrissnell/dikeprep/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "run.yaml", "Path to configuration source:\n\t\t\t  YAML: run.yaml\n\t\t\t  SQLite: runs.db\n\t\t\t  Use 'config-convert' tool to convert YAML→SQLite")
	cfgBackend := flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' for YAML files, 'sqlite' for SQLite databases")
	cfgName := flag.String("name", config.DefaultConfigName, "Name of the configuration to load from a SQLite database")
	output := flag.String("output", "", "Path to write the prepared bundle to, '-' for stdout (default: output.path from the configuration)")
	format := flag.String("format", "", "Bundle format: 'json' or 'msgpack' (default: from the configuration or the output extension)")
	result := flag.String("result", "", "Path to write engine results to")
	skipEngine := flag.Bool("no-engine", false, "Prepare the bundle without running the configured engine")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("dikeprep %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Load configuration
	cfgData, err := loadConfig(*cfgFile, *cfgBackend, *cfgName)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	filename, _ := filepath.Abs(*cfgFile)
	opts := app.Options{
		BaseDir:    filepath.Dir(filename),
		OutputPath: *output,
		Format:     *format,
		ResultPath: *result,
		SkipEngine: *skipEngine,
	}

	// Create and run the application
	application := app.New(cfgData, opts, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

func loadConfig(cfgFile, cfgBackend, cfgName string) (*config.ConfigData, error) {
	filename, _ := filepath.Abs(cfgFile)

	var provider config.ConfigProvider

	switch cfgBackend {
	case "yaml":
		provider = config.NewYAMLProvider(filename)
	case "sqlite":
		sqliteProvider, err := config.NewSQLiteProvider(filename)
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
		sqliteProvider.UseConfig(cfgName)
		provider = sqliteProvider
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
	}
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}

	return cfgData, nil
}
