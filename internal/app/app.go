// Package app runs one preparation: configuration in, bundle out, optionally through the engine.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/chrissnell/dikeprep/internal/engine"
	"github.com/chrissnell/dikeprep/internal/prepare"
	"github.com/chrissnell/dikeprep/pkg/bundleformat"
	"github.com/chrissnell/dikeprep/pkg/config"
)

// Options override the output section of the configuration
type Options struct {
	// BaseDir resolves relative file references in the configuration
	BaseDir string
	// OutputPath is where the bundle is written; "-" or empty with no configured path means stdout
	OutputPath string
	Format     string
	// ResultPath is where engine results are written; empty means they are only logged
	ResultPath string
	// SkipEngine prepares the bundle without running a configured engine
	SkipEngine bool
	// Engine replaces the command engine from the configuration
	Engine engine.Engine
}

// App represents the main application
type App struct {
	cfg      *config.ConfigData
	opts     Options
	logger   *zap.SugaredLogger
	preparer *prepare.Preparer
	stdout   io.Writer
}

// New creates a new application instance
func New(cfg *config.ConfigData, opts Options, logger *zap.SugaredLogger) *App {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &App{
		cfg:      cfg,
		opts:     opts,
		logger:   logger,
		preparer: prepare.NewPreparer(logger),
		stdout:   os.Stdout,
	}
}

// Run prepares the bundle, writes it and, when an engine is available, runs the calculation.
// SIGINT and SIGTERM cancel the run.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	in, err := config.BuildInput(a.cfg, a.opts.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to build calculation input: %w", err)
	}

	bundle, err := a.preparer.Prepare(ctx, in)
	if err != nil {
		return err
	}

	path, formatter, err := a.output()
	if err != nil {
		return err
	}
	if err := a.write(path, formatter, bundle); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	a.logger.Infow("wrote bundle", "run_id", bundle.RunID, "path", describe(path), "format", formatter.Format())

	eng := a.engine()
	if eng == nil {
		return nil
	}

	result, err := eng.Calculate(ctx, bundle)
	if err != nil {
		return fmt.Errorf("engine failed: %w", err)
	}
	for _, loc := range result.Locations {
		a.logger.Infow("location result", "x", loc.XPosition, "failed", loc.Failed, "failure_time", loc.FailureTime)
	}

	if a.opts.ResultPath != "" {
		resultFormatter := bundleformat.NewFormatter(bundleformat.FormatForPath(a.opts.ResultPath), true)
		if err := a.write(a.opts.ResultPath, resultFormatter, result); err != nil {
			return fmt.Errorf("failed to write engine result: %w", err)
		}
	}
	return nil
}

func (a *App) output() (string, *bundleformat.Formatter, error) {
	path := a.opts.OutputPath
	if path == "" {
		path = a.cfg.Output.Path
		if path != "" && path != "-" && !filepath.IsAbs(path) && a.opts.BaseDir != "" {
			path = filepath.Join(a.opts.BaseDir, path)
		}
	}

	name := a.opts.Format
	if name == "" {
		name = a.cfg.Output.Format
	}

	var format bundleformat.Format
	if name == "" && path != "" && path != "-" {
		format = bundleformat.FormatForPath(path)
	} else {
		var err error
		if format, err = bundleformat.ParseFormat(name); err != nil {
			return "", nil, err
		}
	}
	return path, bundleformat.NewFormatter(format, true), nil
}

func (a *App) write(path string, formatter *bundleformat.Formatter, data any) error {
	if path == "" || path == "-" {
		return formatter.Encode(a.stdout, data)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := formatter.Encode(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (a *App) engine() engine.Engine {
	if a.opts.SkipEngine {
		return nil
	}
	if a.opts.Engine != nil {
		return a.opts.Engine
	}
	if a.cfg.Engine == nil || a.cfg.Engine.Command == "" {
		return nil
	}
	return engine.NewCommandEngine(a.cfg.Engine.Command, a.cfg.Engine.Args, a.logger)
}

func describe(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}
