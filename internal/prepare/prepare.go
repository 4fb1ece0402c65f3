package prepare

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chrissnell/dikeprep/internal/engine"
	"github.com/chrissnell/dikeprep/internal/revetment"
)

// Preparer turns validated input into an engine bundle
type Preparer struct {
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewPreparer creates a Preparer logging to the given logger
func NewPreparer(logger *zap.SugaredLogger) *Preparer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Preparer{logger: logger, now: time.Now}
}

// Prepare validates the input, expands the revetment zones into output locations, puts the
// forcing on the run grid and resolves the settings of every location. Nothing is returned
// when the input is invalid.
func (p *Preparer) Prepare(ctx context.Context, in *Input) (*engine.Bundle, error) {
	if err := Validate(in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	locations, err := p.Locations(ctx, in)
	if err != nil {
		return nil, err
	}

	grid := in.TimeGrid()
	forcing, err := in.Hydrodynamics.Resample(grid)
	if err != nil {
		return nil, err
	}

	bundle := &engine.Bundle{
		RunID:       uuid.NewString(),
		CreatedAt:   p.now().UTC(),
		TimeSteps:   grid,
		OutputTimes: in.OutputTimes,
		Forcing:     forcing,
		Dike:        in.Dike,
		Locations:   make([]engine.Location, len(locations)),
	}

	for i, loc := range locations {
		resolved := revetment.Resolve(loc, in.Settings)
		for _, m := range resolved.Missing {
			p.logger.Debugw("unresolved settings", "x", loc.XPosition, "method", loc.Method(), "missing", m)
		}
		bundle.Locations[i] = engine.Location{Location: loc, Resolved: resolved}
	}

	p.logger.Infow("prepared calculation",
		"run_id", bundle.RunID,
		"time_steps", len(grid),
		"locations", len(locations),
		"unresolved", bundle.Missing())

	return bundle, nil
}

// Locations returns the explicit output locations followed by the locations of every zone, in
// zone order. Zones are expanded concurrently.
func (p *Preparer) Locations(ctx context.Context, in *Input) ([]revetment.Location, error) {
	generated := make([][]revetment.Location, len(in.Zones))

	g, ctx := errgroup.WithContext(ctx)
	for i, zone := range in.Zones {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			locs, err := zone.Locations(in.Dike)
			if err != nil {
				return fmt.Errorf("revetment zone %d: %w", i, err)
			}
			generated[i] = locs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	locations := append([]revetment.Location(nil), in.Locations...)
	for i, locs := range generated {
		p.logger.Debugw("expanded revetment zone", "zone", i, "locations", len(locs))
		locations = append(locations, locs...)
	}
	return locations, nil
}
