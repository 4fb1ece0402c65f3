package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

// Engine runs the erosion calculation for a prepared bundle
type Engine interface {
	Calculate(ctx context.Context, b *Bundle) (*Result, error)
}

// Result is the engine output per location
type Result struct {
	RunID     string           `json:"run_id" msgpack:"run_id"`
	Locations []LocationResult `json:"locations" msgpack:"locations"`
}

// LocationResult is the damage development at one output location
type LocationResult struct {
	XPosition   float64   `json:"x_position" msgpack:"x_position"`
	TimeSteps   []float64 `json:"time_steps" msgpack:"time_steps"`
	Damage      []float64 `json:"damage" msgpack:"damage"`
	Failed      bool      `json:"failed" msgpack:"failed"`
	FailureTime *float64  `json:"failure_time,omitempty" msgpack:"failure_time,omitempty"`
}

// ErrNoCommand is returned when a CommandEngine has no executable configured
var ErrNoCommand = errors.New("no engine command configured")

// CommandEngine runs an external executable. The bundle is written to its stdin as
// MessagePack and a MessagePack Result is read from its stdout.
type CommandEngine struct {
	Path   string
	Args   []string
	Env    []string
	logger *zap.SugaredLogger
}

// NewCommandEngine returns an engine running the given executable
func NewCommandEngine(path string, args []string, logger *zap.SugaredLogger) *CommandEngine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &CommandEngine{Path: path, Args: args, logger: logger}
}

func (e *CommandEngine) Calculate(ctx context.Context, b *Bundle) (*Result, error) {
	if e.Path == "" {
		return nil, ErrNoCommand
	}
	logger := e.logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	input, err := msgpack.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bundle: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.Path, e.Args...)
	if len(e.Env) > 0 {
		cmd.Env = append(cmd.Environ(), e.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Infow("starting calculation engine", "path", e.Path, "run_id", b.RunID, "locations", len(b.Locations))
	runErr := cmd.Run()

	for _, line := range strings.Split(strings.TrimSpace(stderr.String()), "\n") {
		if line != "" {
			logger.Debugw("engine", "run_id", b.RunID, "stderr", line)
		}
	}

	if runErr != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("calculation engine cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("calculation engine failed: %w", runErr)
	}

	var result Result
	if err := msgpack.Unmarshal(stdout.Bytes(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode engine result: %w", err)
	}
	if len(result.Locations) != len(b.Locations) {
		return nil, fmt.Errorf("engine returned %d location results for %d locations",
			len(result.Locations), len(b.Locations))
	}

	logger.Infow("calculation engine finished", "run_id", b.RunID)
	return &result, nil
}
