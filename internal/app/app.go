package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/specialistvlad/carpdriver/internal/config"
	"github.com/specialistvlad/carpdriver/internal/ctxlog"
	"github.com/specialistvlad/carpdriver/internal/job"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	params *config.Model

	runner job.Runner
	now    func() time.Time

	httpServer *http.Server

	mu     sync.Mutex
	status Status
}

// Option customizes an App, mostly for tests.
type Option func(*App)

// WithRunner replaces the process runner used for the solver and visualizer.
func WithRunner(r job.Runner) Option {
	return func(a *App) { a.runner = r }
}

// WithClock replaces the clock used for job ids and manifests.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// NewApp returns a fully initialized App. Parameters are the built-in
// defaults, overridden by whatever the loader reads from cfg.ParamsPath.
// Commands printed in dry-run mode go to outW, logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	params := config.Defaults()
	if cfg.ParamsPath != "" {
		override, err := loader.Load(ctx, cfg.ParamsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load parameters: %w", err)
		}
		params = config.Merge(params, override)
		logger.Debug("Parameters loaded.", "path", cfg.ParamsPath)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if cfg.VisData == VisDataLAT && len(params.LATs) == 0 {
		return nil, fmt.Errorf("vis-data %q requires at least one lat block", VisDataLAT)
	}

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		params: params,
		now:    time.Now,
		status: Status{Stage: StageIdle},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Params returns the effective simulation parameters.
func (a *App) Params() *config.Model {
	return a.params
}
