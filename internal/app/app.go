package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/pathweaver/internal/config"
	"github.com/specialistvlad/pathweaver/internal/ctxlog"
	"github.com/specialistvlad/pathweaver/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	configs  *config.Service
	cfg      *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:     outW,
		logger:   logger,
		registry: registry.New(),
		configs:  config.NewService(),
		cfg:      appConfig,
	}
	a.registerTasks()
	logger.Debug("Tasks registered.", "count", len(a.registry.List()))

	return a
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Run executes the task named by the configuration's Command field.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.cfg.Command)

	task, err := a.registry.Get(a.cfg.Command)
	if err != nil {
		return err
	}

	if err := task(ctx, a.cfg.Args); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
