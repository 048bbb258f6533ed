package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/rtdeps/internal/assembly"
	"github.com/vk/rtdeps/internal/environment"
	"github.com/vk/rtdeps/internal/graphfile"
	"github.com/vk/rtdeps/internal/metrics"
	"github.com/vk/rtdeps/internal/resolver"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	env      environment.Descriptor
	resolver *resolver.Resolver
	metrics  *metrics.Recorder
}

// NewApp is the constructor for the main application. Resolution output goes
// to outW and log output to logW. Each App owns its logger and metrics.
func NewApp(outW, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	env, err := environment.Detect(environment.Overrides{
		Platform:           cfg.Platform,
		Architecture:       cfg.Architecture,
		RuntimeIdentifier:  cfg.RuntimeIdentifier,
		TargetFramework:    cfg.TargetFramework,
		GlobalPackagesPath: cfg.GlobalPackages,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to detect environment: %w", err)
	}
	logger.Debug("Environment detected.",
		"platform", env.Platform,
		"architecture", env.Architecture,
		"rid", env.RuntimeIdentifier,
		"framework", env.TargetFramework,
		"global_packages", env.GlobalPackagesPath,
	)

	rec := metrics.New()
	res, err := resolver.New(env, resolver.Options{
		Provider:   graphfile.NewLoader(env),
		Locator:    graphfile.NewLocator(),
		Assemblies: assembly.NewReader(logger),
		Metrics:    rec,
		Workers:    cfg.WorkerCount,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		env:      env,
		resolver: res,
		metrics:  rec,
	}, nil
}

// Environment returns the descriptor the App resolves for.
func (a *App) Environment() environment.Descriptor {
	return a.env
}

// Metrics returns the App's metrics recorder. This is primarily for testing.
func (a *App) Metrics() *metrics.Recorder {
	return a.metrics
}
