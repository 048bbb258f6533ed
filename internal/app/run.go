package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/rtdeps/internal/ctxlog"
	"github.com/vk/rtdeps/internal/fsutil"
	"github.com/vk/rtdeps/internal/resolver"
)

// Run resolves the configured target and writes the report to the App's
// output writer.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "target", a.config.Target)

	if a.config.MetricsTextfile != "" {
		defer func() {
			if werr := a.metrics.WriteTextfile(a.config.MetricsTextfile); werr != nil {
				err = errors.Join(err, fmt.Errorf("failed to write metrics textfile: %w", werr))
			}
		}()
	}

	deps, err := a.resolve(ctx)
	if err != nil {
		return fmt.Errorf("resolution failed: %w", err)
	}
	a.logger.Info("Runtime dependencies resolved.", "libraries", len(deps))

	if err := a.render(deps); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// resolve picks the entry point matching the target.
func (a *App) resolve(ctx context.Context) ([]resolver.RuntimeDependency, error) {
	target := a.config.Target
	switch {
	case a.config.Compiled || strings.EqualFold(filepath.Ext(target), ".dll"):
		a.logger.Debug("Resolving compiled artifact.", "path", target)
		return a.resolver.ResolveForCompiledArtifact(ctx, target)
	case fsutil.DirExists(target):
		a.logger.Debug("Resolving script directory.", "path", target)
		return a.resolver.ResolveForScriptDirectory(ctx, target, a.config.PackageSources)
	default:
		a.logger.Debug("Resolving script file.", "path", target)
		return a.resolver.ResolveForScriptFile(ctx, target, a.config.PackageSources)
	}
}
