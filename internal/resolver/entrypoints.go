package resolver

import (
	"context"

	"github.com/vk/rtdeps/internal/ctxlog"
)

// ResolveForScriptDirectory resolves the dependencies of the scripts in dir,
// including bundled script files.
func (r *Resolver) ResolveForScriptDirectory(ctx context.Context, dir string, packageSources []string) ([]RuntimeDependency, error) {
	if r.locator == nil {
		return nil, ErrNotConfigured
	}
	project, err := r.locator.ProjectForDirectory(ctx, dir)
	if err != nil {
		return nil, &GraphUnavailableError{Err: err}
	}
	return r.resolveProject(ctx, project, packageSources, true)
}

// ResolveForScriptFile resolves the dependencies of a single script file,
// including bundled script files.
func (r *Resolver) ResolveForScriptFile(ctx context.Context, scriptFile string, packageSources []string) ([]RuntimeDependency, error) {
	if r.locator == nil {
		return nil, ErrNotConfigured
	}
	project, err := r.locator.ProjectForScript(ctx, scriptFile)
	if err != nil {
		return nil, &GraphUnavailableError{Err: err}
	}
	return r.resolveProject(ctx, project, packageSources, true)
}

// ResolveForCompiledArtifact resolves the dependencies of a compiled script.
// Script files are never returned since the artifact already contains them.
func (r *Resolver) ResolveForCompiledArtifact(ctx context.Context, artifactPath string) ([]RuntimeDependency, error) {
	if r.locator == nil {
		return nil, ErrNotConfigured
	}
	project, err := r.locator.ProjectForArtifact(ctx, artifactPath)
	if err != nil {
		return nil, &GraphUnavailableError{Err: err}
	}
	return r.resolveProject(ctx, project, nil, false)
}

func (r *Resolver) resolveProject(ctx context.Context, project string, packageSources []string, restorePackages bool) ([]RuntimeDependency, error) {
	if r.provider == nil {
		return nil, ErrNotConfigured
	}
	ctxlog.FromContext(ctx).Debug("Loading dependency graph.", "project", project, "sources", packageSources)
	graph, err := r.provider.DependencyGraph(ctx, project, packageSources)
	if err != nil {
		return nil, &GraphUnavailableError{ProjectPath: project, Err: err}
	}
	return r.ResolveGraph(ctx, graph, restorePackages)
}
