package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/rtdeps/internal/ctxlog"
	"github.com/vk/rtdeps/internal/depgraph"
	"github.com/vk/rtdeps/internal/fsutil"
	"github.com/vk/rtdeps/internal/metrics"
)

// bestAssemblyGroup returns the runtime-assembly group tagged with the exact
// runtime identifier, else the first runtime-agnostic group.
func (r *Resolver) bestAssemblyGroup(lib *depgraph.Library) (depgraph.AssetGroup, bool) {
	for _, g := range lib.RuntimeAssemblyGroups {
		if strings.TrimSpace(g.Runtime) == r.env.RuntimeIdentifier {
			return g, true
		}
	}
	for _, g := range lib.RuntimeAssemblyGroups {
		if g.IsRuntimeAgnostic() {
			return g, true
		}
	}
	return depgraph.AssetGroup{}, false
}

func (r *Resolver) selectAssemblies(ctx context.Context, lib *depgraph.Library, roots []string) ([]RuntimeAssembly, error) {
	logger := ctxlog.FromContext(ctx)
	group, ok := r.bestAssemblyGroup(lib)
	if !ok {
		if len(lib.RuntimeAssemblyGroups) > 0 {
			r.metrics.NoCompatibleGroup(metrics.KindAssembly)
			logger.Debug("No runtime assembly group matches.", "rid", r.env.RuntimeIdentifier)
		}
		return []RuntimeAssembly{}, nil
	}

	assets := group.RealAssets()
	r.skipPlaceholders(group, assets)
	assemblies := make([]RuntimeAssembly, 0, len(assets))
	for _, asset := range assets {
		path, err := r.resolveAsset(lib, asset, roots, metrics.KindAssembly)
		if err != nil {
			return nil, err
		}
		id, err := r.assemblies.ReadIdentity(path)
		if err != nil {
			return nil, fmt.Errorf("read assembly identity: %w", err)
		}
		ctxlog.Trace(ctx, "Resolved runtime assembly.", "path", path, "identity", id.String())
		assemblies = append(assemblies, RuntimeAssembly{Identity: id, Path: path})
	}
	return assemblies, nil
}

func (r *Resolver) selectNative(ctx context.Context, lib *depgraph.Library, roots []string) ([]string, error) {
	native := []string{}
	matched := false
	for _, group := range lib.NativeLibraryGroups {
		if !r.matcher.Compatible(group.Runtime) {
			continue
		}
		matched = true
		assets := group.RealAssets()
		r.skipPlaceholders(group, assets)
		for _, asset := range assets {
			path, err := r.resolveAsset(lib, asset, roots, metrics.KindNative)
			if err != nil {
				return nil, err
			}
			ctxlog.Trace(ctx, "Resolved native asset.", "path", path, "rid", group.Runtime)
			native = append(native, path)
		}
	}
	if !matched && len(lib.NativeLibraryGroups) > 0 {
		r.metrics.NoCompatibleGroup(metrics.KindNative)
	}
	return native, nil
}

// scripts only consults the extractor when running from restored source;
// compiled artifacts already embed their scripts.
func (r *Resolver) scripts(ctx context.Context, lib *depgraph.Library, p pass) ([]string, error) {
	if !p.restorePackages {
		return []string{}, nil
	}
	files, err := p.extractor.Extract(ctx, lib.ScriptBasePath(), p.roots)
	if err != nil {
		return nil, fmt.Errorf("extract script files: %w", err)
	}
	if files == nil {
		return []string{}, nil
	}
	for range files {
		r.metrics.AssetResolved(metrics.KindScript)
	}
	return files, nil
}

// skipPlaceholders counts the placeholder entries dropped from group.
func (r *Resolver) skipPlaceholders(group depgraph.AssetGroup, kept []string) {
	for range len(group.AssetPaths) - len(kept) {
		r.metrics.PlaceholderSkipped()
	}
}

func (r *Resolver) resolveAsset(lib *depgraph.Library, asset string, roots []string, kind string) (string, error) {
	path, err := fsutil.Resolve(lib.AssetPath(asset), roots)
	if err != nil {
		var notFound *fsutil.AssetNotFoundError
		if errors.As(err, &notFound) {
			r.metrics.AssetNotFound(kind)
		}
		return "", err
	}
	r.metrics.AssetResolved(kind)
	return path, nil
}
