package depgraph

import (
	"path"
	"strings"

	"github.com/vk/rtdeps/internal/environment"
)

// PlaceholderMarker is the trailing file name that marks an asset group as
// intentionally empty.
const PlaceholderMarker = "_._"

// Graph is an ordered collection of library nodes plus the cache-specific
// package folders they were restored into.
type Graph struct {
	Libraries []*Library
	// PackageFolders are searched before the environment's global store.
	PackageFolders []string
	// TargetFramework is the framework the graph was restored for, if known.
	TargetFramework string
	// Sources are the package source URIs the graph was produced from. They
	// are kept for diagnostics only.
	Sources []string
}

// Library is a single node of the graph, identified by (Name, Version).
type Library struct {
	Name    string
	Version string
	// Path is the library's base path, relative to a package folder.
	Path string
	// ScriptPath is the base path probed for bundled script files. It
	// defaults to Path.
	ScriptPath            string
	RuntimeAssemblyGroups []AssetGroup
	NativeLibraryGroups   []AssetGroup
}

// AssetGroup is a runtime tag plus an ordered list of asset paths relative to
// the owning library's base path. A blank Runtime applies to any runtime.
type AssetGroup struct {
	Runtime    string
	AssetPaths []string
}

// IsPlaceholder reports whether assetPath marks an intentionally empty group.
func IsPlaceholder(assetPath string) bool {
	return strings.HasSuffix(strings.TrimSpace(assetPath), PlaceholderMarker)
}

// IsRuntimeAgnostic reports whether the group applies to every runtime.
func (g AssetGroup) IsRuntimeAgnostic() bool {
	return strings.TrimSpace(g.Runtime) == ""
}

// RealAssets returns the group's asset paths with placeholders removed, in
// declaration order.
func (g AssetGroup) RealAssets() []string {
	assets := make([]string, 0, len(g.AssetPaths))
	for _, p := range g.AssetPaths {
		if IsPlaceholder(p) {
			continue
		}
		assets = append(assets, p)
	}
	return assets
}

// AssetPath joins the library base path and a group-relative asset path into
// the path probed under each package folder.
func (l *Library) AssetPath(asset string) string {
	if l.Path == "" {
		return asset
	}
	return path.Join(filepathToSlash(l.Path), filepathToSlash(asset))
}

// ScriptBasePath returns ScriptPath, falling back to Path.
func (l *Library) ScriptBasePath() string {
	if l.ScriptPath != "" {
		return l.ScriptPath
	}
	return l.Path
}

// ID returns the "name/version" identity of the library.
func (l *Library) ID() string {
	return l.Name + "/" + l.Version
}

// SearchRoots returns the ordered package folders to probe: the graph's own
// folders first, then the environment's global store. Blank and repeated
// entries are dropped so that each root is probed once, at its first
// position.
func (g *Graph) SearchRoots(env environment.Descriptor) []string {
	roots := make([]string, 0, len(g.PackageFolders)+1)
	seen := make(map[string]struct{}, len(g.PackageFolders)+1)
	add := func(root string) {
		root = strings.TrimSpace(root)
		if root == "" {
			return
		}
		if _, dup := seen[root]; dup {
			return
		}
		seen[root] = struct{}{}
		roots = append(roots, root)
	}
	for _, f := range g.PackageFolders {
		add(f)
	}
	add(env.GlobalPackagesPath)
	return roots
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
