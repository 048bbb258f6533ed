// This file translates the HCL schema structs into the format-agnostic
// dependency graph model defined in the depgraph package.

package graphfile

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/vk/rtdeps/internal/ctxlog"
	"github.com/vk/rtdeps/internal/depgraph"
)

// translate converts a decoded graph file into the agnostic model. Relative
// package folders are anchored at baseDir, the directory holding the file.
func (l *Loader) translate(ctx context.Context, baseDir string, root *fileRoot) *depgraph.Graph {
	graph := &depgraph.Graph{
		TargetFramework: strings.TrimSpace(root.TargetFramework),
		Libraries:       make([]*depgraph.Library, 0, len(root.Libraries)),
	}
	for _, folder := range root.PackageFolders {
		folder = strings.TrimSpace(folder)
		if folder == "" {
			continue
		}
		if !filepath.IsAbs(folder) {
			folder = filepath.Join(baseDir, folder)
		}
		graph.PackageFolders = append(graph.PackageFolders, folder)
	}
	for _, lb := range root.Libraries {
		graph.Libraries = append(graph.Libraries, l.translateLibrary(ctx, lb))
	}
	return graph
}

// translateLibrary converts one library block into a depgraph.Library.
func (l *Loader) translateLibrary(ctx context.Context, lb *libraryBlock) *depgraph.Library {
	ctxlog.Trace(ctx, "Translating HCL library block.", "library", lb.Name, "version", lb.Version,
		"runtime_groups", len(lb.RuntimeAssemblies), "native_groups", len(lb.NativeLibraries))

	return &depgraph.Library{
		Name:                  strings.TrimSpace(lb.Name),
		Version:               strings.TrimSpace(lb.Version),
		Path:                  strings.TrimSpace(lb.Path),
		ScriptPath:            strings.TrimSpace(lb.ScriptPath),
		RuntimeAssemblyGroups: translateGroups(lb.RuntimeAssemblies),
		NativeLibraryGroups:   translateGroups(lb.NativeLibraries),
	}
}

func translateGroups(blocks []*groupBlock) []depgraph.AssetGroup {
	groups := make([]depgraph.AssetGroup, 0, len(blocks))
	for _, b := range blocks {
		groups = append(groups, depgraph.AssetGroup{
			Runtime:    strings.TrimSpace(b.RID),
			AssetPaths: append([]string(nil), b.Paths...),
		})
	}
	return groups
}
