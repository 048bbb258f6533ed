package resolver

import (
	"context"

	"github.com/vk/rtdeps/internal/assembly"
	"github.com/vk/rtdeps/internal/depgraph"
)

// GraphProvider produces the dependency graph of a project. Restoring
// packages, if needed, is the provider's business.
type GraphProvider interface {
	DependencyGraph(ctx context.Context, projectPath string, packageSources []string) (*depgraph.Graph, error)
}

// ProjectLocator maps the three supported inputs to the project path a
// GraphProvider understands.
type ProjectLocator interface {
	ProjectForDirectory(ctx context.Context, dir string) (string, error)
	ProjectForScript(ctx context.Context, scriptFile string) (string, error)
	ProjectForArtifact(ctx context.Context, artifactPath string) (string, error)
}

// ScriptExtractor finds the script files bundled by the library stored at
// libraryPath under one of roots.
type ScriptExtractor interface {
	Extract(ctx context.Context, libraryPath string, roots []string) ([]string, error)
}

// AssemblyReader reads the identity of a resolved managed assembly.
type AssemblyReader interface {
	ReadIdentity(path string) (assembly.Identity, error)
}
