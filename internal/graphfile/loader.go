package graphfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/rtdeps/internal/ctxlog"
	"github.com/vk/rtdeps/internal/depgraph"
	"github.com/vk/rtdeps/internal/environment"
)

// Loader reads HCL graph files into the format-agnostic depgraph model.
type Loader struct {
	env     environment.Descriptor
	environ func() []string
}

// NewLoader creates a graph file loader. The environment supplies the
// `global_packages` variable available to expressions.
func NewLoader(env environment.Descriptor) *Loader {
	return &Loader{env: env, environ: os.Environ}
}

// DependencyGraph loads the graph file at projectPath and records the package
// sources it is associated with.
func (l *Loader) DependencyGraph(ctx context.Context, projectPath string, packageSources []string) (*depgraph.Graph, error) {
	graph, err := l.Load(ctx, projectPath)
	if err != nil {
		return nil, err
	}
	graph.Sources = append([]string(nil), packageSources...)
	return graph, nil
}

// Load parses, decodes, translates and validates the graph file at path.
func (l *Loader) Load(ctx context.Context, path string) (*depgraph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL graph loader started.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse graph file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, l.evalContext(path), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode graph file %s: %w", path, diags)
	}

	graph := l.translate(ctx, filepath.Dir(path), &root)
	if err := graph.Validate(); err != nil {
		return nil, fmt.Errorf("graph file %s: %w", path, err)
	}

	logger.Debug("HCL graph loading complete.", "libraries", len(graph.Libraries), "package_folders", len(graph.PackageFolders))
	return graph, nil
}

// evalContext exposes project_dir, global_packages and env to expressions.
func (l *Loader) evalContext(path string) *hcl.EvalContext {
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		dir = filepath.Dir(path)
	}

	envVars := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		envVars[name] = cty.StringVal(value)
	}
	envVal := cty.EmptyObjectVal
	if len(envVars) > 0 {
		envVal = cty.ObjectVal(envVars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"project_dir":     cty.StringVal(dir),
			"global_packages": cty.StringVal(l.env.GlobalPackagesPath),
			"env":             envVal,
		},
	}
}
