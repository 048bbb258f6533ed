package graphfile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/rtdeps/internal/ctxlog"
	"github.com/vk/rtdeps/internal/fsutil"
)

// FileName is the graph file looked up next to scripts.
const FileName = "rtdeps.hcl"

// artifactSuffix replaces a compiled artifact's extension to name its graph
// file, e.g. "app.dll" -> "app.rtdeps.hcl".
const artifactSuffix = ".rtdeps.hcl"

// Locator maps script locations and compiled artifacts to their graph files.
type Locator struct{}

// NewLocator creates a graph file locator.
func NewLocator() *Locator {
	return &Locator{}
}

// ProjectForDirectory returns the graph file of a directory of inline scripts.
func (l *Locator) ProjectForDirectory(ctx context.Context, dir string) (string, error) {
	if !fsutil.DirExists(dir) {
		return "", fmt.Errorf("script directory %s does not exist", dir)
	}
	p := filepath.Join(dir, FileName)
	ctxlog.FromContext(ctx).Debug("Located graph file for script directory.", "dir", dir, "graph_file", p)
	return p, nil
}

// ProjectForScript returns the graph file sitting next to a script file.
func (l *Locator) ProjectForScript(ctx context.Context, scriptFile string) (string, error) {
	if !fsutil.FileExists(scriptFile) {
		return "", fmt.Errorf("script file %s does not exist", scriptFile)
	}
	p := filepath.Join(filepath.Dir(scriptFile), FileName)
	ctxlog.FromContext(ctx).Debug("Located graph file for script.", "script", scriptFile, "graph_file", p)
	return p, nil
}

// ProjectForArtifact returns the graph file published next to a compiled
// artifact.
func (l *Locator) ProjectForArtifact(ctx context.Context, artifactPath string) (string, error) {
	if !fsutil.FileExists(artifactPath) {
		return "", fmt.Errorf("compiled artifact %s does not exist", artifactPath)
	}
	p := strings.TrimSuffix(artifactPath, filepath.Ext(artifactPath)) + artifactSuffix
	ctxlog.FromContext(ctx).Debug("Located graph file for compiled artifact.", "artifact", artifactPath, "graph_file", p)
	return p, nil
}
