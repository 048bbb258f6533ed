// Package scriptfiles finds the script files a package bundles under
// contentFiles/csx, so a script host can load them alongside the package's
// assemblies.
package scriptfiles

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/rtdeps/internal/ctxlog"
	"github.com/vk/rtdeps/internal/fsutil"
)

const (
	// ScriptExtension is the extension of bundled script files.
	ScriptExtension = ".csx"
	// EntryPointName is the file picked when a folder bundles several scripts.
	EntryPointName = "main.csx"
)

// Extractor probes package folders for bundled script files.
type Extractor struct {
	targetFramework string
}

// NewExtractor creates an extractor that prefers scripts published for
// targetFramework over framework-neutral ones.
func NewExtractor(targetFramework string) *Extractor {
	return &Extractor{targetFramework: strings.TrimSpace(targetFramework)}
}

// Extract returns the absolute path of the script entry point bundled by the
// library at libraryPath. Roots are searched in order and the first one that
// bundles any script wins. Within a root the target-framework folder is tried
// before the "any" folder. A library without scripts yields an empty slice.
func (e *Extractor) Extract(ctx context.Context, libraryPath string, roots []string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	for _, root := range roots {
		if root == "" {
			continue
		}
		for _, dir := range e.candidateDirs(root, libraryPath) {
			if !fsutil.DirExists(dir) {
				continue
			}
			files, err := fsutil.FindFilesByExtension(dir, ScriptExtension)
			if err != nil {
				return nil, fmt.Errorf("failed to scan %s for script files: %w", dir, err)
			}
			if len(files) == 0 {
				continue
			}
			entry, err := pickEntryPoint(dir, files)
			if err != nil {
				return nil, err
			}
			abs, err := filepath.Abs(entry)
			if err != nil {
				abs = entry
			}
			logger.Debug("Found bundled script file.", "library_path", libraryPath, "script", abs)
			return []string{abs}, nil
		}
	}
	return []string{}, nil
}

func (e *Extractor) candidateDirs(root, libraryPath string) []string {
	base := filepath.Join(root, filepath.FromSlash(libraryPath), "contentFiles", "csx")
	dirs := make([]string, 0, 2)
	if e.targetFramework != "" && !strings.EqualFold(e.targetFramework, "any") {
		dirs = append(dirs, filepath.Join(base, e.targetFramework))
	}
	return append(dirs, filepath.Join(base, "any"))
}

// pickEntryPoint chooses the script to load from a folder: the only script
// if there is one, otherwise a top-level main.csx.
func pickEntryPoint(dir string, files []string) (string, error) {
	if len(files) == 1 {
		return files[0], nil
	}
	main := filepath.Join(dir, EntryPointName)
	for _, f := range files {
		if strings.EqualFold(f, main) {
			return f, nil
		}
	}
	return "", fmt.Errorf("found %d script files in %s but no %s entry point", len(files), dir, EntryPointName)
}
