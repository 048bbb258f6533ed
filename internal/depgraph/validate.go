package depgraph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/rtdeps/internal/semver"
)

// Validate checks the structural invariants of the graph: every library has
// a name and a version, and no (name, version) pair appears twice. Versions
// are compared canonically, so "1.0" and "1.0.0" collide. Library names
// compare case-insensitively.
func (g *Graph) Validate() error {
	var errs []error
	seen := make(map[string]int, len(g.Libraries))
	for i, lib := range g.Libraries {
		if lib == nil {
			errs = append(errs, fmt.Errorf("library #%d is nil", i))
			continue
		}
		if strings.TrimSpace(lib.Name) == "" {
			errs = append(errs, fmt.Errorf("library #%d has no name", i))
			continue
		}
		if strings.TrimSpace(lib.Version) == "" {
			errs = append(errs, fmt.Errorf("library %q has no version", lib.Name))
			continue
		}
		key := strings.ToLower(lib.Name) + "/" + semver.Canonical(lib.Version)
		if first, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("library %s is declared twice (entries #%d and #%d)", lib.ID(), first, i))
			continue
		}
		seen[key] = i
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid dependency graph: %w", errors.Join(errs...))
	}
	return nil
}
