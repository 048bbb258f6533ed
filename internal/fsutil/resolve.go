package fsutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrEscapesRoot is returned for asset paths that are absolute or climb out of
// the package folder they are joined to.
var ErrEscapesRoot = errors.New("asset path leaves the package folder")

// AssetNotFoundError reports a relative asset path that does not exist under
// any of the searched roots.
type AssetNotFoundError struct {
	RelativePath string
	Roots        []string
}

// Error names the missing path and the roots that were searched, and points
// at the usual remedy.
func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf(
		"unable to locate %s under any package folder [%s]; make sure packages are restored with the cache disabled (restore --no-cache)",
		e.RelativePath, strings.Join(e.Roots, ", "),
	)
}

// Resolve returns the absolute path of relativePath under the first root that
// contains it as a regular file. Roots are searched in order. When no root
// contains the file an *AssetNotFoundError is returned. Paths that are not
// local to a root are rejected with ErrEscapesRoot.
func Resolve(relativePath string, roots []string) (string, error) {
	rel := filepath.FromSlash(relativePath)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %s", ErrEscapesRoot, relativePath)
	}
	for _, root := range roots {
		if root == "" {
			continue
		}
		candidate := filepath.Join(root, rel)
		if FileExists(candidate) {
			if abs, err := filepath.Abs(candidate); err == nil {
				return abs, nil
			}
			return candidate, nil
		}
	}
	return "", &AssetNotFoundError{
		RelativePath: relativePath,
		Roots:        append([]string(nil), roots...),
	}
}
