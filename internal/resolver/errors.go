package resolver

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by entry points whose collaborators were not
// supplied to New.
var ErrNotConfigured = errors.New("resolver: graph provider or project locator not configured")

// GraphUnavailableError reports that no dependency graph could be obtained
// for a project. The provider's error is kept unchanged as the cause.
type GraphUnavailableError struct {
	ProjectPath string
	Err         error
}

func (e *GraphUnavailableError) Error() string {
	if e.ProjectPath == "" {
		return fmt.Sprintf("dependency graph unavailable: %v", e.Err)
	}
	return fmt.Sprintf("dependency graph unavailable for %s: %v", e.ProjectPath, e.Err)
}

func (e *GraphUnavailableError) Unwrap() error {
	return e.Err
}
