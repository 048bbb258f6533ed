// Package semver normalizes package versions so that libraries can be keyed
// by (name, version) regardless of how the version was spelled.
package semver

import (
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Version is a semantic version.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3.
type Version struct {
	v *mm.Version
}

// ParseVersion parses raw, tolerating surrounding whitespace.
func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

// String returns the canonical form, e.g. "1.0" becomes "1.0.0".
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// Canonical returns a comparison key for raw. Versions that parse as semver
// are rendered canonically; anything else (four-part assembly-style versions,
// for example) is lower-cased and trimmed so it still compares stably.
func Canonical(raw string) string {
	v, err := ParseVersion(raw)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return strings.ToLower(v.String())
}
