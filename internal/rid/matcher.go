package rid

import "strings"

// Matcher decides runtime-tag compatibility for one platform/architecture
// pair. It is immutable and safe for concurrent use.
type Matcher struct {
	platform     string
	architecture string
}

// NewMatcher builds a Matcher for the given platform identifier (e.g. "win")
// and architecture (e.g. "x64").
func NewMatcher(platform, architecture string) *Matcher {
	return &Matcher{
		platform:     strings.ToLower(strings.TrimSpace(platform)),
		architecture: strings.ToLower(strings.TrimSpace(architecture)),
	}
}

// Compatible reports whether an asset group tagged with tag applies to the
// matcher's platform. Blank tags apply to every runtime. Malformed tags never
// match.
func (m *Matcher) Compatible(tag string) bool {
	if strings.TrimSpace(tag) == "" {
		return true
	}
	r, ok := Parse(tag)
	if !ok {
		return false
	}
	return r.Platform == m.platform && r.Architecture == m.architecture
}
