// Package assembly reads managed assembly identity (name, version, culture
// and public key token) from the CLI metadata of a resolved file.
//
// The dependency graph only names files; the identity a host binds against
// lives inside the file itself, so it is read after path resolution.
package assembly

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NeutralCulture is reported for assemblies without a culture.
const NeutralCulture = "neutral"

// Identity is the binding identity of a managed assembly.
type Identity struct {
	Name           string `json:"name" yaml:"name"`
	Version        string `json:"version,omitempty" yaml:"version,omitempty"`
	Culture        string `json:"culture,omitempty" yaml:"culture,omitempty"`
	PublicKeyToken string `json:"publicKeyToken,omitempty" yaml:"publicKeyToken,omitempty"`
}

// String renders the identity in display-name form, e.g.
// "Newtonsoft.Json, Version=13.0.0.0, Culture=neutral, PublicKeyToken=30ad4fe6b2a6aeed".
func (id Identity) String() string {
	parts := []string{id.Name}
	if id.Version != "" {
		parts = append(parts, "Version="+id.Version)
	}
	if id.Culture != "" {
		parts = append(parts, "Culture="+id.Culture)
	}
	if id.PublicKeyToken != "" {
		parts = append(parts, "PublicKeyToken="+id.PublicKeyToken)
	}
	return strings.Join(parts, ", ")
}

// FileIdentity derives a name-only identity from a file path. It is used when
// the file carries no readable CLI metadata.
func FileIdentity(path string) Identity {
	base := filepath.Base(path)
	return Identity{Name: strings.TrimSuffix(base, filepath.Ext(base))}
}

// FormatError reports a file whose CLI metadata is malformed.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return "assembly: bad image format: " + e.Reason
	}
	return fmt.Sprintf("assembly: bad image format in %s: %s", e.Path, e.Reason)
}
