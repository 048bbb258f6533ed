// Package environment describes the machine a resolution runs for: its
// platform, processor architecture, runtime identifier, target framework and
// global package store.
//
// A Descriptor is an immutable value. It is built once, usually by Detect,
// and threaded explicitly through every constructor that needs it.
package environment

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultTargetFramework is used when neither the caller nor the dependency
// graph names a target framework. See Descriptor.FrameworkFor.
const DefaultTargetFramework = "net8.0"

// GlobalPackagesEnvVar overrides the location of the global package store.
const GlobalPackagesEnvVar = "NUGET_PACKAGES"

// Descriptor holds immutable facts about the current machine.
type Descriptor struct {
	// Platform is the short platform identifier, e.g. "win", "linux", "osx".
	Platform string
	// Architecture is the processor architecture, e.g. "x64", "arm64".
	Architecture string
	// RuntimeIdentifier combines platform and architecture, e.g. "linux-x64".
	RuntimeIdentifier string
	// TargetFramework is the target framework moniker requested by the
	// caller, e.g. "net8.0". Empty defers to the dependency graph.
	TargetFramework string
	// GlobalPackagesPath is the global asset store searched after any
	// graph-specific package folders.
	GlobalPackagesPath string
}

// Overrides replaces individual detected values. Empty fields keep the
// detected value.
type Overrides struct {
	Platform           string
	Architecture       string
	RuntimeIdentifier  string
	TargetFramework    string
	GlobalPackagesPath string
}

var platformByGOOS = map[string]string{
	"windows": "win",
	"darwin":  "osx",
	"linux":   "linux",
	"freebsd": "freebsd",
	"illumos": "illumos",
	"solaris": "solaris",
	"android": "android",
	"ios":     "ios",
}

var archByGOARCH = map[string]string{
	"amd64":   "x64",
	"386":     "x86",
	"arm64":   "arm64",
	"arm":     "arm",
	"s390x":   "s390x",
	"ppc64le": "ppc64le",
	"loong64": "loongarch64",
	"riscv64": "riscv64",
	"wasm":    "wasm",
}

// PlatformFor maps a GOOS value to its platform identifier. Unknown values
// pass through unchanged.
func PlatformFor(goos string) string {
	if p, ok := platformByGOOS[goos]; ok {
		return p
	}
	return goos
}

// ArchitectureFor maps a GOARCH value to its architecture identifier. Unknown
// values pass through unchanged.
func ArchitectureFor(goarch string) string {
	if a, ok := archByGOARCH[goarch]; ok {
		return a
	}
	return goarch
}

// Detect builds a Descriptor for the running process, applying overrides on
// top of the detected values.
func Detect(o Overrides) (Descriptor, error) {
	d := Descriptor{
		Platform:     PlatformFor(runtime.GOOS),
		Architecture: ArchitectureFor(runtime.GOARCH),
	}
	if o.Platform != "" {
		d.Platform = o.Platform
	}
	if o.Architecture != "" {
		d.Architecture = o.Architecture
	}
	if o.TargetFramework != "" {
		d.TargetFramework = o.TargetFramework
	}

	d = d.normalized()
	d.RuntimeIdentifier = d.Platform + "-" + d.Architecture
	if o.RuntimeIdentifier != "" {
		d.RuntimeIdentifier = o.RuntimeIdentifier
	}

	switch {
	case o.GlobalPackagesPath != "":
		d.GlobalPackagesPath = o.GlobalPackagesPath
	case os.Getenv(GlobalPackagesEnvVar) != "":
		d.GlobalPackagesPath = os.Getenv(GlobalPackagesEnvVar)
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return Descriptor{}, errors.New("environment: cannot locate global package store: no home directory and " + GlobalPackagesEnvVar + " is unset")
		}
		d.GlobalPackagesPath = filepath.Join(home, ".nuget", "packages")
	}

	d = d.normalized()
	return d, d.Validate()
}

// New returns a Descriptor built from explicit values, without consulting the
// running process. It is the constructor used by tests and embedders.
func New(platform, arch, rid, tfm, globalPackages string) (Descriptor, error) {
	d := Descriptor{
		Platform:           platform,
		Architecture:       arch,
		RuntimeIdentifier:  rid,
		TargetFramework:    tfm,
		GlobalPackagesPath: globalPackages,
	}
	d = d.normalized()
	if d.RuntimeIdentifier == "" && d.Platform != "" && d.Architecture != "" {
		d.RuntimeIdentifier = d.Platform + "-" + d.Architecture
	}
	return d, d.Validate()
}

// FrameworkFor returns the target framework to probe for a graph restored for
// graphFramework: the caller's choice first, then the graph's, then
// DefaultTargetFramework.
func (d Descriptor) FrameworkFor(graphFramework string) string {
	if d.TargetFramework != "" {
		return d.TargetFramework
	}
	if tfm := strings.TrimSpace(graphFramework); tfm != "" {
		return tfm
	}
	return DefaultTargetFramework
}

// Validate reports whether the descriptor carries every field a resolution
// needs.
func (d Descriptor) Validate() error {
	var missing []string
	if d.Platform == "" {
		missing = append(missing, "platform")
	}
	if d.Architecture == "" {
		missing = append(missing, "architecture")
	}
	if d.RuntimeIdentifier == "" {
		missing = append(missing, "runtime identifier")
	}
	if d.GlobalPackagesPath == "" {
		missing = append(missing, "global packages path")
	}
	if len(missing) > 0 {
		return errors.New("environment: missing " + strings.Join(missing, ", "))
	}
	return nil
}

func (d Descriptor) normalized() Descriptor {
	d.Platform = strings.ToLower(strings.TrimSpace(d.Platform))
	d.Architecture = strings.ToLower(strings.TrimSpace(d.Architecture))
	d.RuntimeIdentifier = strings.TrimSpace(d.RuntimeIdentifier)
	d.TargetFramework = strings.TrimSpace(d.TargetFramework)
	return d
}
