package environment

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformAndArchitectureMapping(t *testing.T) {
	assert.Equal(t, "win", PlatformFor("windows"))
	assert.Equal(t, "osx", PlatformFor("darwin"))
	assert.Equal(t, "linux", PlatformFor("linux"))
	assert.Equal(t, "plan9", PlatformFor("plan9"), "unknown GOOS passes through")

	assert.Equal(t, "x64", ArchitectureFor("amd64"))
	assert.Equal(t, "x86", ArchitectureFor("386"))
	assert.Equal(t, "arm64", ArchitectureFor("arm64"))
	assert.Equal(t, "mips", ArchitectureFor("mips"), "unknown GOARCH passes through")
}

func TestDetect_UsesRunningPlatform(t *testing.T) {
	t.Setenv(GlobalPackagesEnvVar, "/opt/packages")

	d, err := Detect(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, PlatformFor(runtime.GOOS), d.Platform)
	assert.Equal(t, ArchitectureFor(runtime.GOARCH), d.Architecture)
	assert.Equal(t, d.Platform+"-"+d.Architecture, d.RuntimeIdentifier)
	assert.Empty(t, d.TargetFramework, "framework is left to the dependency graph")
	assert.Equal(t, "/opt/packages", d.GlobalPackagesPath)
}

func TestDetect_AppliesOverrides(t *testing.T) {
	t.Setenv(GlobalPackagesEnvVar, "/ignored")

	d, err := Detect(Overrides{
		Platform:           "WIN",
		Architecture:       "x86",
		TargetFramework:    "net6.0",
		GlobalPackagesPath: "/custom/store",
	})
	require.NoError(t, err)

	assert.Equal(t, "win", d.Platform)
	assert.Equal(t, "x86", d.Architecture)
	assert.Equal(t, "win-x86", d.RuntimeIdentifier)
	assert.Equal(t, "net6.0", d.TargetFramework)
	assert.Equal(t, "/custom/store", d.GlobalPackagesPath)
}

func TestDetect_RuntimeIdentifierOverrideWins(t *testing.T) {
	t.Setenv(GlobalPackagesEnvVar, "/opt/packages")

	d, err := Detect(Overrides{Platform: "win", Architecture: "x64", RuntimeIdentifier: "win10-x64"})
	require.NoError(t, err)
	assert.Equal(t, "win10-x64", d.RuntimeIdentifier)
}

func TestDetect_DefaultsToHomeStore(t *testing.T) {
	home := t.TempDir()
	t.Setenv(GlobalPackagesEnvVar, "")
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	d, err := Detect(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".nuget", "packages"), d.GlobalPackagesPath)
}

func TestNew_Validation(t *testing.T) {
	d, err := New("linux", "x64", "", "", "/store")
	require.NoError(t, err)
	assert.Equal(t, "linux-x64", d.RuntimeIdentifier)
	assert.Empty(t, d.TargetFramework)

	_, err = New("", "", "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform")
	assert.Contains(t, err.Error(), "global packages path")
}

func TestDescriptor_FrameworkFor(t *testing.T) {
	testCases := []struct {
		name      string
		requested string
		graph     string
		expected  string
	}{
		{name: "caller choice wins", requested: "net6.0", graph: "net7.0", expected: "net6.0"},
		{name: "graph framework when caller is silent", requested: "", graph: " net7.0 ", expected: "net7.0"},
		{name: "default when neither names one", requested: "", graph: "", expected: DefaultTargetFramework},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := New("linux", "x64", "", tc.requested, "/store")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d.FrameworkFor(tc.graph))
		})
	}
}
