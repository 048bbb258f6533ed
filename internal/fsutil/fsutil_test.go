package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestResolve_FirstRootWins(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	rel := "pkg/1.0.0/lib/net8.0/Pkg.dll"
	touch(t, filepath.Join(a, rel))
	touch(t, filepath.Join(b, rel))

	got, err := Resolve(rel, []string{a, b})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(a, filepath.FromSlash(rel)), got)
}

func TestResolve_FallsThroughToLaterRoot(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	rel := "pkg/1.0.0/lib/net8.0/Pkg.dll"
	touch(t, filepath.Join(b, rel))

	got, err := Resolve(rel, []string{a, b})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(b, filepath.FromSlash(rel)), got)
}

func TestResolve_NotFound(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()

	_, err := Resolve("missing/lib/Missing.dll", []string{a, b})
	require.Error(t, err)

	var notFound *AssetNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "missing/lib/Missing.dll", notFound.RelativePath)
	assert.Equal(t, []string{a, b}, notFound.Roots)
	assert.Contains(t, err.Error(), "missing/lib/Missing.dll")
	assert.Contains(t, err.Error(), "--no-cache")
}

func TestResolve_DirectoryIsNotAFile(t *testing.T) {
	a := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(a, "pkg", "lib"), 0o755))

	_, err := Resolve("pkg/lib", []string{a})
	var notFound *AssetNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestResolve_RejectsPathsOutsideRoot(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "packages")
	require.NoError(t, os.MkdirAll(root, 0o755))
	touch(t, filepath.Join(base, "secret.dll"))

	testCases := []struct {
		name string
		rel  string
	}{
		{name: "parent traversal", rel: "../secret.dll"},
		{name: "nested traversal", rel: "pkg/../../secret.dll"},
		{name: "absolute path", rel: filepath.ToSlash(filepath.Join(base, "secret.dll"))},
		{name: "empty path", rel: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.rel, []string{root})
			require.ErrorIs(t, err, ErrEscapesRoot)

			var notFound *AssetNotFoundError
			assert.False(t, errors.As(err, &notFound))
		})
	}
}

func TestResolve_AllowsTraversalThatStaysInside(t *testing.T) {
	a := t.TempDir()
	touch(t, filepath.Join(a, "pkg", "x.dll"))

	got, err := Resolve("pkg/lib/../x.dll", []string{a})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(a, "pkg", "x.dll"), got)
}

func TestResolve_SkipsEmptyRoots(t *testing.T) {
	a := t.TempDir()
	touch(t, filepath.Join(a, "x.dll"))

	got, err := Resolve("x.dll", []string{"", a})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(a, "x.dll"), got)
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.csx"))
	touch(t, filepath.Join(root, "nested", "a.CSX"))
	touch(t, filepath.Join(root, "readme.md"))

	files, err := FindFilesByExtension(root, ".csx")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "b.csx"),
		filepath.Join(root, "nested", "a.CSX"),
	}, files)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	files, err := FindFilesByExtension(filepath.Join(t.TempDir(), "nope"), ".csx")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindFilesByExtension_PanicsOnEmptyExtension(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir(), "") })
}
