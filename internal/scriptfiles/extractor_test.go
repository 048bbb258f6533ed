package scriptfiles

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#r \"nuget: X\""), 0o644))
}

func TestExtract_SingleScript(t *testing.T) {
	root := t.TempDir()
	script := filepath.Join(root, "helpers", "1.0.0", "contentFiles", "csx", "any", "helpers.csx")
	writeFile(t, script)

	files, err := NewExtractor("net8.0").Extract(context.Background(), "helpers/1.0.0", []string{root})
	require.NoError(t, err)
	assert.Equal(t, []string{script}, files)
}

func TestExtract_PrefersTargetFrameworkFolder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "helpers", "1.0.0", "contentFiles", "csx", "any", "any.csx"))
	tfm := filepath.Join(root, "helpers", "1.0.0", "contentFiles", "csx", "net8.0", "tfm.csx")
	writeFile(t, tfm)

	files, err := NewExtractor("net8.0").Extract(context.Background(), "helpers/1.0.0", []string{root})
	require.NoError(t, err)
	assert.Equal(t, []string{tfm}, files)
}

func TestExtract_MainEntryPointAmongMany(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "helpers", "1.0.0", "contentFiles", "csx", "any")
	writeFile(t, filepath.Join(dir, "a.csx"))
	writeFile(t, filepath.Join(dir, "main.csx"))
	writeFile(t, filepath.Join(dir, "z.csx"))

	files, err := NewExtractor("").Extract(context.Background(), "helpers/1.0.0", []string{root})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "main.csx")}, files)
}

func TestExtract_AmbiguousScripts(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "helpers", "1.0.0", "contentFiles", "csx", "any")
	writeFile(t, filepath.Join(dir, "a.csx"))
	writeFile(t, filepath.Join(dir, "b.csx"))

	_, err := NewExtractor("").Extract(context.Background(), "helpers/1.0.0", []string{root})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no main.csx entry point")
}

func TestExtract_FirstRootWithScriptsWins(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	script := filepath.Join(second, "helpers", "1.0.0", "contentFiles", "csx", "any", "helpers.csx")
	writeFile(t, script)
	writeFile(t, filepath.Join(first, "helpers", "1.0.0", "lib", "net8.0", "Helpers.dll"))

	files, err := NewExtractor("net8.0").Extract(context.Background(), "helpers/1.0.0", []string{first, second})
	require.NoError(t, err)
	assert.Equal(t, []string{script}, files)
}

func TestExtract_NoScripts(t *testing.T) {
	files, err := NewExtractor("net8.0").Extract(context.Background(), "helpers/1.0.0", []string{t.TempDir(), ""})
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}
