package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAppDirectoriesCreatesBoth(t *testing.T) {
	root := t.TempDir()
	layout := NewLayout(root)

	dirs, err := layout.EnsureAppDirectories("app-1")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "app-1"), dirs.AppDir)
	assert.Equal(t, filepath.Join(root, "app-1", "assets"), dirs.AssetsDir)
	assert.DirExists(t, dirs.AppDir)
	assert.DirExists(t, dirs.AssetsDir)
}

func TestEnsureAppDirectoriesIsIdempotent(t *testing.T) {
	layout := NewLayout(t.TempDir())

	first, err := layout.EnsureAppDirectories("app-1")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(first.AssetsDir, "icon.png"), []byte("x"), 0o644))

	second, err := layout.EnsureAppDirectories("app-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.FileExists(t, filepath.Join(second.AssetsDir, "icon.png"))
}

func TestEnsureAppDirectoriesCompletesPartialLayout(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "app-1"), 0o755))

	dirs, err := NewLayout(root).EnsureAppDirectories("app-1")
	require.NoError(t, err)
	assert.DirExists(t, dirs.AssetsDir)
}

func TestEnsureAppDirectoriesRejectsPaths(t *testing.T) {
	layout := NewLayout(t.TempDir())

	for _, id := range []string{"", ".", "..", "../escape", "a/b"} {
		_, err := layout.EnsureAppDirectories(id)
		assert.Error(t, err, id)
	}
}

func TestRemoveApp(t *testing.T) {
	layout := NewLayout(t.TempDir())
	dirs, err := layout.EnsureAppDirectories("app-1")
	require.NoError(t, err)

	require.NoError(t, layout.RemoveApp("app-1"))
	assert.NoDirExists(t, dirs.AppDir)
}
