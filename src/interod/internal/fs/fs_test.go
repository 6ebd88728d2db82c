package fs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	f := New()
	path := filepath.Join(t.TempDir(), "targets.yaml")

	exists, err := f.FileExists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, f.WriteFile(path, "targets: []\n"))

	exists, err = f.FileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := f.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "targets: []\n", string(data))
}

func TestDirLifecycle(t *testing.T) {
	f := New()
	path := filepath.Join(t.TempDir(), "a", "b")

	exists, err := f.DirExists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, f.MkdirAll(path))

	exists, err = f.DirExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, f.RemoveAll(path))
	exists, err = f.DirExists(path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTempDir(t *testing.T) {
	f := New()
	dir, err := f.TempDir(t.TempDir(), "scratch")
	require.NoError(t, err)

	exists, err := f.DirExists(dir)
	require.NoError(t, err)
	assert.True(t, exists)
}
