package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsurePrivateDir_NewDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "home", ".ciphersafe")

	got, err := EnsurePrivateDir(dataDir)
	require.NoError(t, err)
	assert.Equal(t, dataDir, got)

	info, err := os.Stat(got)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	}

	again, err := EnsurePrivateDir(dataDir)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestEnsurePrivateDir_ResolvesRelativePath(t *testing.T) {
	base := t.TempDir()
	t.Chdir(base)

	got, err := EnsurePrivateDir(".ciphersafe")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))

	// macOS serves TempDir through a /var symlink
	want, err := filepath.EvalSymlinks(filepath.Join(base, ".ciphersafe"))
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, resolved)
}

func TestEnsurePrivateDir_RegularFileAtPath(t *testing.T) {
	occupied := filepath.Join(t.TempDir(), ".ciphersafe")
	require.NoError(t, os.WriteFile(occupied, nil, 0o600))

	_, err := EnsurePrivateDir(occupied)
	assert.Error(t, err)
}
