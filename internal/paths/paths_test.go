package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("grades:\n  min: 0\n"), 0o600))
}

func TestResolveConfigFile_Explicit(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "custom.yaml")

	path, found := ResolveConfigFile(explicit)
	require.Equal(t, explicit, path)
	require.False(t, found)

	writeFile(t, explicit)
	path, found = ResolveConfigFile(explicit)
	require.Equal(t, explicit, path)
	require.True(t, found)
}

func TestResolveConfigFile_LocalBeforeUser(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	writeFile(t, filepath.Join(home, ".config", AppName, "config.yaml"))
	writeFile(t, filepath.Join(work, ".registrar", "config.yaml"))

	path, found := ResolveConfigFile("")
	require.True(t, found)
	require.Equal(t, LocalConfigPath(), path)
}

func TestResolveConfigFile_UserFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	user := filepath.Join(home, ".config", AppName, "config.yaml")
	writeFile(t, user)

	path, found := ResolveConfigFile("")
	require.True(t, found)
	require.Equal(t, user, path)
}

func TestResolveConfigFile_NothingFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	path, found := ResolveConfigFile("")
	require.False(t, found)
	require.Equal(t, filepath.Join(".registrar", "config.yaml"), path)
}

func TestDefaultTracesFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, ".config", "registrar", "traces", "traces.jsonl"), DefaultTracesFilePath())
}
