package writer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")

	require.NoError(t, Write(path, []byte("# doc\n"), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# doc\n", string(data))
}

func TestWriteReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	require.NoError(t, Write(path, []byte("new"), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteCreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "out.md")
	require.NoError(t, Write(path, []byte("x"), nil))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteLeavesNoDebris(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")
	require.NoError(t, Write(path, []byte("content"), nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasPrefix(entry.Name(), ".codecat-"), "temp file left behind: %s", entry.Name())
		assert.False(t, strings.HasSuffix(entry.Name(), ".lock"), "lock file left behind: %s", entry.Name())
	}
}
