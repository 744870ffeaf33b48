package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("[General]\n"), 0o644))
	}
}

func TestWalkSkipsReferenceAndIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "zh_CN.ini", "de_DE.ini", "en_US.ini", "README.md", "old.ini", "fr_FR.INI")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.ini"), 0o755))

	entries, err := NewWalker("en_US.ini", []string{"old.ini"}).Walk(dir, "")
	require.NoError(t, err)

	var codes []string
	for _, e := range entries {
		codes = append(codes, e.Code)
	}
	assert.Equal(t, []string{"de_DE", "fr_FR", "zh_CN"}, codes)
	assert.Equal(t, filepath.Join(dir, "de_DE.ini"), entries[0].Path)
}

func TestWalkOnly(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "de_DE.ini", "en_US.ini", "fr_FR.ini")

	entries, err := NewWalker(filepath.Join(dir, "en_US.ini"), nil).Walk(dir, "fr_FR")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "fr_FR", entries[0].Code)
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := NewWalker("en_US.ini", nil).Walk(filepath.Join(t.TempDir(), "nope"), "")
	assert.Error(t, err)
}
