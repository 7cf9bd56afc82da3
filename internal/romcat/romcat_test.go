package romcat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte{0x80, 0x37, 0x12, 0x40}, 0o644))
}

func TestScan(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "Perfect Dark (USA).z64"))
	writeFile(t, filepath.Join(tmp, "F-Zero X (USA).n64"))
	writeFile(t, filepath.Join(tmp, "GoldenEye 007 (USA).V64")) // extension case-insensitive
	writeFile(t, filepath.Join(tmp, "notes.txt"))               // skipped
	writeFile(t, filepath.Join(tmp, "cover.z64.png"))           // skipped
	writeFile(t, filepath.Join(tmp, "sub", "Wave Race 64 (USA).z64"))

	names, err := Scan(tmp, false)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"F-Zero X (USA)",
		"GoldenEye 007 (USA)",
		"Perfect Dark (USA)",
	}, names)
}

func TestScanRecursive(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "Perfect Dark (USA).z64"))
	writeFile(t, filepath.Join(tmp, "usa", "action", "Wave Race 64 (USA).z64"))
	writeFile(t, filepath.Join(tmp, "usa", "readme.md"))

	names, err := Scan(tmp, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Perfect Dark (USA)",
		"Wave Race 64 (USA)",
	}, names)
}

func TestScanMissingDir(t *testing.T) {
	tmp := t.TempDir()

	_, err := Scan(filepath.Join(tmp, "missing"), false)
	assert.ErrorIs(t, err, ErrNotADirectory)

	// a file is not a directory either
	file := filepath.Join(tmp, "rom.z64")
	writeFile(t, file)
	_, err = Scan(file, false)
	assert.ErrorIs(t, err, ErrNotADirectory)
}

func TestScanEmptyDir(t *testing.T) {
	names, err := Scan(t.TempDir(), false)
	require.NoError(t, err)
	assert.Empty(t, names)
}
