package locator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n64tools/savesync/internal/savefmt"
)

const pdHash = "4E9F3A1B2C5D6E7F"

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestLocateEverdriveFlat(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "Perfect Dark (USA).eep"), []byte("eep"))
	writeFile(t, filepath.Join(tmp, "Perfect Dark (USA)_Cont_2.mpk"), []byte("mpk2"))

	entries := Locate("Perfect Dark (USA)", savefmt.Everdrive, tmp)
	require.Len(t, entries, 7)

	eep := entries[savefmt.Eeprom]
	assert.Equal(t, filepath.Join(tmp, "Perfect Dark (USA).eep"), eep.Path)
	assert.True(t, eep.Exists)
	assert.EqualValues(t, 3, eep.Size)

	// slot 1 carries no suffix, slots 2-4 do
	assert.Equal(t, filepath.Join(tmp, "Perfect Dark (USA).mpk"), entries[savefmt.ControllerPak1].Path)
	pak2 := entries[savefmt.ControllerPak2]
	assert.Equal(t, filepath.Join(tmp, "Perfect Dark (USA)_Cont_2.mpk"), pak2.Path)
	assert.True(t, pak2.Exists)

	// absent kinds still resolve, just as non-existent
	sram := entries[savefmt.Sram]
	assert.Equal(t, filepath.Join(tmp, "Perfect Dark (USA).srm"), sram.Path)
	assert.False(t, sram.Exists)
}

func TestLocateProject64Subfolder(t *testing.T) {
	tmp := t.TempDir()
	gameDir := filepath.Join(tmp, "PERFECT DARK-"+pdHash)
	writeFile(t, filepath.Join(gameDir, "PERFECT DARK.eep"), []byte("eep"))
	writeFile(t, filepath.Join(gameDir, "PERFECT DARK_Cont_1.mpk"), []byte("mpk1"))

	// subfolder is found by case-insensitive prefix match on the
	// region-stripped title, tolerant of the unknown hash tail
	entries := Locate("Perfect Dark (USA)", savefmt.Project64, tmp)

	eep := entries[savefmt.Eeprom]
	assert.Equal(t, filepath.Join(gameDir, "PERFECT DARK.eep"), eep.Path)
	assert.True(t, eep.Exists)

	// Project64 names controller pak slot 1 explicitly
	pak1 := entries[savefmt.ControllerPak1]
	assert.Equal(t, filepath.Join(gameDir, "PERFECT DARK_Cont_1.mpk"), pak1.Path)
	assert.True(t, pak1.Exists)

	sra := entries[savefmt.Sram]
	assert.Equal(t, filepath.Join(gameDir, "PERFECT DARK.sra"), sra.Path)
	assert.False(t, sra.Exists)
}

func TestLocateProject64MissingFolder(t *testing.T) {
	tmp := t.TempDir()
	// folders whose tail is not a 16-char hex id are not game folders
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "Perfect Dark-notahash"), 0o755))

	entries := Locate("Perfect Dark (USA)", savefmt.Project64, tmp)
	require.Len(t, entries, 7)
	for _, e := range entries {
		assert.Empty(t, e.Path)
		assert.False(t, e.Exists)
	}
}

func TestLocateProject64MultipleCandidates(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "Perfect Dark-FFFFFFFFFFFFFFFF"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "Perfect Dark-0000000000000000"), 0o755))

	entries := Locate("Perfect Dark (USA)", savefmt.Project64, tmp)
	// lexicographically first candidate wins
	assert.Equal(t,
		filepath.Join(tmp, "Perfect Dark-0000000000000000", "Perfect Dark.eep"),
		entries[savefmt.Eeprom].Path)
}

func TestLocateMupen64PlusConsolidated(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "F-Zero X (USA).srm"), []byte("srm"))

	entries := Locate("F-Zero X (USA)", savefmt.Mupen64Plus, tmp)

	// eeprom, sram and flashram all live in the consolidated file
	for _, kind := range []savefmt.SaveKind{savefmt.Eeprom, savefmt.Sram, savefmt.FlashRam} {
		e := entries[kind]
		assert.Equal(t, filepath.Join(tmp, "F-Zero X (USA).srm"), e.Path)
		assert.True(t, e.Exists)
	}

	// controller pak slots have no standalone file
	for _, kind := range []savefmt.SaveKind{savefmt.ControllerPak1, savefmt.ControllerPak2, savefmt.ControllerPak3, savefmt.ControllerPak4} {
		_, ok := entries[kind]
		assert.False(t, ok)
	}
}

func TestLocateIsDeterministic(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "Perfect Dark (USA).eep"), []byte("eep"))

	first := Locate("Perfect Dark (USA)", savefmt.Everdrive, tmp)
	second := Locate("Perfect Dark (USA)", savefmt.Everdrive, tmp)
	assert.Equal(t, first, second)
}
