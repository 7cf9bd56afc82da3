// Package romcat enumerates ROM files to build the canonical game set that
// keys saves across formats.
package romcat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/n64tools/savesync/internal/utils"
)

// ErrNotADirectory is returned when the ROM root is missing or not a directory.
var ErrNotADirectory = errors.New("not a directory")

// romPattern matches the known N64 ROM extensions. Names are lowercased
// before matching.
const romPattern = "*.{z64,n64,v64}"

// Scan returns the canonical game names of all ROM files under romDir,
// sorted. The canonical name is the ROM filename with its extension stripped;
// region and version tags stay part of the name. Non-ROM files are skipped
// silently. With recursive set, the whole tree below romDir is walked,
// otherwise only its top level is read.
func Scan(romDir string, recursive bool) ([]string, error) {
	if !utils.DirExists(romDir) {
		return nil, fmt.Errorf("rom directory %q: %w", romDir, ErrNotADirectory)
	}

	var names []string

	if recursive {
		err := filepath.WalkDir(romDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isRomFile(d.Name()) {
				names = append(names, canonicalName(d.Name()))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan rom directory %q: %w", romDir, err)
		}
	} else {
		entries, err := os.ReadDir(romDir)
		if err != nil {
			return nil, fmt.Errorf("scan rom directory %q: %w", romDir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !isRomFile(entry.Name()) {
				continue
			}
			names = append(names, canonicalName(entry.Name()))
		}
	}

	sort.Strings(names)
	return names, nil
}

func isRomFile(name string) bool {
	ok, err := doublestar.Match(romPattern, strings.ToLower(name))
	return err == nil && ok
}

func canonicalName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
