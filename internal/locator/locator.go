// Package locator resolves where a game's save files live on disk for a given
// save format, using the naming rules from savefmt.
package locator

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/n64tools/savesync/internal/savefmt"
)

// Entry is a resolved save-file location for one (game, kind) pair. Entries
// are recomputed on every run and never persisted.
type Entry struct {
	Game    string
	Kind    savefmt.SaveKind
	Path    string // empty when the per-game folder cannot be found on disk
	Exists  bool
	ModTime time.Time
	Size    int64
}

// hashSegmentLen is the length of the opaque identifier Project64 appends to
// its per-game folder names. It cannot be derived from the game name, so
// folders are only ever matched, never created.
const hashSegmentLen = 16

// Locate resolves the expected save path for every save kind the format
// models, and checks which of them exist. Missing files are not an error;
// their entries simply carry Exists=false. When the format keeps saves in a
// per-game subfolder and no matching folder exists under baseDir, entries are
// returned with an empty Path.
func Locate(name string, format savefmt.SaveFormat, baseDir string) map[savefmt.SaveKind]Entry {
	dir := baseDir
	basename := name

	if format.UsesGameSubfolder() {
		title := savefmt.StripRegionTags(name)
		gameDir, gameBase, found := findGameDir(baseDir, title)
		if !found {
			return unresolved(name, format)
		}
		dir = gameDir
		basename = gameBase
	}

	entries := make(map[savefmt.SaveKind]Entry, len(savefmt.AllKinds))
	for _, kind := range savefmt.AllKinds {
		ext, ok := format.Extension(kind)
		if !ok {
			continue
		}
		suffix := ""
		if kind.IsControllerPak() {
			suffix = format.ControllerPakSuffix(kind.Slot())
		}
		entry := Entry{
			Game: name,
			Kind: kind,
			Path: filepath.Join(dir, basename+suffix+ext),
		}
		if info, err := os.Stat(entry.Path); err == nil && !info.IsDir() {
			entry.Exists = true
			entry.ModTime = info.ModTime()
			entry.Size = info.Size()
		}
		entries[kind] = entry
	}
	return entries
}

func unresolved(name string, format savefmt.SaveFormat) map[savefmt.SaveKind]Entry {
	entries := make(map[savefmt.SaveKind]Entry, len(savefmt.AllKinds))
	for _, kind := range savefmt.AllKinds {
		if _, ok := format.Extension(kind); !ok {
			continue
		}
		entries[kind] = Entry{Game: name, Kind: kind}
	}
	return entries
}

// findGameDir looks under baseDir for a folder named "<title>-<hash>", where
// the hash segment is an opaque 16-char hex identifier. Matching is a
// case-insensitive prefix match on the title; when several folders match, the
// lexicographically first wins so resolution stays deterministic. Returns the
// folder path and the folder's own title spelling, which names the files
// inside it.
func findGameDir(baseDir, title string) (dir, basename string, found bool) {
	items, err := os.ReadDir(baseDir)
	if err != nil {
		return "", "", false
	}

	prefix := strings.ToLower(title) + "-"
	var candidates []string
	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		name := item.Name()
		if len(name) != len(prefix)+hashSegmentLen {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(name), prefix) {
			continue
		}
		if !isHex(name[len(name)-hashSegmentLen:]) {
			continue
		}
		candidates = append(candidates, name)
	}
	if len(candidates) == 0 {
		return "", "", false
	}
	sort.Strings(candidates)

	name := candidates[0]
	return filepath.Join(baseDir, name), name[:len(name)-hashSegmentLen-1], true
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
