// Package syncer copies game saves between two save-format directories,
// keyed by the ROMs found in a ROM directory.
package syncer

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/n64tools/savesync/internal/config"
	"github.com/n64tools/savesync/internal/locator"
	"github.com/n64tools/savesync/internal/romcat"
	"github.com/n64tools/savesync/internal/savefmt"
	"github.com/n64tools/savesync/internal/utils"
)

// backupDirName is created under the destination root the first time an
// existing destination file is overwritten. Snapshots keep the original
// filename and are overwritten on subsequent backups, no versioning.
const backupDirName = "backup"

// ErrDirectoryNotFound aborts the run before any copying when one of the
// three root directories is missing.
var ErrDirectoryNotFound = errors.New("directory not found")

// Run syncs saves for every ROM in cfg.RomDir from the source format/dir to
// the destination format/dir. Only root-directory enumeration failures abort
// the run; a single file's copy failure is recorded in the report and the
// remaining games are still processed. Re-running with an unchanged
// filesystem copies nothing.
func Run(cfg *config.Config) (*Report, error) {
	for _, dir := range []string{cfg.RomDir, cfg.SrcDir, cfg.DstDir} {
		if !utils.DirExists(dir) {
			return nil, fmt.Errorf("%q: %w", dir, ErrDirectoryNotFound)
		}
	}

	games, err := romcat.Scan(cfg.RomDir, cfg.Recursive)
	if err != nil {
		return nil, err
	}

	srcFormat := cfg.SrcSaveFormat()
	dstFormat := cfg.DstSaveFormat()

	slog.Info("sync start",
		"games", len(games),
		"src", cfg.SrcDir, "src_format", srcFormat,
		"dst", cfg.DstDir, "dst_format", dstFormat)

	tstart := time.Now()
	report := &Report{}
	for _, game := range games {
		report.Games = append(report.Games, syncGame(cfg, game, srcFormat, dstFormat))
	}
	report.Duration = time.Since(tstart)

	counts := report.Counts()
	slog.Info("sync done",
		"copied", counts[StatusCopied]+counts[StatusBackedUpAndCopied],
		"failed", counts[StatusFailed],
		"bytes", humanize.IBytes(uint64(report.CopiedBytes())),
		"took", report.Duration.Round(time.Millisecond))

	return report, nil
}

func syncGame(cfg *config.Config, game string, srcFormat, dstFormat savefmt.SaveFormat) GameResult {
	result := GameResult{Game: game}

	srcEntries := locator.Locate(game, srcFormat, cfg.SrcDir)
	dstEntries := locator.Locate(game, dstFormat, cfg.DstDir)

	// On formats with a consolidated save file, several kinds resolve to the
	// same destination path. Each destination is written at most once per
	// game so a later kind cannot clobber the backup taken for an earlier one.
	written := make(map[string]bool)

	for _, kind := range savefmt.AllKinds {
		src, ok := srcEntries[kind]
		if !ok {
			continue
		}
		dst, ok := dstEntries[kind]
		if !ok {
			// destination format has no standalone file for this kind
			continue
		}

		if !src.Exists {
			result.Items = append(result.Items, Item{
				Kind:    kind,
				Status:  StatusSkippedNoSource,
				SrcPath: src.Path,
				DstPath: dst.Path,
			})
			continue
		}
		if dst.Path != "" && written[dst.Path] {
			continue
		}

		item := syncItem(cfg, game, src, dst)
		if item.Status.IsCopy() || item.Status == StatusSkippedNotNewer {
			written[dst.Path] = true
		}
		result.Items = append(result.Items, item)
	}

	return result
}

func syncItem(cfg *config.Config, game string, src, dst locator.Entry) Item {
	item := Item{
		Kind:    src.Kind,
		SrcPath: src.Path,
		DstPath: dst.Path,
		Bytes:   src.Size,
	}

	if dst.Path == "" {
		// per-game folder with an opaque identifier is missing on the
		// destination side and cannot be synthesized
		item.Status = StatusFailed
		item.Err = fmt.Errorf("no per-game save folder for %q under %s", game, cfg.DstDir)
		slog.Warn("no destination folder", "game", game, "kind", src.Kind)
		return item
	}

	if dst.Exists && cfg.OnlyIfNewer && !src.ModTime.After(dst.ModTime) {
		item.Status = StatusSkippedNotNewer
		slog.Debug("skip, destination not older",
			"game", game, "kind", src.Kind, "dst", dst.Path)
		return item
	}

	item.Status = StatusCopied
	if dst.Exists && cfg.Backup {
		backupPath := filepath.Join(cfg.DstDir, backupDirName, filepath.Base(dst.Path))
		if err := utils.CopyFile(dst.Path, backupPath); err != nil {
			item.Status = StatusFailed
			item.Err = fmt.Errorf("backup %s: %w", dst.Path, err)
			slog.Error("backup failed", "game", game, "kind", src.Kind, "error", err)
			return item
		}
		item.Status = StatusBackedUpAndCopied
		slog.Debug("backed up", "game", game, "kind", src.Kind, "backup", backupPath)
	}

	if err := utils.CopyFile(src.Path, dst.Path); err != nil {
		item.Status = StatusFailed
		item.Err = fmt.Errorf("copy %s: %w", src.Path, err)
		slog.Error("copy failed", "game", game, "kind", src.Kind, "error", err)
		return item
	}

	slog.Info("copied",
		"game", game, "kind", src.Kind,
		"size", humanize.IBytes(uint64(src.Size)), "dst", dst.Path)
	return item
}
