package syncer

import (
	"time"

	"github.com/n64tools/savesync/internal/savefmt"
)

// Item records what happened to one save kind of one game.
type Item struct {
	Kind    savefmt.SaveKind
	Status  Status
	SrcPath string
	DstPath string
	Bytes   int64
	Err     error
}

// GameResult groups the per-kind outcomes of one game.
type GameResult struct {
	Game  string
	Items []Item
}

// Report is the result of a whole sync run, one entry per canonical game name.
type Report struct {
	Games    []GameResult
	Duration time.Duration
}

// Counts tallies items by status.
func (r *Report) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, g := range r.Games {
		for _, item := range g.Items {
			counts[item.Status]++
		}
	}
	return counts
}

// CopiedBytes is the total payload written to the destination, backups excluded.
func (r *Report) CopiedBytes() int64 {
	var total int64
	for _, g := range r.Games {
		for _, item := range g.Items {
			if item.Status.IsCopy() {
				total += item.Bytes
			}
		}
	}
	return total
}

// HasFailures reports whether any single file copy failed. Per-file failures
// do not fail the run; callers decide how loudly to surface them.
func (r *Report) HasFailures() bool {
	for _, g := range r.Games {
		for _, item := range g.Items {
			if item.Status == StatusFailed {
				return true
			}
		}
	}
	return false
}
