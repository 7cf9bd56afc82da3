package syncer

// Status is the outcome recorded for one (game, save kind) pair.
type Status uint8

const (
	StatusCopied Status = iota
	StatusBackedUpAndCopied
	StatusSkippedNotNewer
	StatusSkippedNoSource
	StatusFailed
)

var statusNames = []string{
	"copied",
	"backed_up_and_copied",
	"skipped_not_newer",
	"skipped_no_source",
	"failed",
}

func (s Status) String() string {
	return statusNames[s]
}

// IsCopy reports whether the status means bytes were written to the destination.
func (s Status) IsCopy() bool {
	return s == StatusCopied || s == StatusBackedUpAndCopied
}
