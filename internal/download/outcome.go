package download

import "notofetch/internal/catalog"

// Status classifies the result of fetching one item.
type Status int

const (
	// StatusDownloaded means the payload was written to the destination path.
	StatusDownloaded Status = iota
	// StatusSkipped means the destination file already existed; no request
	// was made.
	StatusSkipped
	// StatusFailed means both URL forms returned a determinate non-success
	// status.
	StatusFailed
	// StatusError means a transport-level fault (connection failure,
	// timeout, write error) interrupted the attempt.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusDownloaded:
		return "downloaded"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the per-item result produced by Fetcher. It is collected for
// counters and reporting, never raised as an error.
type Outcome struct {
	Item   catalog.Item
	Status Status

	// Size is the payload size in bytes when Status is StatusDownloaded.
	Size int64

	// HTTPStatus carries the primary attempt's status code when Status is
	// StatusFailed.
	HTTPStatus int

	// Err carries the transport fault when Status is StatusError.
	Err error
}

// Label returns the human-facing identity used in report lines: the first
// tag when present, the display name otherwise.
func (o Outcome) Label() string {
	if len(o.Item.Tags) > 0 {
		return o.Item.Tags[0]
	}
	return o.Item.Name
}
