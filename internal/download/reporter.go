package download

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// Reporter prints per-item progress lines with bounded volume: the first
// few downloads, a periodic sample afterwards, and a capped number of
// failures. Skips are always silent. The throttle only affects output; the
// Summary counters see every outcome.
type Reporter struct {
	out io.Writer

	// firstOK downloads are always printed; afterwards only every
	// sampleOK-th one is.
	firstOK  int
	sampleOK int
	// maxFailures caps individual failure lines.
	maxFailures int
}

// NewReporter builds a Reporter with the standard throttle: first 5
// downloads, then every 25th, at most 10 failure lines.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		out:         out,
		firstOK:     5,
		sampleOK:    25,
		maxFailures: 10,
	}
}

// Observe renders one outcome. The summary holds the counters as of this
// outcome; the Reporter derives all throttling state from it. Observe is
// called from the pool's single collector goroutine, so it needs no
// synchronization.
func (r *Reporter) Observe(outcome Outcome, summary Summary) {
	switch outcome.Status {
	case StatusDownloaded:
		if summary.Downloaded <= r.firstOK || summary.Downloaded%r.sampleOK == 0 {
			fmt.Fprintf(r.out, "  [%d/%d] %s (%s)\n",
				summary.Downloaded, summary.Total, outcome.Label(), humanize.IBytes(uint64(outcome.Size)))
		}
	case StatusFailed:
		if summary.Failed <= r.maxFailures {
			fmt.Fprintf(r.out, "  FAIL: %s HTTP %d\n", outcome.Item.Name, outcome.HTTPStatus)
		}
	case StatusError:
		if summary.Failed <= r.maxFailures {
			fmt.Fprintf(r.out, "  FAIL: %s: %v\n", outcome.Item.Name, outcome.Err)
		}
	case StatusSkipped:
		// Reruns over a full mirror would otherwise drown the output.
	}
}
