package download

import (
	"context"
	"sync"

	"notofetch/internal/catalog"
)

// DefaultWorkers is the concurrency ceiling used when none is configured.
const DefaultWorkers = 10

// ItemFetcher abstracts Fetcher for the pool; tests substitute instrumented
// implementations.
type ItemFetcher interface {
	Fetch(ctx context.Context, item catalog.Item) Outcome
}

// Summary aggregates per-item outcomes for one run. Failed counts both
// determinate failures and transport errors.
type Summary struct {
	Total      int
	Downloaded int
	Skipped    int
	Failed     int
	TotalBytes int64
}

// Pool runs an ItemFetcher over a catalog with a fixed number of workers.
type Pool struct {
	fetcher  ItemFetcher
	workers  int
	reporter *Reporter
}

// NewPool constructs a Pool. A nil reporter disables per-item output.
func NewPool(fetcher ItemFetcher, workers int, reporter *Reporter) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Pool{fetcher: fetcher, workers: workers, reporter: reporter}
}

// Run downloads all items and returns the aggregate summary. All items are
// enqueued up front; workers pull independently, so completion order is
// unrelated to catalog order. Outcomes flow through a single collector,
// which keeps counter updates and reporting free of locks. Item failures
// never abort the run.
func (p *Pool) Run(ctx context.Context, items []catalog.Item) Summary {
	jobs := make(chan catalog.Item, len(items))
	for _, item := range items {
		jobs <- item
	}
	close(jobs)

	results := make(chan Outcome)
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				results <- p.fetcher.Fetch(ctx, item)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	summary := Summary{Total: len(items)}
	for outcome := range results {
		switch outcome.Status {
		case StatusDownloaded:
			summary.Downloaded++
			summary.TotalBytes += outcome.Size
		case StatusSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
		if p.reporter != nil {
			p.reporter.Observe(outcome, summary)
		}
	}
	return summary
}
