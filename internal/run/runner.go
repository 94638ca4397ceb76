package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"notofetch/internal/catalog"
	"notofetch/internal/config"
	"notofetch/internal/download"
	"notofetch/internal/history"
)

// Report is everything the CLI needs to render a finished sync.
type Report struct {
	RunID     string
	OutputDir string
	Summary   download.Summary
	Counts    []catalog.CategoryCount
	Duration  time.Duration
}

// Runner wires the catalog client, download pool, and ledger together.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
}

// New constructs a Runner. out receives per-item report lines; operational
// events go to the logger.
func New(cfg *config.Config, logger *slog.Logger, out io.Writer) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("runner requires config")
	}
	if logger == nil {
		return nil, errors.New("runner requires logger")
	}
	if out == nil {
		return nil, errors.New("runner requires an output writer")
	}
	return &Runner{cfg: cfg, logger: logger, out: out}, nil
}

// Sync performs one complete run. The catalog snapshot is persisted before
// any download starts; the category index depends only on the catalog, so it
// is written regardless of download outcomes.
func (r *Runner) Sync(ctx context.Context) (*Report, error) {
	started := time.Now()
	runID := uuid.NewString()
	logger := r.logger.With(slog.String("run_id", runID))

	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	lock := flock.New(r.cfg.LockFilePath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another notofetch run already holds %s", r.cfg.LockFilePath())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("release output lock", slog.String("error", err.Error()))
		}
	}()

	client, err := catalog.NewClient(r.cfg.Catalog.DataURL,
		catalog.WithTimeout(r.cfg.CatalogTimeout()))
	if err != nil {
		return nil, err
	}

	logger.Info("fetching catalog", slog.String("url", r.cfg.Catalog.DataURL))
	items, err := client.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog fetched", slog.Int("total", len(items)))

	if err := catalog.WriteMetadata(r.cfg.Paths.OutputDir, items); err != nil {
		return nil, err
	}

	index := catalog.BuildIndex(items)
	if err := catalog.WriteIndex(r.cfg.Paths.OutputDir, index); err != nil {
		return nil, err
	}
	logger.Info("category index written", slog.Int("categories", len(index)))

	fmt.Fprintf(r.out, "Found %d animated emoji\n", len(items))
	fmt.Fprintf(r.out, "Output: %s\n\n", r.cfg.Paths.OutputDir)

	fetcher := download.NewFetcher(
		r.cfg.Catalog.AssetBaseURL,
		r.cfg.Catalog.AssetName,
		r.cfg.Paths.OutputDir,
		download.WithRequestTimeout(r.cfg.DownloadTimeout()),
	)
	pool := download.NewPool(fetcher, r.cfg.Download.Workers, download.NewReporter(r.out))
	summary := pool.Run(ctx, items)

	report := &Report{
		RunID:     runID,
		OutputDir: r.cfg.Paths.OutputDir,
		Summary:   summary,
		Counts:    index.Counts(),
		Duration:  time.Since(started),
	}

	if r.cfg.History.Enabled {
		r.recordRun(ctx, logger, started, report)
	}

	logger.Info("sync finished",
		slog.Int("downloaded", summary.Downloaded),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
		slog.Int64("bytes", summary.TotalBytes),
		slog.Duration("took", report.Duration),
	)
	return report, nil
}

// recordRun appends the run to the ledger. Best effort only: the mirror on
// disk is the source of truth, so ledger trouble must not fail the sync.
func (r *Runner) recordRun(ctx context.Context, logger *slog.Logger, started time.Time, report *Report) {
	store, err := history.Open(r.cfg.HistoryDBPath())
	if err != nil {
		logger.Warn("open history ledger", slog.String("error", err.Error()))
		return
	}
	defer store.Close()

	run := history.Run{
		ID:         report.RunID,
		StartedAt:  started,
		FinishedAt: started.Add(report.Duration),
		Total:      report.Summary.Total,
		Downloaded: report.Summary.Downloaded,
		Skipped:    report.Summary.Skipped,
		Failed:     report.Summary.Failed,
		TotalBytes: report.Summary.TotalBytes,
	}
	if err := store.RecordRun(ctx, run); err != nil {
		logger.Warn("record run", slog.String("error", err.Error()))
		return
	}
	if err := store.Prune(ctx, r.cfg.History.Keep); err != nil {
		logger.Warn("prune history", slog.String("error", err.Error()))
	}
}
