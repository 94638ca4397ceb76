package run_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"notofetch/internal/catalog"
	"notofetch/internal/config"
	"notofetch/internal/history"
	"notofetch/internal/logging"
	"notofetch/internal/run"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	tempDir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(tempDir, "noto")
	cfg.Paths.LogDir = filepath.Join(tempDir, "logs")
	cfg.Catalog.DataURL = baseURL + "/api.json"
	cfg.Catalog.AssetBaseURL = baseURL
	cfg.Catalog.AssetName = "lottie.json"
	cfg.Download.Workers = 4
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api.json":
			_, _ = w.Write([]byte(`{
				"icons": [
					{"codepoint": "aaaa", "name": "item a", "tags": [":a:"], "categories": ["Smileys"]},
					{"codepoint": "bbbb", "name": "item b", "tags": [":b:"]},
					{"codepoint": "cc cc", "name": "item c", "tags": [":c:"], "categories": ["Smileys", "Symbols"]}
				]
			}`))
		case "/bbbb/lottie.json":
			_, _ = w.Write(make([]byte, 1024))
		case "/cc cc/lottie.json":
			http.Error(w, "nope", http.StatusInternalServerError)
		case "/cc_cc/lottie.json":
			_, _ = w.Write(make([]byte, 512))
		case "/aaaa/lottie.json":
			t.Error("item a is on disk and must not be requested")
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSyncEndToEnd(t *testing.T) {
	server := newCatalogServer(t)
	cfg := testConfig(t, server.URL)

	// Item a is already materialized.
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		t.Fatalf("mkdir output: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfg.Paths.OutputDir, "aaaa_a.json"), []byte("cached"), 0o644); err != nil {
		t.Fatalf("seed item a: %v", err)
	}

	runner, err := run.New(cfg, logging.Discard(), &strings.Builder{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	report, err := runner.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if report.Summary.Downloaded != 2 || report.Summary.Skipped != 1 || report.Summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", report.Summary)
	}
	if report.Summary.TotalBytes != 1536 {
		t.Fatalf("expected 1536 bytes, got %d", report.Summary.TotalBytes)
	}
	if got := report.Summary.Downloaded + report.Summary.Skipped + report.Summary.Failed; got != report.Summary.Total {
		t.Fatalf("counters do not cover the catalog: %+v", report.Summary)
	}

	// Snapshot and index are on disk.
	items, err := catalog.ReadMetadata(cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("snapshot has %d items", len(items))
	}

	data, err := os.ReadFile(filepath.Join(cfg.Paths.OutputDir, catalog.CategoriesFilename))
	if err != nil {
		t.Fatalf("read categories: %v", err)
	}
	var index map[string][]catalog.Summary
	if err := json.Unmarshal(data, &index); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(index["Smileys"]) != 2 || len(index["Symbols"]) != 1 || len(index["Other"]) != 1 {
		t.Fatalf("unexpected category distribution: %+v", index)
	}

	// Per-category counts in the report are sorted by name.
	if len(report.Counts) != 3 || report.Counts[0].Name != "Other" || report.Counts[2].Name != "Symbols" {
		t.Fatalf("unexpected counts: %+v", report.Counts)
	}

	// The run landed in the ledger.
	store, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	defer store.Close()
	runs, err := store.RecentRuns(context.Background(), 5)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != report.RunID || runs[0].TotalBytes != 1536 {
		t.Fatalf("ledger mismatch: %+v", runs)
	}
}

func TestSyncSecondRunSkipsEverything(t *testing.T) {
	server := newCatalogServer(t)
	cfg := testConfig(t, server.URL)
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		t.Fatalf("mkdir output: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfg.Paths.OutputDir, "aaaa_a.json"), []byte("cached"), 0o644); err != nil {
		t.Fatalf("seed item a: %v", err)
	}

	runner, err := run.New(cfg, logging.Discard(), &strings.Builder{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := runner.Sync(context.Background()); err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	report, err := runner.Sync(context.Background())
	if err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if report.Summary.Skipped != report.Summary.Total || report.Summary.Downloaded != 0 {
		t.Fatalf("expected all items skipped on rerun, got %+v", report.Summary)
	}
}

func TestSyncCatalogFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)
	cfg := testConfig(t, server.URL)

	runner, err := run.New(cfg, logging.Discard(), &strings.Builder{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := runner.Sync(context.Background()); !errors.Is(err, catalog.ErrUnavailable) {
		t.Fatalf("expected catalog failure, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, catalog.MetadataFilename)); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("no snapshot may be written when the catalog fetch fails")
	}
}

func TestSyncRefusesWhenLockHeld(t *testing.T) {
	server := newCatalogServer(t)
	cfg := testConfig(t, server.URL)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	other := flock.New(cfg.LockFilePath())
	locked, err := other.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-acquire lock: locked=%v err=%v", locked, err)
	}
	defer func() { _ = other.Unlock() }()

	runner, err := run.New(cfg, logging.Discard(), &strings.Builder{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := runner.Sync(context.Background()); err == nil || !strings.Contains(err.Error(), "already holds") {
		t.Fatalf("expected lock contention error, got %v", err)
	}
}
