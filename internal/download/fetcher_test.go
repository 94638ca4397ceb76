package download_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"notofetch/internal/catalog"
	"notofetch/internal/download"
)

func TestFetchSkipsExistingFile(t *testing.T) {
	dir := t.TempDir()
	item := catalog.Item{Codepoint: "1f600", Name: "grinning face", Tags: []string{":grin:"}}

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	existing := filepath.Join(dir, download.DestinationFilename(item))
	if err := os.WriteFile(existing, []byte("already here"), 0o644); err != nil {
		t.Fatalf("seed existing file: %v", err)
	}

	fetcher := download.NewFetcher(server.URL, "lottie.json", dir)
	outcome := fetcher.Fetch(context.Background(), item)

	if outcome.Status != download.StatusSkipped {
		t.Fatalf("expected skip, got %v", outcome.Status)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected zero network calls for skip, got %d", calls.Load())
	}
}

func TestFetchPrimarySuccess(t *testing.T) {
	dir := t.TempDir()
	item := catalog.Item{Codepoint: "1f600", Name: "grinning face", Tags: []string{":grin:"}}
	payload := make([]byte, 1024)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1f600/lottie.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	fetcher := download.NewFetcher(server.URL, "lottie.json", dir)
	outcome := fetcher.Fetch(context.Background(), item)

	if outcome.Status != download.StatusDownloaded {
		t.Fatalf("expected download, got %v (err=%v)", outcome.Status, outcome.Err)
	}
	if outcome.Size != 1024 {
		t.Fatalf("expected size 1024, got %d", outcome.Size)
	}
	written, err := os.ReadFile(filepath.Join(dir, "1f600_grin.json"))
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if len(written) != 1024 {
		t.Fatalf("destination has %d bytes, want 1024", len(written))
	}
}

func TestFetchFallbackOnNonSuccessStatus(t *testing.T) {
	dir := t.TempDir()
	item := catalog.Item{Codepoint: "1f9d1 200d 1f3a8", Name: "artist", Tags: []string{":artist:"}}

	var primaryCalls, fallbackCalls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/1f9d1 200d 1f3a8/lottie.json":
			primaryCalls.Add(1)
			http.NotFound(w, r)
		case "/1f9d1_200d_1f3a8/lottie.json":
			fallbackCalls.Add(1)
			_, _ = w.Write([]byte("PAYLOAD"))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	fetcher := download.NewFetcher(server.URL, "lottie.json", dir)
	outcome := fetcher.Fetch(context.Background(), item)

	if outcome.Status != download.StatusDownloaded {
		t.Fatalf("expected download via fallback, got %v (err=%v)", outcome.Status, outcome.Err)
	}
	if outcome.Size != 7 {
		t.Fatalf("expected Ok(7), got size %d", outcome.Size)
	}
	if primaryCalls.Load() != 1 || fallbackCalls.Load() != 1 {
		t.Fatalf("expected one call per form, got primary=%d fallback=%d", primaryCalls.Load(), fallbackCalls.Load())
	}

	written, err := os.ReadFile(filepath.Join(dir, download.DestinationFilename(item)))
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(written) != "PAYLOAD" {
		t.Fatalf("destination contains %q, want PAYLOAD", written)
	}
}

func TestFetchBothAttemptsFailCarriesPrimaryStatus(t *testing.T) {
	dir := t.TempDir()
	item := catalog.Item{Codepoint: "1f600 fe0f", Name: "grinning face", Tags: []string{":grin:"}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/1f600 fe0f/lottie.json" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher := download.NewFetcher(server.URL, "lottie.json", dir)
	outcome := fetcher.Fetch(context.Background(), item)

	if outcome.Status != download.StatusFailed {
		t.Fatalf("expected failed, got %v", outcome.Status)
	}
	if outcome.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected primary status 500, got %d", outcome.HTTPStatus)
	}
	if _, err := os.Stat(filepath.Join(dir, download.DestinationFilename(item))); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no destination file, stat err=%v", err)
	}
}

// faultTransport fails every request at the transport level and counts them.
type faultTransport struct {
	calls atomic.Int64
}

func (f *faultTransport) RoundTrip(*http.Request) (*http.Response, error) {
	f.calls.Add(1)
	return nil, errors.New("connection reset")
}

func TestFetchTransportFaultSkipsFallback(t *testing.T) {
	dir := t.TempDir()
	item := catalog.Item{Codepoint: "1f9d1 200d 1f3a8", Name: "artist", Tags: []string{":artist:"}}

	transport := &faultTransport{}
	fetcher := download.NewFetcher("http://catalog.invalid", "lottie.json", dir,
		download.WithHTTPClient(&http.Client{Transport: transport}))

	outcome := fetcher.Fetch(context.Background(), item)

	if outcome.Status != download.StatusError {
		t.Fatalf("expected error outcome, got %v", outcome.Status)
	}
	if outcome.Err == nil {
		t.Fatal("expected transport fault recorded in outcome")
	}
	if transport.calls.Load() != 1 {
		t.Fatalf("fallback must not run after a primary transport fault; saw %d requests", transport.calls.Load())
	}
}

func TestFetchRerunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	item := catalog.Item{Codepoint: "1f600", Name: "grinning face", Tags: []string{":grin:"}}

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("data"))
	}))
	defer server.Close()

	fetcher := download.NewFetcher(server.URL, "lottie.json", dir)

	first := fetcher.Fetch(context.Background(), item)
	if first.Status != download.StatusDownloaded {
		t.Fatalf("first fetch: %v", first.Status)
	}
	second := fetcher.Fetch(context.Background(), item)
	if second.Status != download.StatusSkipped {
		t.Fatalf("second fetch should skip, got %v", second.Status)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected single network call across reruns, got %d", calls.Load())
	}
}
