package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"notofetch/internal/catalog"
)

const defaultRequestTimeout = 20 * time.Second

// Fetcher downloads a single catalog item into the output directory.
type Fetcher struct {
	assetBaseURL string
	assetName    string
	outputDir    string
	timeout      time.Duration
	httpClient   *http.Client
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// WithRequestTimeout overrides the per-attempt timeout. Each attempt gets a
// fresh timeout budget.
func WithRequestTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// NewFetcher creates a Fetcher writing into outputDir. Asset URLs take the
// form {assetBaseURL}/{identifier}/{assetName}.
func NewFetcher(assetBaseURL, assetName, outputDir string, opts ...FetcherOption) *Fetcher {
	fetcher := &Fetcher{
		assetBaseURL: strings.TrimRight(assetBaseURL, "/"),
		assetName:    assetName,
		outputDir:    outputDir,
		timeout:      defaultRequestTimeout,
		httpClient:   &http.Client{},
	}
	for _, opt := range opts {
		opt(fetcher)
	}
	return fetcher
}

// Fetch resolves the item's destination path, skips when it is already
// materialized, and otherwise downloads the payload. The primary URL uses
// the codepoint verbatim; when it answers with a non-success status the
// fallback form joins multi-codepoint identifiers with underscores. A
// transport fault on the primary attempt short-circuits to StatusError
// without trying the fallback: the fallback only corrects identifier
// spelling, which a determinate status can reveal but a fault cannot.
func (f *Fetcher) Fetch(ctx context.Context, item catalog.Item) Outcome {
	destination := filepath.Join(f.outputDir, DestinationFilename(item))
	if _, err := os.Stat(destination); err == nil {
		return Outcome{Item: item, Status: StatusSkipped}
	}

	primaryStatus, body, err := f.attempt(ctx, f.assetURL(item.Codepoint))
	if err != nil {
		return Outcome{Item: item, Status: StatusError, Err: err}
	}
	if isSuccess(primaryStatus) {
		return f.write(item, destination, body)
	}

	fallbackID := strings.ReplaceAll(item.Codepoint, " ", "_")
	fallbackStatus, body, err := f.attempt(ctx, f.assetURL(fallbackID))
	if err != nil {
		return Outcome{Item: item, Status: StatusError, Err: err}
	}
	if isSuccess(fallbackStatus) {
		return f.write(item, destination, body)
	}

	return Outcome{Item: item, Status: StatusFailed, HTTPStatus: primaryStatus}
}

func (f *Fetcher) assetURL(identifier string) string {
	return f.assetBaseURL + "/" + identifier + "/" + f.assetName
}

func (f *Fetcher) attempt(ctx context.Context, url string) (int, []byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return resp.StatusCode, nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body from %s: %w", url, err)
	}
	return resp.StatusCode, body, nil
}

func (f *Fetcher) write(item catalog.Item, destination string, body []byte) Outcome {
	if err := os.WriteFile(destination, body, 0o644); err != nil {
		return Outcome{Item: item, Status: StatusError, Err: fmt.Errorf("write %s: %w", destination, err)}
	}
	return Outcome{Item: item, Status: StatusDownloaded, Size: int64(len(body))}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
