package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable marks catalog fetch failures. A run cannot proceed on a
// partial or missing catalog, so callers treat this class as fatal.
var ErrUnavailable = errors.New("catalog unavailable")

// Client fetches the remote catalog.
type Client struct {
	dataURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient creates a catalog client for the given endpoint.
func NewClient(dataURL string, opts ...Option) (*Client, error) {
	dataURL = strings.TrimSpace(dataURL)
	if dataURL == "" {
		return nil, errors.New("catalog data url required")
	}
	client := &Client{
		dataURL:    dataURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type catalogResponse struct {
	Icons []Item `json:"icons"`
}

// Fetch retrieves and decodes the full item list in one request.
func (c *Client) Fetch(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.dataURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, c.dataURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUnavailable, c.dataURL, resp.StatusCode)
	}

	var payload catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode catalog: %w", ErrUnavailable, err)
	}
	if len(payload.Icons) == 0 {
		return nil, fmt.Errorf("%w: %s contained no items", ErrUnavailable, c.dataURL)
	}

	items := payload.Icons
	for idx := range items {
		items[idx].normalize()
	}
	return items, nil
}
