// Package fetcher retrieves the raw markup of the watched listing page.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/amishk599/roomwatch/internal/model"
)

const (
	// UserAgent is sent with every page request; some listing sites reject
	// the Go default.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// Timeout bounds a single page fetch.
	Timeout = 30 * time.Second

	maxBodyBytes = 5 * 1024 * 1024
)

// Ensure HTTPFetcher implements model.PageFetcher.
var _ model.PageFetcher = (*HTTPFetcher)(nil)

// HTTPFetcher performs a single GET against a fixed URL.
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher returns a fetcher for url. A nil client gets a default one
// with the page timeout applied.
func NewHTTPFetcher(url string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: Timeout}
	}
	return &HTTPFetcher{url: url, client: client}
}

// Fetch returns the response body as text. Any transport failure or non-2xx
// status wraps model.ErrFetch; there are no retries.
func (f *HTTPFetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request for %s: %v", model.ErrFetch, f.url, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: get %s: %w", model.ErrFetch, f.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body of %s: %w", model.ErrFetch, f.url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: get %s: %w", model.ErrFetch, f.url, model.NewHTTPError(resp.StatusCode, body))
	}

	return string(body), nil
}
