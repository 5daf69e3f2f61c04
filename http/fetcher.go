// Package http serves and fetches search databases over HTTP.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure IndexFetcher implements docsearch.IndexFetcher at compile time.
var _ docsearch.IndexFetcher = (*IndexFetcher)(nil)

// IndexFetcher retrieves search databases with HTTP GET requests.
type IndexFetcher struct {
	client  *http.Client
	timeout time.Duration
	baseURL string
}

// Option configures an IndexFetcher.
type Option func(*IndexFetcher)

// WithTimeout sets a timeout for HTTP requests. Without it a fetch runs
// until it completes or its context is done.
func WithTimeout(d time.Duration) Option {
	return func(f *IndexFetcher) {
		f.timeout = d
	}
}

// WithBaseURL resolves site-relative database URLs such as "/docs/db.json"
// against base, e.g. "https://example.com".
func WithBaseURL(base string) Option {
	return func(f *IndexFetcher) {
		f.baseURL = base
	}
}

// NewIndexFetcher creates a new HTTP-based IndexFetcher.
func NewIndexFetcher(opts ...Option) *IndexFetcher {
	f := &IndexFetcher{}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// FetchIndex performs one GET of the database at url. A non-2xx response is
// a *docsearch.FetchError and a body that is not a valid database is a
// *docsearch.ParseError.
func (f *IndexFetcher) FetchIndex(ctx context.Context, url string) (docsearch.Index, error) {
	target := url
	if f.baseURL != "" && len(url) > 0 && url[0] == '/' {
		target = f.baseURL + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &docsearch.FetchError{
			URL:        target,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}

	idx, err := docsearch.DecodeIndex(body)
	if err != nil {
		return nil, &docsearch.ParseError{URL: target, Err: err}
	}
	return idx, nil
}
