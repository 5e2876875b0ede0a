package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher retrieves raw content from the external rates source. It performs
// exactly one attempt per call; retry policy belongs to the caller's next
// cycle, never to the fetch itself.
type Fetcher struct {
	url        string
	userAgent  string
	httpClient *http.Client
}

// FetcherOption configures a new Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if hc != nil {
			f.httpClient = hc
		}
	}
}

// WithUserAgent overrides the client identity header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithTimeout bounds the whole request.
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.httpClient.Timeout = timeout
		}
	}
}

// NewFetcher constructs a fetcher for the given source URL.
func NewFetcher(url string, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		url:        url,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewFetcherFromConfig builds a fetcher from scraper configuration.
func NewFetcherFromConfig(cfg *Config) *Fetcher {
	return NewFetcher(cfg.SourceURL,
		WithUserAgent(cfg.UserAgent),
		WithTimeout(cfg.Timeout),
	)
}

// Fetch performs one GET against the source and returns the response body.
// Transport failures and non-2xx statuses are both reported as errors.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("scrape: build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("scrape: fetch %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("scrape: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("scrape: http status %d from %s", resp.StatusCode, f.url)
	}
	return body, nil
}
