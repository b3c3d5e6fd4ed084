package linkparse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Pages larger than this are truncated; metadata tags live in the head.
const maxPageBytes = 2 << 20

// DefaultUserAgent mimics a desktop browser; several sources serve
// stripped-down pages without Open Graph tags to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher performs the bounded page fetches the extractors rely on.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewFetcher(httpClient *http.Client, userAgent string, timeout time.Duration) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Page fetches a URL and returns the body along with the final URL after
// redirects. Every wait is bounded by the fetcher timeout.
func (f *Fetcher) Page(ctx context.Context, url string) ([]byte, string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	if resp.StatusCode != http.StatusOK {
		return nil, finalURL, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, finalURL, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, finalURL, nil
}

// Resolve follows redirects and returns the canonical URL without keeping
// the body, used for shortened share links.
func (f *Fetcher) Resolve(ctx context.Context, url string) (string, error) {
	_, finalURL, err := f.Page(ctx, url)
	if finalURL == "" {
		finalURL = url
	}
	if err != nil && finalURL == url {
		return "", err
	}
	return finalURL, nil
}

// JSON fetches a URL and decodes the response body into v.
func (f *Fetcher) JSON(ctx context.Context, url string, v any) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch JSON: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPageBytes)).Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON response: %w", err)
	}

	return nil
}

// WithTimeout returns a fetcher sharing the client but with a different
// ceiling, used for per-source timeout overrides.
func (f *Fetcher) WithTimeout(timeout time.Duration) *Fetcher {
	if timeout <= 0 || timeout == f.timeout {
		return f
	}
	clone := *f
	clone.timeout = timeout
	return &clone
}

// WithUserAgent returns a fetcher sharing the client but presenting a
// different User-Agent, used for per-source overrides.
func (f *Fetcher) WithUserAgent(userAgent string) *Fetcher {
	if userAgent == "" || userAgent == f.userAgent {
		return f
	}
	clone := *f
	clone.userAgent = userAgent
	return &clone
}
