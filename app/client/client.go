package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/driftapp/drift-parse/app/save"
)

// TransportError distinguishes network and server failures from parse
// results. A parse that soft-fails still decodes cleanly; this error is
// for everything that prevented getting a response body at all.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error: %v", e.Err)
	}
	return fmt.Sprintf("transport error: HTTP %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

func NewClient(baseURL string, httpClient *http.Client, session *Session) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		session:    session,
	}
}

// ParseLink asks the server to resolve a shared URL into draft fields.
func (c *Client) ParseLink(ctx context.Context, rawURL string) (save.ParsedLink, error) {
	endpoint := fmt.Sprintf("%s/saves/parse-link?url=%s", c.baseURL, url.QueryEscape(rawURL))

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, nil)
	if err != nil {
		return save.ParsedLink{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.session != nil && c.session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return save.ParsedLink{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return save.ParsedLink{}, &TransportError{StatusCode: resp.StatusCode}
	}

	var parsed save.ParsedLink
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return save.ParsedLink{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return parsed, nil
}
