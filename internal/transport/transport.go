// Package transport provides the pipeline's only network capability:
// fetching text or raw bytes from a URL in a single attempt.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single download, including body transfer.
const DefaultTimeout = 5 * time.Minute

// Client fetches remote content. Implementations make exactly one attempt;
// the pipeline never retries.
type Client interface {
	GetText(ctx context.Context, url string) (string, error)
	GetBytes(ctx context.Context, url string) ([]byte, error)
}

// HTTPClient is the production Client backed by net/http.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates an HTTPClient. A non-positive timeout falls back to
// DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// GetText fetches url and returns the body as a string.
func (c *HTTPClient) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// GetBytes fetches url and returns the raw body.
func (c *HTTPClient) GetBytes(ctx context.Context, url string) ([]byte, error) {
	return c.get(ctx, url)
}

func (c *HTTPClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}

	return body, nil
}
