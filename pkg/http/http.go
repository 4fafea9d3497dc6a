// Package http is the network boundary of tilegrab: a thin streaming GET client.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/glorpus-work/tilegrab/pkg/errutils"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "tilegrab/1.0"

// HTTPClient fetches tiles over HTTP.
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewHTTPClient creates a client whose only timeout is timeout (0 disables it).
func NewHTTPClient(timeout time.Duration, userAgent string) *HTTPClient {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// StatusError reports a non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d for %s", e.StatusCode, e.URL)
}

// Unwrap classifies the status error as a failed download.
func (e *StatusError) Unwrap() error {
	return errutils.ErrDownloadFailed
}

// Fetch issues a GET request and returns the response body as a stream.
// The caller must close the returned reader.
func (hc *HTTPClient) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to create request")
	}

	req.Header.Set("User-Agent", hc.userAgent)

	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to download tile")
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	return resp.Body, nil
}
