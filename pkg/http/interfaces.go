package http

import (
	"context"
	"io"
)

// Client defines the interface for HTTP operations.
type Client interface {
	// Fetch downloads url and returns the body stream; the caller closes it.
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

var _ Client = (*HTTPClient)(nil)
