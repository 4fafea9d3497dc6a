//go:generate mockgen -destination=mocks/download.go . Fetcher,Sink,Scripts

package download

import (
	"context"
	"io"

	"github.com/glorpus-work/tilegrab/pkg/tiles"
)

// Fetcher retrieves the bytes of one tile URL as a stream. The caller closes it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// Sink receives fetched tiles.
type Sink interface {
	// Prepare runs once before the first fetch with the full task list.
	Prepare(ctx context.Context, tasks []tiles.Task) error
	// Put stores the stream of one tile. An error skips the tile.
	Put(ctx context.Context, task tiles.Task, r io.Reader) error
	// Finalize runs once after the last task.
	Finalize(ctx context.Context) (Result, error)
}

// Scripts are optional per-tile scripts run around each fetch.
type Scripts interface {
	// BeforeFetch may ask for the tile to be skipped.
	BeforeFetch(ctx context.Context, task tiles.Task) (skip bool, err error)
	// AfterStore runs once the tile has been stored.
	AfterStore(ctx context.Context, task tiles.Task) error
}

// Result is what a finalized sink delivers: archive bytes or the tile root path.
type Result struct {
	Archive []byte
	Root    string
}
