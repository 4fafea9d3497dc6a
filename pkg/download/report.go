package download

import (
	"fmt"

	"github.com/glorpus-work/tilegrab/pkg/tiles"
)

// ErrFetch marks a per-tile failure. It is recorded in a Report and never returned
// from Run.
var ErrFetch = fmt.Errorf("tile fetch failed")

// Failure is one tile that produced no output.
type Failure struct {
	Tile tiles.ID
	URL  string
	Err  error
}

// Report summarizes a run. Succeeded keeps the original task order.
type Report struct {
	Total     int
	Succeeded []tiles.ID
	Failed    []Failure
	Skipped   []tiles.ID
}

// Complete reports whether every task produced output.
func (r Report) Complete() bool {
	return len(r.Failed) == 0 && len(r.Skipped) == 0
}

// FailedTiles lists the tiles that failed, in task order.
func (r Report) FailedTiles() []tiles.ID {
	out := make([]tiles.ID, 0, len(r.Failed))
	for _, f := range r.Failed {
		out = append(out, f.Tile)
	}
	return out
}

func (r Report) String() string {
	return fmt.Sprintf("%d tiles: %d stored, %d failed, %d skipped",
		r.Total, len(r.Succeeded), len(r.Failed), len(r.Skipped))
}
