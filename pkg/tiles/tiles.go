// Package tiles enumerates the map tiles covering an area and turns them into the
// ordered task list consumed by the download orchestrator.
package tiles

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/paulmach/orb/maptile/tilecover"
)

// ID addresses one tile.
type ID struct {
	Zoom   int
	Column int
	Row    int
}

func (id ID) String() string {
	return fmt.Sprintf("%d/%d/%d", id.Zoom, id.Column, id.Row)
}

// Level holds the ordered tiles of one zoom level.
type Level struct {
	Zoom  int
	Tiles []ID
}

// Enumerator computes the tiles covering a polygon feature for every zoom in
// [minZoom, maxZoom]. Levels and the tiles within a level come back in the order
// downloads should run.
type Enumerator interface {
	TilesForZoomRange(feature *geojson.Feature, minZoom, maxZoom int) ([]Level, error)
}

// Cover is the Enumerator backed by orb's tilecover.
// Levels are ascending; tiles within a level are ordered by column, then row.
type Cover struct{}

// NewCover creates a tilecover based Enumerator.
func NewCover() *Cover {
	return &Cover{}
}

// TilesForZoomRange implements Enumerator. An inverted range yields no levels.
func (c *Cover) TilesForZoomRange(feature *geojson.Feature, minZoom, maxZoom int) ([]Level, error) {
	if feature == nil || feature.Geometry == nil {
		return nil, fmt.Errorf("tiles: feature has no geometry")
	}
	if minZoom > maxZoom {
		return nil, nil
	}
	if minZoom < 0 {
		return nil, fmt.Errorf("tiles: negative zoom %d", minZoom)
	}

	bound := feature.Geometry.Bound()
	degenerate := bound.Min[0] == bound.Max[0] || bound.Min[1] == bound.Max[1]

	levels := make([]Level, 0, maxZoom-minZoom+1)
	for z := minZoom; z <= maxZoom; z++ {
		var set maptile.Set
		if degenerate {
			// tilecover needs a ring with area; points and lines are covered by their bound.
			set = boundSet(bound, maptile.Zoom(z))
		} else {
			var err error
			set, err = tilecover.Geometry(feature.Geometry, maptile.Zoom(z))
			if err != nil {
				return nil, fmt.Errorf("tiles: cover zoom %d: %w", z, err)
			}
		}
		levels = append(levels, Level{Zoom: z, Tiles: sortedIDs(set, z)})
	}
	return levels, nil
}

func boundSet(bound orb.Bound, z maptile.Zoom) maptile.Set {
	topLeft := maptile.At(orb.Point{bound.Min[0], bound.Max[1]}, z)
	bottomRight := maptile.At(orb.Point{bound.Max[0], bound.Min[1]}, z)
	set := make(maptile.Set)
	for x := topLeft.X; x <= bottomRight.X; x++ {
		for y := topLeft.Y; y <= bottomRight.Y; y++ {
			set[maptile.New(x, y, z)] = true
		}
	}
	return set
}

// InGrid reports whether id addresses a tile that exists at its zoom.
func InGrid(id ID) bool {
	n := 1 << id.Zoom
	return id.Zoom >= 0 && id.Column >= 0 && id.Column < n && id.Row >= 0 && id.Row < n
}

// sortedIDs drops tiles outside the grid: covers touching longitude 180 yield column 2^z.
func sortedIDs(set maptile.Set, zoom int) []ID {
	ids := make([]ID, 0, len(set))
	for t := range set {
		id := ID{Zoom: zoom, Column: int(t.X), Row: int(t.Y)}
		if InGrid(id) {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, func(a, b ID) int {
		if c := cmp.Compare(a.Column, b.Column); c != 0 {
			return c
		}
		return cmp.Compare(a.Row, b.Row)
	})
	return ids
}

// Count returns the number of tiles across levels.
func Count(levels []Level) int {
	n := 0
	for _, l := range levels {
		n += len(l.Tiles)
	}
	return n
}
