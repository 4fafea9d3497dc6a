package tiles

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/tilegrab/pkg/tilesource"
)

func bboxFeature(minX, minY, maxX, maxY float64) *geojson.Feature {
	b := orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}}
	return geojson.NewFeature(b.ToPolygon())
}

func TestCover_TilesForZoomRange(t *testing.T) {
	levels, err := NewCover().TilesForZoomRange(bboxFeature(-170, -80, 170, 80), 0, 1)
	require.NoError(t, err)
	require.Len(t, levels, 2)

	assert.Equal(t, Level{Zoom: 0, Tiles: []ID{{Zoom: 0, Column: 0, Row: 0}}}, levels[0])
	assert.Equal(t, 1, levels[1].Zoom)
	assert.Equal(t, []ID{
		{Zoom: 1, Column: 0, Row: 0},
		{Zoom: 1, Column: 0, Row: 1},
		{Zoom: 1, Column: 1, Row: 0},
		{Zoom: 1, Column: 1, Row: 1},
	}, levels[1].Tiles)
	assert.Equal(t, 5, Count(levels))
}

func TestCover_SmallArea(t *testing.T) {
	levels, err := NewCover().TilesForZoomRange(bboxFeature(10, 10, 11, 11), 2, 2)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, []ID{{Zoom: 2, Column: 2, Row: 1}}, levels[0].Tiles)
}

func TestCover_InvertedRange(t *testing.T) {
	levels, err := NewCover().TilesForZoomRange(bboxFeature(10, 10, 11, 11), 5, 3)
	require.NoError(t, err)
	assert.Empty(t, levels)
	assert.Zero(t, Count(levels))
}

func TestCover_NoGeometry(t *testing.T) {
	_, err := NewCover().TilesForZoomRange(&geojson.Feature{Type: "Feature"}, 0, 1)
	assert.Error(t, err)

	_, err = NewCover().TilesForZoomRange(nil, 0, 1)
	assert.Error(t, err)
}

func TestBuildTasks_PreservesOrder(t *testing.T) {
	levels := []Level{
		{Zoom: 3, Tiles: []ID{{3, 4, 2}, {3, 4, 1}}},
		{Zoom: 1, Tiles: []ID{{1, 0, 0}}},
	}
	src := tilesource.Config{
		URL:        "https://{s}.example/{z}/{x}/{y}.png",
		Subdomains: []string{"a"},
		Format:     "png",
	}

	tasks := BuildTasks(levels, src, tilesource.NewSeededTemplater(1))
	require.Len(t, tasks, 3)

	assert.Equal(t, Task{Tile: ID{3, 4, 2}, URL: "https://a.example/3/4/2.png", RowFile: "2.png"}, tasks[0])
	assert.Equal(t, Task{Tile: ID{3, 4, 1}, URL: "https://a.example/3/4/1.png", RowFile: "1.png"}, tasks[1])
	assert.Equal(t, Task{Tile: ID{1, 0, 0}, URL: "https://a.example/1/0/0.png", RowFile: "0.png"}, tasks[2])
}

func TestTaskPaths(t *testing.T) {
	task := Task{Tile: ID{Zoom: 5, Column: 17, Row: 9}, RowFile: "9.jpeg"}
	assert.Equal(t, "zoom_levels/5/17/9.jpeg", task.Path())
	assert.Equal(t, "zoom_levels/5/17", task.ColumnDir())
	assert.Equal(t, "zoom_levels/5", ZoomDir(task.Zoom()))
	assert.Equal(t, 17, task.Column())
	assert.Equal(t, "5/17/9", task.Tile.String())
}

func TestCover_BoundaryAreas(t *testing.T) {
	point := orb.Point{1, 1}
	tests := []struct {
		name    string
		feature *geojson.Feature
		counts  []int // tiles per zoom 0..2
	}{
		{
			name:    "single point ring",
			feature: geojson.NewFeature(orb.Polygon{{point, point, point, point}}),
			counts:  []int{1, 1, 1},
		},
		{
			name:    "zero height box",
			feature: bboxFeature(-100, 10, 100, 10),
			counts:  []int{1, 2, 4},
		},
		{
			name:    "whole world",
			feature: bboxFeature(-180, -90, 180, 90),
			counts:  []int{1, 4, 16},
		},
		{
			name:    "touching the antimeridian",
			feature: bboxFeature(170, -10, 180, 10),
			counts:  []int{1, 2, 2},
		},
		{
			name:    "zero width box",
			feature: bboxFeature(10, -10, 10, 10),
			counts:  []int{1, 2, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var levels []Level
			require.NotPanics(t, func() {
				var err error
				levels, err = NewCover().TilesForZoomRange(tt.feature, 0, 2)
				require.NoError(t, err)
			})
			require.Len(t, levels, 3)
			for i, level := range levels {
				assert.Len(t, level.Tiles, tt.counts[i], "zoom %d", level.Zoom)
				for _, id := range level.Tiles {
					assert.True(t, InGrid(id), "tile %s outside the grid", id)
					assert.Equal(t, level.Zoom, id.Zoom)
				}
			}
		})
	}
}

func TestInGrid(t *testing.T) {
	assert.True(t, InGrid(ID{Zoom: 0}))
	assert.True(t, InGrid(ID{Zoom: 2, Column: 3, Row: 3}))
	assert.False(t, InGrid(ID{Zoom: 0, Column: 1}))
	assert.False(t, InGrid(ID{Zoom: 2, Row: 4}))
	assert.False(t, InGrid(ID{Zoom: 1, Column: -1}))
}
