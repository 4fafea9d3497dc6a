package tiles

import (
	"path"
	"strconv"

	"github.com/glorpus-work/tilegrab/pkg/tilesource"
)

// RootDir is the top folder of both the archive and the directory layout.
const RootDir = "zoom_levels"

// Task is one tile download: the resolved URL and where the bytes go.
// RowFile is the row number with the format extension already appended.
type Task struct {
	Tile    ID
	URL     string
	RowFile string
}

// Zoom of the task's tile.
func (t Task) Zoom() int { return t.Tile.Zoom }

// Column of the task's tile.
func (t Task) Column() int { return t.Tile.Column }

// Path is the slash separated location of the tile: zoom_levels/{z}/{x}/{y.ext}.
func (t Task) Path() string {
	return path.Join(RootDir, strconv.Itoa(t.Tile.Zoom), strconv.Itoa(t.Tile.Column), t.RowFile)
}

// ColumnDir is the folder holding the task's tile: zoom_levels/{z}/{x}.
func (t Task) ColumnDir() string {
	return path.Join(RootDir, strconv.Itoa(t.Tile.Zoom), strconv.Itoa(t.Tile.Column))
}

// ZoomDir is the folder for a zoom level: zoom_levels/{z}.
func ZoomDir(zoom int) string {
	return path.Join(RootDir, strconv.Itoa(zoom))
}

// BuildTasks expands the URL of every tile in levels, keeping level order and the
// order of tiles inside each level.
func BuildTasks(levels []Level, src tilesource.Config, tp *tilesource.Templater) []Task {
	tasks := make([]Task, 0, Count(levels))
	for _, level := range levels {
		for _, id := range level.Tiles {
			tasks = append(tasks, Task{
				Tile:    id,
				URL:     tp.Expand(src.URL, src.Subdomains, id.Column, id.Row, id.Zoom),
				RowFile: src.RowFile(id.Row),
			})
		}
	}
	return tasks
}
