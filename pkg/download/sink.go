package download

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/glorpus-work/tilegrab/pkg/archive"
	"github.com/glorpus-work/tilegrab/pkg/fsutil"
	"github.com/glorpus-work/tilegrab/pkg/tiles"
)

// ArchiveSink collects tiles in memory and serializes them into one archive buffer.
// The zoom_levels folder and every zoom and column folder of the task list are
// present in the archive even when their tiles fail.
type ArchiveSink struct {
	manager *archive.Manager
	format  archive.Format
	entries []archive.Entry
	index   map[string]int
}

// NewArchiveSink creates a sink producing an archive in format.
func NewArchiveSink(manager *archive.Manager, format archive.Format) *ArchiveSink {
	if manager == nil {
		manager = archive.NewManager()
	}
	return &ArchiveSink{
		manager: manager,
		format:  format,
		index:   make(map[string]int),
	}
}

func (s *ArchiveSink) add(e archive.Entry) {
	if i, ok := s.index[e.Name]; ok {
		s.entries[i] = e
		return
	}
	s.index[e.Name] = len(s.entries)
	s.entries = append(s.entries, e)
}

// Prepare adds the folder entries for all tasks.
func (s *ArchiveSink) Prepare(_ context.Context, tasks []tiles.Task) error {
	s.add(archive.Entry{Name: tiles.RootDir, Dir: true})
	for _, t := range tasks {
		s.add(archive.Entry{Name: tiles.ZoomDir(t.Zoom()), Dir: true})
		s.add(archive.Entry{Name: t.ColumnDir(), Dir: true})
	}
	return nil
}

// Put reads the whole stream; a read error leaves no entry behind.
func (s *ArchiveSink) Put(_ context.Context, task tiles.Task, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read tile stream: %w", err)
	}
	s.add(archive.Entry{Name: task.Path(), Data: data})
	return nil
}

// Finalize serializes the collected entries.
func (s *ArchiveSink) Finalize(ctx context.Context) (Result, error) {
	if _, ok := s.index[tiles.RootDir]; !ok {
		s.add(archive.Entry{Name: tiles.RootDir, Dir: true})
	}
	data, err := s.manager.Bytes(ctx, s.entries, s.format)
	if err != nil {
		return Result{}, err
	}
	return Result{Archive: data}, nil
}

// Entries returns the names collected so far, in archive order.
func (s *ArchiveSink) Entries() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Name
	}
	return out
}

// DirectorySink writes tiles under root/zoom_levels/{z}/{x}/{y.ext}.
// Folders are only created when missing and existing files are overwritten, so a
// second run over the same root adds to the tree.
type DirectorySink struct {
	root string
}

// NewDirectorySink creates a sink rooted at root.
func NewDirectorySink(root string) *DirectorySink {
	return &DirectorySink{root: root}
}

func (s *DirectorySink) local(slashPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(slashPath))
}

// Prepare creates the folder tree for all tasks.
func (s *DirectorySink) Prepare(_ context.Context, tasks []tiles.Task) error {
	if err := fsutil.EnsureDir(s.local(tiles.RootDir)); err != nil {
		return err
	}
	created := make(map[string]bool)
	for _, t := range tasks {
		for _, dir := range []string{tiles.ZoomDir(t.Zoom()), t.ColumnDir()} {
			if created[dir] {
				continue
			}
			if err := fsutil.EnsureDir(s.local(dir)); err != nil {
				return err
			}
			created[dir] = true
		}
	}
	return nil
}

// Put streams the tile to disk; a failed stream leaves no new file behind.
func (s *DirectorySink) Put(_ context.Context, task tiles.Task, r io.Reader) error {
	if _, err := fsutil.WriteFileAtomic(s.local(task.Path()), r, fsutil.FileModeDefault); err != nil {
		return err
	}
	return nil
}

// Finalize returns the zoom_levels folder.
func (s *DirectorySink) Finalize(context.Context) (Result, error) {
	return Result{Root: s.local(tiles.RootDir)}, nil
}
