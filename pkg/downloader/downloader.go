// Package downloader is the entry point of tilegrab: a Session validates a job once
// and then produces tile archives or directory trees from it.
//
// A job that fails validation does not produce an error from New. The failure is
// logged, kept in Err, and every terminal operation on the session returns
// ErrSessionNotReady.
package downloader

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/glorpus-work/tilegrab/internal/logger"
	"github.com/glorpus-work/tilegrab/pkg/archive"
	"github.com/glorpus-work/tilegrab/pkg/area"
	"github.com/glorpus-work/tilegrab/pkg/download"
	"github.com/glorpus-work/tilegrab/pkg/errutils"
	"github.com/glorpus-work/tilegrab/pkg/fsutil"
	"github.com/glorpus-work/tilegrab/pkg/http"
	"github.com/glorpus-work/tilegrab/pkg/tiles"
	"github.com/glorpus-work/tilegrab/pkg/tilesource"
	"github.com/glorpus-work/tilegrab/pkg/validate"
)

// ErrSessionNotReady is returned by every terminal operation of a session whose job
// failed validation.
var ErrSessionNotReady = fmt.Errorf("session is not ready")

// Top-level keys of a job.
const (
	KeyTile = "tile"
	KeyArea = "area"
)

const defaultHTTPTimeout = 30 * time.Second

// Session holds a validated job. It is immutable after New.
type Session struct {
	source tilesource.Config
	area   *geojson.Feature
	ready  bool
	err    error

	fetcher    download.Fetcher
	enumerator tiles.Enumerator
	templater  *tilesource.Templater
	format     archive.Format
	archiver   *archive.Manager
	scripts    download.Scripts
	hooks      download.Hooks
}

// Option configures a Session.
type Option func(*Session)

// WithFetcher replaces the default HTTP client.
func WithFetcher(f download.Fetcher) Option {
	return func(s *Session) { s.fetcher = f }
}

// WithEnumerator replaces the tilecover based tile enumeration.
func WithEnumerator(e tiles.Enumerator) Option {
	return func(s *Session) { s.enumerator = e }
}

// WithTemplater sets the URL templater, typically a seeded one.
func WithTemplater(t *tilesource.Templater) Option {
	return func(s *Session) { s.templater = t }
}

// WithArchiveFormat selects the archive container for ProduceArchive and WriteArchiveToFile.
func WithArchiveFormat(f archive.Format) Option {
	return func(s *Session) { s.format = f }
}

// WithScripts runs per-tile scripts around each fetch.
func WithScripts(sc download.Scripts) Option {
	return func(s *Session) { s.scripts = sc }
}

// WithHooks registers progress callbacks.
func WithHooks(h download.Hooks) Option {
	return func(s *Session) { s.hooks = h }
}

// New validates cfg, which must carry the tile and area keys.
func New(cfg map[string]any, opts ...Option) *Session {
	s := &Session{
		format:   archive.FormatZip,
		archiver: archive.NewManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fetcher == nil {
		s.fetcher = http.NewHTTPClient(defaultHTTPTimeout, "")
	}
	if s.enumerator == nil {
		s.enumerator = tiles.NewCover()
	}
	if s.templater == nil {
		s.templater = tilesource.NewTemplater(nil)
	}

	if err := s.load(cfg); err != nil {
		s.err = err
		logger.Error("Invalid download configuration", logger.Fields{"error": err.Error()})
		return s
	}
	s.ready = true
	return s
}

func (s *Session) load(cfg map[string]any) error {
	obj, err := validate.RequireKeys(cfg, KeyTile, KeyArea)
	if err != nil {
		return err
	}
	source, err := tilesource.Parse(obj[KeyTile])
	if err != nil {
		return err
	}
	feature, err := area.Resolve(obj[KeyArea])
	if err != nil {
		return err
	}
	s.source = source
	s.area = feature
	return nil
}

// Ready reports whether the job passed validation.
func (s *Session) Ready() bool { return s.ready }

// Err is the validation failure of a session that is not ready.
func (s *Session) Err() error { return s.err }

// Source returns the validated tile source.
func (s *Session) Source() tilesource.Config { return s.source }

// Area returns the resolved polygon feature.
func (s *Session) Area() *geojson.Feature { return s.area }

// Tasks enumerates the tiles of the job and expands their URLs, in download order.
func (s *Session) Tasks() ([]tiles.Task, error) {
	if !s.ready {
		return nil, ErrSessionNotReady
	}
	if s.source.ZoomRangeEmpty() {
		logger.Debug("Zoom range selects no levels", logger.Fields{"min_zoom": s.source.MinZoom, "max_zoom": s.source.MaxZoom})
		return nil, nil
	}
	levels, err := s.enumerator.TilesForZoomRange(s.area, s.source.MinZoom, s.source.MaxZoom)
	if err != nil {
		return nil, err
	}
	return tiles.BuildTasks(levels, s.source, s.templater), nil
}

func (s *Session) run(ctx context.Context, sink download.Sink) (download.Result, download.Report, error) {
	tasks, err := s.Tasks()
	if err != nil {
		return download.Result{}, download.Report{}, err
	}
	logger.Debug("Starting download", logger.Fields{
		"tiles": len(tasks), "min_zoom": s.source.MinZoom, "max_zoom": s.source.MaxZoom,
	})
	orch := download.New(s.fetcher, s.scripts, s.hooks)
	return orch.Run(ctx, tasks, sink)
}

// ProduceArchive downloads every tile into an in-memory archive.
func (s *Session) ProduceArchive(ctx context.Context) ([]byte, download.Report, error) {
	result, report, err := s.run(ctx, download.NewArchiveSink(s.archiver, s.format))
	if err != nil {
		return nil, report, err
	}
	return result.Archive, report, nil
}

// PopulateDirectory downloads every tile below root/zoom_levels and returns that folder.
// Existing files are kept; tiles fetched again are overwritten.
func (s *Session) PopulateDirectory(ctx context.Context, root string) (string, download.Report, error) {
	if !s.ready {
		return "", download.Report{}, ErrSessionNotReady
	}
	if root == "" {
		return "", download.Report{}, errutils.Wrap(errutils.ErrInvalidPath, "root directory cannot be empty")
	}
	result, report, err := s.run(ctx, download.NewDirectorySink(root))
	if err != nil {
		return "", report, err
	}
	return result.Root, report, nil
}

// WriteArchiveToFile produces the archive and writes it to path.
func (s *Session) WriteArchiveToFile(ctx context.Context, path string) (download.Report, error) {
	if !s.ready {
		return download.Report{}, ErrSessionNotReady
	}
	if path == "" {
		return download.Report{}, errutils.Wrap(errutils.ErrInvalidPath, "archive path cannot be empty")
	}
	data, report, err := s.ProduceArchive(ctx)
	if err != nil {
		return report, err
	}
	if _, err := fsutil.WriteFileAtomic(path, bytes.NewReader(data), fsutil.FileModeDefault); err != nil {
		return report, errutils.Wrapf(err, "failed to write archive to %s", path)
	}
	logger.Info("Archive written", logger.Fields{"path": path, "bytes": len(data)})
	return report, nil
}
